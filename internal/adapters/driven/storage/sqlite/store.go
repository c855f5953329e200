package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/creative-publisher/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
)

// Store is a SQLite-backed publish history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.crpub/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".crpub", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// PublishRecordStore returns a PublishRecordStore backed by this store.
func (s *Store) PublishRecordStore() driven.PublishRecordStore {
	return &publishRecordStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_publish_records.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Publish Record Store ====================

// publishRecordStore implements driven.PublishRecordStore.
type publishRecordStore struct {
	store *Store
}

var _ driven.PublishRecordStore = (*publishRecordStore)(nil)

// Save stores a record.
func (s *publishRecordStore) Save(ctx context.Context, rec domain.PublishRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO publish_records (upload_id, campaign_id, basename, exporter, object_count, root_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.UploadID, rec.CampaignID, rec.Basename, rec.Exporter.String(), rec.ObjectCount,
		nullString(rec.RootKey), rec.CreatedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving publish record: %w", err)
	}
	return nil
}

// List returns records newest first.
func (s *publishRecordStore) List(ctx context.Context, campaignID string, limit int) ([]domain.PublishRecord, error) {
	query := `
		SELECT upload_id, campaign_id, basename, exporter, object_count, root_key, created_at
		FROM publish_records`
	var args []any
	if campaignID != "" {
		query += " WHERE campaign_id = ?"
		args = append(args, campaignID)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return s.query(ctx, query, args...)
}

// ListByUpload returns the records of one upload in publish order.
func (s *publishRecordStore) ListByUpload(ctx context.Context, uploadID string) ([]domain.PublishRecord, error) {
	return s.query(ctx, `
		SELECT upload_id, campaign_id, basename, exporter, object_count, root_key, created_at
		FROM publish_records WHERE upload_id = ? ORDER BY id
	`, uploadID)
}

func (s *publishRecordStore) query(ctx context.Context, query string, args ...any) ([]domain.PublishRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying publish records: %w", err)
	}
	defer rows.Close()

	var records []domain.PublishRecord
	for rows.Next() {
		var rec domain.PublishRecord
		var exporter string
		var rootKey sql.NullString
		if err := rows.Scan(&rec.UploadID, &rec.CampaignID, &rec.Basename, &exporter,
			&rec.ObjectCount, &rootKey, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning publish record: %w", err)
		}
		rec.Exporter = domain.ParseExporter(exporter)
		rec.RootKey = rootKey.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating publish records: %w", err)
	}

	return records, nil
}

// nullString converts an empty string to a NULL column value.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
