package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

//nolint:gosec // G101: These are config key names, not actual credentials.
var secretKeys = map[string]bool{
	"s3.access_key_id":     true,
	"s3.secret_access_key": true,
	"s3.session_token":     true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change crpub configuration.

Settings are stored in config.toml inside the configuration directory.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Secret keys prompt for the value without echo
when it is omitted.

Keys:
  s3.bucket, s3.region, s3.endpoint
  s3.access_key_id, s3.secret_access_key, s3.session_token
  gcs.enabled, gcs.bucket, gcs.credentials_file
  upload.requests_per_second, upload.burst, upload.max_archive_bytes
  paths.work_dir, history.enabled`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Primary storage (S3)")
	cmd.Printf("  Bucket:   %s\n", orNotSet(settings.S3.Bucket))
	cmd.Printf("  Region:   %s\n", settings.S3.Region)
	if settings.S3.Endpoint != "" {
		cmd.Printf("  Endpoint: %s\n", settings.S3.Endpoint)
	}
	if settings.S3.AccessKeyID != "" {
		cmd.Printf("  Access Key: %s\n", maskAPIKey(settings.S3.AccessKeyID))
		cmd.Printf("  Secret Key: %s\n", maskAPIKey(settings.S3.SecretAccessKey))
	} else {
		cmd.Println("  Credentials: default chain")
	}

	cmd.Println()
	cmd.Println("Secondary storage (GCS)")
	if settings.GCS.IsActive() {
		cmd.Printf("  Bucket: %s\n", settings.GCS.Bucket)
		cmd.Printf("  Credentials: %s\n", orNotSet(settings.GCS.CredentialsFile))
	} else {
		cmd.Println("  Disabled")
	}

	cmd.Println()
	cmd.Println("Upload")
	if settings.Upload.RequestsPerSecond > 0 {
		cmd.Printf("  Rate limit: %.1f req/s (burst %d)\n", settings.Upload.RequestsPerSecond, settings.Upload.Burst)
	} else {
		cmd.Println("  Rate limit: none")
	}
	cmd.Printf("  Max archive: %d bytes\n", settings.Upload.MaxArchiveBytes)
	cmd.Printf("  Work dir: %s\n", orDefault(settings.WorkDir, os.TempDir()))
	cmd.Printf("  History: %t\n", settings.HistoryEnabled)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case secretKeys[key]:
		cmd.Printf("%s: ", key)
		value = readPassword()
		cmd.Println()
	default:
		return fmt.Errorf("a value is required for %s", key)
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if secretKeys[key] {
		cmd.Printf("%s set to %s\n", key, maskAPIKey(value))
	} else {
		cmd.Printf("%s set to %s\n", key, value)
	}
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orNotSet(s string) string {
	return orDefault(s, "(not set)")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
