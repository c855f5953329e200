package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/logger"
)

var publishCmd = &cobra.Command{
	Use:   "publish <archive.zip>...",
	Short: "Validate and publish creative packages",
	Long: `Extracts each archive, validates the package against its exporter's rules
and uploads every file to the configured storage backends.

All archives share one upload id. Every archive is extracted before any
package is published, and the first failure stops the remaining packages.
Objects already written are not removed.

Examples:
  crpub publish --campaign spring-sale banner_300x250.zip
  crpub publish --campaign spring-sale --exporter conversio a.zip b.zip
  crpub publish --campaign spring-sale --dry-run banner.zip`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringP("campaign", "c", "", "campaign id (required)")
	publishCmd.Flags().StringP("exporter", "e", "gwd", "exporter: gwd or conversio")
	publishCmd.Flags().Bool("dry-run", false, "publish to an in-memory store")
	publishCmd.Flags().Bool("json", false, "print the result as JSON")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	svc := ingestService
	if dryRun {
		svc = dryRunIngestService
	}
	if svc == nil {
		return errors.New("ingest service not configured (is s3.bucket set?)")
	}

	campaignID, _ := cmd.Flags().GetString("campaign")
	if campaignID == "" {
		return errors.New("--campaign is required")
	}
	exporterFlag, _ := cmd.Flags().GetString("exporter")
	asJSON, _ := cmd.Flags().GetBool("json")

	dir, err := os.MkdirTemp(workDir, "crpub-*")
	if err != nil {
		return fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(dir)

	result, err := svc.Ingest(cmd.Context(), domain.IngestRequest{
		CampaignID: campaignID,
		Exporter:   domain.ParseExporter(exporterFlag),
		Archives:   args,
		WorkDir:    dir,
	})
	if err != nil {
		return publicError(err)
	}

	if asJSON {
		return printJSON(cmd, result)
	}

	if dryRun {
		cmd.Println("Dry run: nothing was written to storage.")
	}
	cmd.Printf("Upload %s (campaign %s)\n", result.UploadID, result.CampaignID)
	for _, pkg := range result.Packages {
		cmd.Printf("  %s: %d files\n", pkg.Package.Basename, len(pkg.Manifest.Entries))
	}
	if result.RootKey != "" {
		cmd.Printf("Root: %s\n", result.RootKey)
	}
	return nil
}

// publicError logs the full error and returns what the caller may see.
func publicError(err error) error {
	if !domain.IsUserError(err) {
		logger.Error("%v", err)
	}
	return errors.New(domain.PublicMessage(err))
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
