package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/creative-publisher/internal/adapters/driving/watcher"
	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch <inbox-dir>",
	Short: "Publish archives as they arrive in a directory",
	Long: `Watches an inbox directory and publishes each .zip file dropped into it as
its own upload. Archives are handled one at a time. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("campaign", "c", "", "campaign id (required)")
	watchCmd.Flags().StringP("exporter", "e", "gwd", "exporter: gwd or conversio")
	watchCmd.Flags().Duration("settle", watcher.DefaultSettle, "quiet period before an archive is published")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured (is s3.bucket set?)")
	}

	campaignID, _ := cmd.Flags().GetString("campaign")
	if campaignID == "" {
		return errors.New("--campaign is required")
	}
	exporterFlag, _ := cmd.Flags().GetString("exporter")
	settle, _ := cmd.Flags().GetDuration("settle")

	w := watcher.New(args[0], ingestService, watcher.Options{
		CampaignID: campaignID,
		Exporter:   domain.ParseExporter(exporterFlag),
		WorkDir:    workDir,
		Settle:     settle,
		OnResult: func(archive string, result *domain.IngestResult, err error) {
			if err != nil {
				cmd.Printf("%s: %s\n", archive, domain.PublicMessage(err))
				return
			}
			cmd.Printf("%s: upload %s, root %s\n", archive, result.UploadID, result.RootKey)
		},
	})

	cmd.Printf("Watching %s for archives...\n", args[0])
	return w.Run(cmd.Context())
}
