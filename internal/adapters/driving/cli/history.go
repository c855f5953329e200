package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List published packages",
	Long:  `Lists published packages newest first, optionally for one campaign or one upload.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringP("campaign", "c", "", "only show this campaign")
	historyCmd.Flags().StringP("upload", "u", "", "only show this upload id")
	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of records")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	uploadID, _ := cmd.Flags().GetString("upload")
	campaignID, _ := cmd.Flags().GetString("campaign")
	limit, _ := cmd.Flags().GetInt("limit")

	var (
		records []domain.PublishRecord
		err     error
	)
	if uploadID != "" {
		records, err = historyService.Upload(cmd.Context(), uploadID)
	} else {
		records, err = historyService.List(cmd.Context(), campaignID, limit)
	}
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("No packages found for upload %s.\n", uploadID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No packages published yet.")
		return nil
	}

	for _, rec := range records {
		cmd.Printf("%s  %-12s %-24s %-10s %3d files  %s\n",
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			rec.CampaignID,
			rec.Basename,
			rec.Exporter.Effective(),
			rec.ObjectCount,
			rec.UploadID,
		)
	}
	return nil
}
