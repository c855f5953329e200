package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite <file.html>",
	Short: "Print a markup file with its clickthrough rewritten",
	Long: `Applies the exporter's clickthrough rewrite to a markup file and prints the
result. The file itself is not modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runRewrite,
}

func init() {
	rewriteCmd.Flags().StringP("exporter", "e", "gwd", "exporter: gwd or conversio")
	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, args []string) error {
	if markupService == nil {
		return errors.New("markup service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	exporterFlag, _ := cmd.Flags().GetString("exporter")
	rewritten := markupService.Rewrite(domain.ParseExporter(exporterFlag), string(data))

	cmd.Print(rewritten)
	return nil
}
