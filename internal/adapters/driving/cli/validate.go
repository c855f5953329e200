package cli

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate <package-dir>",
	Short: "Validate an extracted creative package",
	Long: `Checks an extracted package directory against its exporter's rules without
uploading anything. The basename defaults to the directory name.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringP("exporter", "e", "gwd", "exporter: gwd or conversio")
	validateCmd.Flags().StringP("basename", "b", "", "archive basename (default: directory name)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if publishService == nil {
		return errors.New("publish service not configured")
	}

	dir := filepath.Clean(args[0])
	basename, _ := cmd.Flags().GetString("basename")
	if basename == "" {
		basename = filepath.Base(dir)
	}
	exporterFlag, _ := cmd.Flags().GetString("exporter")
	exporter := domain.ParseExporter(exporterFlag)

	err := publishService.Validate(cmd.Context(), domain.Package{
		Basename:      basename,
		RootDirectory: dir,
		Exporter:      exporter,
	})
	if err != nil {
		return publicError(err)
	}

	cmd.Printf("%s: valid %s package\n", basename, exporter.Description())
	return nil
}
