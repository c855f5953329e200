// Package cli provides the crpub command line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/creative-publisher/internal/core/ports/driving"
	"github.com/custodia-labs/creative-publisher/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services wired by SetServices or the bootstrap hook.
var (
	settingsService     driving.SettingsService
	publishService      driving.PublishService
	markupService       driving.MarkupService
	ingestService       driving.IngestService
	dryRunIngestService driving.IngestService
	historyService      driving.HistoryService

	// workDir is the parent of per-request extraction directories.
	workDir string
)

// Services groups every driving port the commands use.
type Services struct {
	Settings     driving.SettingsService
	Publish      driving.PublishService
	Markup       driving.MarkupService
	Ingest       driving.IngestService
	DryRunIngest driving.IngestService
	History      driving.HistoryService
	WorkDir      string

	// Close releases resources held by the services. Optional.
	Close func() error
}

// Options are the global flags passed to the bootstrap hook.
type Options struct {
	ConfigDir string
	Verbose   bool
}

// BootstrapFunc builds the services for one invocation.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, error)

var (
	bootstrap     BootstrapFunc
	closeServices func() error

	configDir string
	verbose   bool
)

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "crpub",
	Short: "Validate and publish creative packages",
	Long: `crpub validates HTML5 creative packages exported by Google Web Designer
or Conversio, rewrites their clickthrough handling and publishes every file
to object storage under a campaign scoped key.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if closeServices == nil {
			return nil
		}
		err := closeServices()
		closeServices = nil
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.crpub)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the hook that builds services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs services directly.
func SetServices(s *Services) {
	settingsService = s.Settings
	publishService = s.Publish
	markupService = s.Markup
	ingestService = s.Ingest
	dryRunIngestService = s.DryRunIngest
	historyService = s.History
	workDir = s.WorkDir
	closeServices = s.Close
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[skipBootstrap] == "true" {
		return nil
	}

	services, err := bootstrap(cmd.Context(), Options{
		ConfigDir: configDir,
		Verbose:   verbose,
	})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)
	return nil
}
