// Package root contains the root command for the tap.
package root

import (
	"github.com/spf13/cobra"

	"fjacquet/tap-nomad/internal/config"
	"fjacquet/tap-nomad/internal/export"
	"fjacquet/tap-nomad/internal/logging"
)

// Version is the tap's release version, reported by --version and the
// about command.
const Version = "0.1.0"

var (
	// Log is the shared logger instance for commands. PersistentPreRun
	// replaces it with one built from the loaded configuration.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cfg is the loaded tap configuration, populated before any
	// subcommand runs.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:     "tap-nomad",
		Version: Version,
		Short:   "A tap extracting bank transactions from Nomad PDF statements.",
		Long: `tap-nomad reads fixed-layout Nomad account statements (local files,
directories, or gs:// object-store locations), extracts the transaction
table from each PDF, and emits typed records as a message stream for a
downstream data pipeline.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to tap-nomad!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv(Log)

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Fatal("Failed to load configuration")
			}
			Cfg = cfg
			Log = config.LoggerFromConfig(cfg)

			if cfg.CSV.Delimiter != "" {
				export.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			}
		},
	}
)
