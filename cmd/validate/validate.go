// Package validate implements the command that checks the configuration
// and source resolution without extracting anything.
package validate

import (
	"github.com/spf13/cobra"

	"fjacquet/tap-nomad/cmd/root"
	"fjacquet/tap-nomad/internal/logging"
	"fjacquet/tap-nomad/internal/tap"
)

// Cmd represents the validate command.
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and resolve every source",
	Long: `Load the file configuration and resolve every configured source to its
file locations without fetching or extracting anything. Fails with a
non-zero exit if the configuration is invalid or a source is missing.`,
	Run: validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Validate command called")

	t := tap.New(root.Cfg, nil, nil, root.Log)
	streams, err := t.DiscoverStreams()
	if err != nil {
		root.Log.WithError(err).Fatal("Configuration is invalid")
	}

	total := 0
	for _, st := range streams {
		paths, err := st.FilePaths(cmd.Context())
		if err != nil {
			root.Log.WithError(err).Fatal("Source resolution failed",
				logging.Field{Key: logging.FieldLocation, Value: st.Config.Path})
		}
		total += len(paths)
		root.Log.Info("Source resolved",
			logging.Field{Key: logging.FieldLocation, Value: st.Config.Path},
			logging.Field{Key: logging.FieldCount, Value: len(paths)})
	}

	root.Log.Info("Configuration is valid",
		logging.Field{Key: logging.FieldCount, Value: total})
}
