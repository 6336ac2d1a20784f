// Package discover implements the discovery command that prints the
// stream catalog.
package discover

import (
	"os"

	"github.com/spf13/cobra"

	"fjacquet/tap-nomad/cmd/root"
	"fjacquet/tap-nomad/internal/tap"
)

// Cmd represents the discover command.
var Cmd = &cobra.Command{
	Use:   "discover",
	Short: "Print the stream catalog",
	Long: `Validate the configuration and print the catalog of streams this tap
produces, including the record schema, as JSON on stdout.`,
	Run: discoverFunc,
}

func discoverFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Discover command called")

	t := tap.New(root.Cfg, nil, nil, root.Log)
	if err := t.Discover(os.Stdout); err != nil {
		root.Log.WithError(err).Fatal("Discovery failed")
	}
}
