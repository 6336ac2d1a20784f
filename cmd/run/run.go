// Package run implements the sync command that extracts records and
// emits the message stream on stdout.
package run

import (
	"os"

	"github.com/spf13/cobra"

	"fjacquet/tap-nomad/cmd/root"
	"fjacquet/tap-nomad/internal/tap"
)

// Cmd represents the run command.
var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Extract records and emit them on stdout",
	Long: `Extract transaction records from every configured statement source and
emit them as SCHEMA, RECORD, and STATE messages on stdout. Logs go to
stderr so the message stream stays clean.`,
	Run: runFunc,
}

func runFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Run command called")

	t := tap.New(root.Cfg, nil, nil, root.Log)
	if err := t.Run(cmd.Context(), os.Stdout); err != nil {
		root.Log.WithError(err).Fatal("Extraction failed")
	}
	root.Log.Info("Extraction completed successfully!")
}
