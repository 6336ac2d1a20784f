// Package convert implements the convenience command that writes
// extracted records to a CSV file instead of the message stream.
package convert

import (
	"github.com/spf13/cobra"

	"fjacquet/tap-nomad/cmd/root"
	"fjacquet/tap-nomad/internal/export"
	"fjacquet/tap-nomad/internal/logging"
	"fjacquet/tap-nomad/internal/tap"
)

var outputFile string

// Cmd represents the convert command.
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Extract records and write them to a CSV file",
	Long: `Extract transaction records from every configured statement source and
write them to a CSV file instead of the message stream.`,
	Run: convertFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file (required)")
	if err := Cmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}
}

func convertFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Convert command called",
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile})

	t := tap.New(root.Cfg, nil, nil, root.Log)
	records, err := t.CollectRecords(cmd.Context())
	if err != nil {
		root.Log.WithError(err).Fatal("Extraction failed")
	}

	exporter := export.New(root.Log)
	if err := exporter.WriteRecordsToCSV(records, outputFile); err != nil {
		root.Log.WithError(err).Fatal("Writing CSV failed")
	}
	root.Log.Info("CSV conversion completed successfully!",
		logging.Field{Key: logging.FieldCount, Value: len(records)})
}
