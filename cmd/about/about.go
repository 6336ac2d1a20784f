// Package about implements the command that prints tap metadata.
package about

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fjacquet/tap-nomad/cmd/root"
	"fjacquet/tap-nomad/internal/singer"
)

// Info is the metadata printed by the about command.
type Info struct {
	Name         string        `json:"name"`
	Version      string        `json:"version"`
	Description  string        `json:"description"`
	Capabilities []string      `json:"capabilities"`
	Streams      []string      `json:"streams"`
	Settings     []SettingInfo `json:"settings"`
}

// SettingInfo describes one configuration key.
type SettingInfo struct {
	Key         string `json:"key"`
	Description string `json:"description"`
}

// Cmd represents the about command.
var Cmd = &cobra.Command{
	Use:   "about",
	Short: "Print tap metadata as JSON",
	Long:  `Print the tap's name, version, capabilities, and configuration keys as JSON on stdout.`,
	Run:   aboutFunc,
}

func aboutFunc(cmd *cobra.Command, args []string) {
	info := Info{
		Name:         "tap-nomad",
		Version:      root.Version,
		Description:  "Extracts bank transactions from fixed-layout Nomad PDF statements.",
		Capabilities: []string{"catalog", "discover", "state"},
		Streams:      []string{singer.StreamName},
		Settings: []SettingInfo{
			{Key: "files", Description: "An array of file stream settings."},
			{Key: "files_definition", Description: "A path to the JSON file holding an array of file settings."},
			{Key: "log.level", Description: "Log level (debug, info, warn, error)."},
			{Key: "log.format", Description: "Log format (text or json)."},
			{Key: "tabula.java_path", Description: "Path to the java binary running the table extractor."},
			{Key: "tabula.jar_path", Description: "Path to the tabula jar file."},
			{Key: "csv.delimiter", Description: "Delimiter for CSV output."},
		},
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		root.Log.WithError(err).Fatal("Encoding about info failed")
	}
	fmt.Fprintln(os.Stdout, string(data))
}
