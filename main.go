// Package main provides the entry point for the tap-nomad CLI.
package main

import (
	"fmt"
	"os"

	"fjacquet/tap-nomad/cmd/about"
	"fjacquet/tap-nomad/cmd/convert"
	"fjacquet/tap-nomad/cmd/discover"
	"fjacquet/tap-nomad/cmd/root"
	"fjacquet/tap-nomad/cmd/run"
	"fjacquet/tap-nomad/cmd/validate"
)

func init() {
	root.Cmd.AddCommand(run.Cmd)
	root.Cmd.AddCommand(discover.Cmd)
	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
	root.Cmd.AddCommand(about.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		// stdout is reserved for the message stream.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
