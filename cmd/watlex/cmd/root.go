// Package cmd implements the watlex command-line driver: a thin consumer of
// package wat that performs file I/O, byte-buffer acquisition, and
// rendering of the parser's event stream or its single terminal error.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/watlex/watlex/internal/watlog"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "watlex",
	Short: "Parse WebAssembly text format modules and print their event stream",
	Long: `watlex drives a wat.Parser over a WAT source file and renders its
observable event stream: module/function boundaries, imports, and code
operators. It does not validate module semantics and does not emit binary
WebAssembly.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		watlog.SetVerbose(verbose)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "raise logging to trace level")
	rootCmd.AddCommand(parseCmd)
}
