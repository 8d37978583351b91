// Command mossim is a host-only simulator for the kernel: it drives the
// task scheduler and synchronization primitives through the scenarios of
// SPEC_FULL.md's end-to-end behaviour section and prints a pass/fail report,
// standing in for the real hardware this kernel otherwise targets.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mos/internal/buildinfo"
)

var rootCmd = &cobra.Command{
	Use:     "mossim",
	Short:   "Host simulator and scenario runner for the kernel",
	Version: buildinfo.Short(),
}

var runCmd = &cobra.Command{
	Use:   "run [scenario...]",
	Short: "Run one or more scenarios (default: all of them)",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if len(names) == 0 {
			for _, s := range scenarios {
				names = append(names, s.name)
			}
		}
		stop := startClock()
		defer stop()
		return runAll(names)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range scenarios {
			fmt.Printf("%-10s %s\n", s.name, s.desc)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the full mossim build identity",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(buildinfo.Full())
	},
}

func init() {
	rootCmd.AddCommand(runCmd, listCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
