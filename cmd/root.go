package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hmmnet/hmmnet/cmd/history"
	"github.com/hmmnet/hmmnet/cmd/scan"
	"github.com/hmmnet/hmmnet/cmd/search"
	"github.com/hmmnet/hmmnet/rpc/common"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "hmmnet",
		Short: "client for the profile search daemon",
		Long: fmt.Sprintf(`hmmnet (v%s)

A client for the profile search daemon. Sends sequence, alignment and
profile queries over TCP or unix sockets and renders the scored hits.`, Version),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level, _ := cmd.Flags().GetString("log-level")
			common.InitLoggers(level)
		},
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of hmmnet",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("hmmnet v%s\n", Version)
		},
	}
)

func init() {
	// Run the root PersistentPreRun even when a subcommand defines its own
	cobra.EnableTraverseRunHooks = true

	// Add Commands
	RootCmd.AddCommand(search.SearchCmd)
	RootCmd.AddCommand(scan.ScanCmd)
	RootCmd.AddCommand(history.HistoryCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	RootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
