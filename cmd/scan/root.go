package scan

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hmmnet/hmmnet/cmd/util"
	"github.com/hmmnet/hmmnet/lib/history"
	"github.com/hmmnet/hmmnet/lib/query"
	"github.com/hmmnet/hmmnet/rpc/client"
	"github.com/hmmnet/hmmnet/rpc/common"
)

var (
	scanClient *client.Client
	scanConfig common.ClientConfig

	// ScanCmd represents the scan command group
	ScanCmd = &cobra.Command{
		Use:               "scan",
		Short:             "Scan a profile database with a sequence",
		PersistentPreRunE: setupScanClient,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if scanClient != nil {
				return scanClient.Close()
			}
			return nil
		},
	}

	seqCmd = &cobra.Command{
		Use:   "seq [fasta file]",
		Short: "Scans the profile database with a single sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			q, err := query.ParseSequence(f)
			if err != nil {
				return fmt.Errorf("failed to parse query: %w", err)
			}

			db := viper.GetUint64("db")
			cfg, err := util.GetPipelineConfig()
			if err != nil {
				return err
			}

			start := time.Now()
			th, err := scanClient.ScanSequence(q, db, cfg)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			util.PrintHits(cmd.OutOrStdout(), th)

			if err := util.ExportHits(th, viper.GetString("export"), viper.GetBool("compress")); err != nil {
				return err
			}

			if viper.GetBool("no-history") {
				return nil
			}

			store, err := history.Open(util.DefaultHistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			return store.Record(history.Entry{
				Query:      q.QueryName(),
				Mode:       "scan-seq",
				DB:         db,
				Endpoint:   scanConfig.Endpoint,
				Hits:       uint64(th.Len()),
				Reported:   th.NReported,
				Included:   th.NIncluded,
				DurationMS: elapsed.Milliseconds(),
			})
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common client flags to the scan command
	util.SetupClientFlags(ScanCmd)

	// Profile databases are selected by number on the daemon side
	ScanCmd.PersistentFlags().Uint64("db", 1, util.WrapString("Number of the profile database to scan"))

	// Add subcommands
	ScanCmd.AddCommand(seqCmd)
}

// setupScanClient creates and connects the daemon client
func setupScanClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	scanConfig = util.GetClientConfig()

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	scanClient = client.New(scanConfig, t)
	return scanClient.Connect()
}
