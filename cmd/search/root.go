package search

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hmmnet/hmmnet/cmd/util"
	"github.com/hmmnet/hmmnet/lib/history"
	"github.com/hmmnet/hmmnet/lib/hits"
	"github.com/hmmnet/hmmnet/lib/pipeline"
	"github.com/hmmnet/hmmnet/lib/query"
	"github.com/hmmnet/hmmnet/rpc/client"
	"github.com/hmmnet/hmmnet/rpc/common"
	"github.com/hmmnet/hmmnet/rpc/wire"
)

var (
	searchClient *client.Client
	searchConfig common.ClientConfig

	// SearchCmd represents the search command group
	SearchCmd = &cobra.Command{
		Use:               "search",
		Short:             "Search a sequence database with a query",
		PersistentPreRunE: setupSearchClient,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if searchClient != nil {
				return searchClient.Close()
			}
			return nil
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common client flags to the search command
	util.SetupClientFlags(SearchCmd)

	// Sequence databases are selected by number on the daemon side
	SearchCmd.PersistentFlags().Uint64("db", 1, util.WrapString("Number of the sequence database to search"))
	SearchCmd.PersistentFlags().String("ranges", "", util.WrapString("Restrict the search to sequence ranges, e.g. 10..20,30..40"))

	// Add subcommands
	SearchCmd.AddCommand(seqCmd)
	SearchCmd.AddCommand(msaCmd)
	SearchCmd.AddCommand(hmmCmd)
}

// setupSearchClient creates and connects the daemon client
func setupSearchClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	searchConfig = util.GetClientConfig()

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	searchClient = client.New(searchConfig, t)
	return searchClient.Connect()
}

// searchOpts gathers the per-search settings from viper
func searchOpts() (db uint64, ranges []wire.Range, cfg pipeline.Config, err error) {
	db = viper.GetUint64("db")

	if spec := viper.GetString("ranges"); spec != "" {
		ranges, err = wire.ParseRanges(spec)
		if err != nil {
			return
		}
	}

	cfg, err = util.GetPipelineConfig()
	return
}

// finishSearch prints, exports and records the result of one search
func finishSearch(cmd *cobra.Command, q query.Query, mode string, db uint64, th *hits.TopHits, elapsed time.Duration) error {
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
		Mode:       mode,
		DB:         db,
		Endpoint:   searchConfig.Endpoint,
		Hits:       uint64(th.Len()),
		Reported:   th.NReported,
		Included:   th.NIncluded,
		DurationMS: elapsed.Milliseconds(),
	})
}
