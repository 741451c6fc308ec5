package history

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hmmnet/hmmnet/cmd/util"
	"github.com/hmmnet/hmmnet/lib/history"
)

var (

	// HistoryCmd lists the most recent local searches
	HistoryCmd = &cobra.Command{
		Use:   "history",
		Short: "Lists the most recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := cmd.Flags().GetInt("n")

			store, err := history.Open(util.DefaultHistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(n)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tMODE\tDB\tQUERY\tHITS\tREPORTED\tINCLUDED\tDURATION")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%d\t%d\t%dms\n",
					e.CreatedAt.Format("2006-01-02 15:04:05"),
					e.Mode, e.DB, e.Query, e.Hits, e.Reported, e.Included, e.DurationMS)
			}
			return tw.Flush()
		},
	}
)

func init() {
	HistoryCmd.Flags().Int("n", 20, util.WrapString("Number of entries to list"))
}
