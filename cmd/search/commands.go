package search

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmmnet/hmmnet/lib/query"
)

var (
	seqCmd = &cobra.Command{
		Use:   "seq [fasta file]",
		Short: "Searches the sequence database with a single sequence",
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

			db, ranges, cfg, err := searchOpts()
			if err != nil {
				return err
			}

			start := time.Now()
			th, err := searchClient.SearchSequence(q, db, ranges, cfg)
			if err != nil {
				return err
			}
			return finishSearch(cmd, q, "search-seq", db, th, time.Since(start))
		},
	}
	msaCmd = &cobra.Command{
		Use:   "msa [stockholm file]",
		Short: "Searches the sequence database with a multiple alignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			q, err := query.ParseMSA(f)
			if err != nil {
				return fmt.Errorf("failed to parse query: %w", err)
			}

			db, ranges, cfg, err := searchOpts()
			if err != nil {
				return err
			}

			start := time.Now()
			th, err := searchClient.SearchMSA(q, db, ranges, cfg)
			if err != nil {
				return err
			}
			return finishSearch(cmd, q, "search-msa", db, th, time.Since(start))
		},
	}
	hmmCmd = &cobra.Command{
		Use:   "hmm [profile file]",
		Short: "Searches the sequence database with a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			q, err := query.ParseProfile(f)
			if err != nil {
				return fmt.Errorf("failed to parse query: %w", err)
			}

			db, ranges, cfg, err := searchOpts()
			if err != nil {
				return err
			}

			start := time.Now()
			th, err := searchClient.SearchProfile(q, db, ranges, cfg)
			if err != nil {
				return err
			}
			return finishSearch(cmd, q, "search-hmm", db, th, time.Since(start))
		},
	}
)
