// Package cmd implements the command-line interface for the hmmnet search
// client. It provides a hierarchical command structure with operations for
// querying the search daemon and inspecting past searches.
//
// The package is organized into several subpackages:
//
//   - search: Commands for searching a sequence database with a query (seq, msa, hmm)
//   - scan: Commands for scanning a profile database with a sequence
//   - history: Commands for the local search history
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See hmmnet -help for a list of all commands.
package cmd
