package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/jhizzard/Strata/journal"
	"github.com/jhizzard/Strata/market"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Query journaled valuation runs",
	Long: `Query valuation runs recorded in a SQLite journal.

Subcommands:
  list  - List recent runs, newest first
  show  - Show one run with its valuations as an org-mode entry

Examples:
  strata runs list --limit 10
  strata runs show <run-id>`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run and its valuations",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var (
	runsDBPath string
	runsLimit  int
)

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)

	runsCmd.PersistentFlags().StringVarP(&runsDBPath, "db", "d", "", "path to SQLite journal DB (default from journal.db_path)")
	runsListCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "number of runs to show, 0 for all")
}

func openRunsDB() (*journal.SQLite, error) {
	path := runsDBPath
	if path == "" {
		path = cfg.Journal.DBPath
	}
	if path == "" {
		return nil, eris.Wrap(market.ErrInvalidArgument, "no journal database: set journal.db_path or --db")
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, eris.Wrap(err, "open db")
	}
	return j, nil
}

func runRunsList(cmd *cobra.Command, args []string) error {
	j, err := openRunsDB()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListRuns(runsLimit)
	if err != nil {
		return eris.Wrap(err, "query runs")
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTARTED\tDATE\tKIND\tPORTFOLIO\tTRADES\tSTATUS")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			r.RunID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), market.FormatDate(r.ValuationDate),
			r.Kind, r.Portfolio, r.Trades, r.Status)
	}
	return w.Flush()
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	j, err := openRunsDB()
	if err != nil {
		return err
	}
	defer j.Close()

	org, err := j.ExportRunOrg(args[0])
	if err != nil {
		return eris.Wrap(err, "get run")
	}
	fmt.Fprintln(cmd.OutOrStdout(), org)
	return nil
}
