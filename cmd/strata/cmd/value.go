package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jhizzard/Strata/journal"
	"github.com/jhizzard/Strata/market"
	"github.com/jhizzard/Strata/portfolio"
	"github.com/jhizzard/Strata/pricing"
	"github.com/jhizzard/Strata/valuation"
)

var valueCmd = &cobra.Command{
	Use:   "value",
	Short: "Value a portfolio once",
	Long: `Load a portfolio, build the market environment from the configuration and
print the value of every trade.

Flags override the matching valuation settings of the configuration file.

Examples:
  strata value --portfolio book.yaml
  strata value -c eod.yaml --date 2025-01-02 --kind fv --reporting USD
  strata value -c eod.yaml --journal none`,
	Args: cobra.NoArgs,
	RunE: runValue,
}

var (
	valuePortfolio string
	valueDate      string
	valueKind      string
	valueReporting string
	valueJournal   string
)

func init() {
	rootCmd.AddCommand(valueCmd)

	valueCmd.Flags().StringVarP(&valuePortfolio, "portfolio", "p", "", "portfolio file (default from valuation.portfolio)")
	valueCmd.Flags().StringVar(&valueDate, "date", "", "valuation date YYYY-MM-DD or today")
	valueCmd.Flags().StringVar(&valueKind, "kind", "", "pv or fv")
	valueCmd.Flags().StringVar(&valueReporting, "reporting", "", "reporting currency, or none to keep per-currency totals only")
	valueCmd.Flags().StringVar(&valueJournal, "journal", "", "journal type: none, csv or sqlite")
}

func runValue(cmd *cobra.Command, args []string) error {
	if valuePortfolio != "" {
		cfg.Valuation.Portfolio = valuePortfolio
	}
	if valueDate != "" {
		cfg.Valuation.Date = valueDate
	}
	if valueKind != "" {
		cfg.Valuation.Kind = valueKind
	}
	switch {
	case strings.EqualFold(valueReporting, "none"):
		cfg.Valuation.ReportingCurrency = ""
	case valueReporting != "":
		cfg.Valuation.ReportingCurrency = valueReporting
	}
	if valueJournal != "" {
		cfg.Journal.Type = valueJournal
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	job, err := newValuationJob(timeNow)
	if err != nil {
		return err
	}
	defer job.Close()

	run, err := job.value(cmd.Context())
	if err != nil {
		return err
	}
	return printRun(cmd.OutOrStdout(), run)
}

// valuationJob holds everything a run needs that does not change between
// runs: the portfolio, the service and the journal.
type valuationJob struct {
	book    *portfolio.Portfolio
	kind    pricing.ValueKind
	runner  *valuation.Runner
	journal journal.Journal
	now     func() time.Time
}

func newValuationJob(now func() time.Time) (*valuationJob, error) {
	if cfg.Valuation.Portfolio == "" {
		return nil, eris.Wrap(market.ErrInvalidArgument, "no portfolio: set valuation.portfolio or --portfolio")
	}
	book, err := portfolio.Load(cfg.Valuation.Portfolio)
	if err != nil {
		return nil, err
	}
	kind, err := cfg.ValueKind()
	if err != nil {
		return nil, err
	}
	reporting, err := cfg.ReportingCurrency()
	if err != nil {
		return nil, err
	}

	svc, err := valuation.NewService(pricing.NewStandardRegistry(),
		valuation.WithMaxConcurrency(cfg.Valuation.MaxConcurrency),
		valuation.WithReportingCurrency(reporting),
		valuation.WithLogger(zap.L()))
	if err != nil {
		return nil, err
	}
	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return nil, eris.Wrap(err, "open journal")
	}

	return &valuationJob{
		book:    book,
		kind:    kind,
		runner:  valuation.NewRunner(svc, j, zap.L()),
		journal: j,
		now:     now,
	}, nil
}

// value builds a fresh environment for the configured date and runs it.
func (j *valuationJob) value(ctx context.Context) (*valuation.Run, error) {
	date, err := cfg.ValuationDate(j.now())
	if err != nil {
		return nil, err
	}
	env, err := cfg.BuildEnvironment(date)
	if err != nil {
		return nil, eris.Wrap(err, "build market")
	}
	return j.runner.Run(ctx, env, j.book, j.kind)
}

func (j *valuationJob) Close() error {
	return j.journal.Close()
}

func printRun(out io.Writer, run *valuation.Run) error {
	fmt.Fprintf(out, "Run %s  %s  %s\n\n", run.ID, market.FormatDate(run.ValuationDate), run.Kind)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "TRADE\tPRODUCT\tCCY\tAMOUNT\t")
	for _, res := range run.Results {
		for _, amt := range res.Value.Amounts() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", res.TradeID, res.Product, amt.Currency, formatAmount(amt))
		}
	}
	fmt.Fprintln(w, "\t\t\t\t")
	for _, amt := range run.Totals.Amounts() {
		fmt.Fprintf(w, "TOTAL\t\t%s\t%s\t\n", amt.Currency, formatAmount(amt))
	}
	if run.Reporting.Currency != "" {
		fmt.Fprintf(w, "REPORTING\t\t%s\t%s\t\n", run.Reporting.Currency, formatAmount(run.Reporting))
	}
	return w.Flush()
}

func formatAmount(a market.CurrencyAmount) string {
	return a.Rounded().StringFixed(a.Currency.MinorUnits())
}
