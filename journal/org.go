package journal

import (
	"bytes"
	"io"
	"text/template"
	"time"

	"github.com/rotisserie/eris"

	"github.com/jhizzard/Strata/market"
)

// RunReport is a run with its valuations, ready to be rendered.
type RunReport struct {
	Run        RunRecord
	Valuations []ValuationRecord
}

var runOrgFuncs = template.FuncMap{
	"date": market.FormatDate,
	"stamp": func(t time.Time) string {
		if t.IsZero() {
			return "(unknown)"
		}
		return t.UTC().Format("2006-01-02 Mon 15:04")
	},
	"amount": func(v ValuationRecord) string { return v.amountString() },
}

var runOrgTemplate = template.Must(template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate))

// WriteOrg renders the report as an org-mode entry.
func (r RunReport) WriteOrg(w io.Writer) error {
	return eris.Wrap(runOrgTemplate.Execute(w, r), "journal: render org")
}

// ExportRunOrg loads a run and its valuations and returns the org entry.
func (j *SQLite) ExportRunOrg(runID string) (string, error) {
	run, err := j.GetRun(runID)
	if err != nil {
		return "", err
	}
	vals, err := j.ListValuationsByRun(runID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := (RunReport{Run: run, Valuations: vals}).WriteOrg(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const RunOrgTemplate = `* VALUATION: {{.Run.Kind}} as of {{date .Run.ValuationDate}}
:PROPERTIES:
:RUN_ID:     {{.Run.RunID}}
:PORTFOLIO:  {{if .Run.Portfolio}}{{.Run.Portfolio}}{{else}}(inline){{end}}
:KIND:       {{.Run.Kind}}
:TRADES:     {{.Run.Trades}}
:STATUS:     {{.Run.Status}}
:STARTED:    [{{stamp .Run.StartedAt}}]
:DURATION:   {{.Run.Duration}}
:END:
{{- if .Run.Error }}

** Error
{{.Run.Error}}
{{- end }}
{{- if .Valuations }}

** Valuations
| Trade | Product | Currency | Amount |
|-------+---------+----------+--------|
{{- range .Valuations }}
| {{.TradeID}} | {{.Product}} | {{.Currency}} | {{amount .}} |
{{- end }}
{{- end }}
`
