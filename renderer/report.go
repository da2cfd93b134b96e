package renderer

import (
	"github.com/etnz/tradejournal"
)

// Report is the statistics of the filtered closed trades, and the trades themselves.
type Report struct {
	Filter  string
	Summary tradejournal.ReportSummary
	Trades  []TradeRow
}

// NewReport builds the report view.
func NewReport(r *tradejournal.Report) *Report {
	return &Report{
		Filter:  DescribeFilter(r.Filter),
		Summary: r.Summary,
		Trades:  NewTradeRows(r.Trades),
	}
}

const reportMarkdownTemplate = `# Closed Trades Report
{{ if .Filter }}
Filter: {{ .Filter }}
{{ end }}
## Statistics

| Metric | Value |
|:---|---:|
| Closed Trades | {{ .Summary.TotalClosed }} |
| Wins | {{ .Summary.Wins }} |
| Losses | {{ .Summary.Losses }} |
| Win Rate | {{ opt .Summary.WinRate }} |
| Total Realized | {{ signed .Summary.TotalRealized }} |
| Average Win | {{ signed .Summary.AverageWin }} |
| Average Loss | {{ signed .Summary.AverageLoss }} |
{{- if .Trades }}

## Trades

{{ template "closed_table" .Trades }}
{{- end }}
`

// RenderReport renders the report to markdown.
func RenderReport(r *Report) string {
	partials := map[string]string{"closed_table": closedTableTemplate}
	return renderTemplate("report", reportMarkdownTemplate, partials, r)
}
