package renderer

import (
	"github.com/etnz/tradejournal"
	"github.com/etnz/tradejournal/date"
)

// Portfolio is the live valuation of the open positions on a given day.
type Portfolio struct {
	Date date.Date
	tradejournal.Valuation
	Recent []TradeRow // most recently bought open trades.
}

const portfolioMarkdownTemplate = `# Portfolio on {{ .Date }}

Total Value: **{{ .Summary.TotalValue }}**
{{- if .Positions }}

| Ticker | Quantity | Avg Buy | Cost | Last | Market Value | Unrealized | P&L | Since |
|:---|---:|---:|---:|---:|---:|---:|---:|:---|
{{- range .Positions }}
| {{ .Ticker }} | {{ .Quantity }} | {{ .AverageBuyPrice }} | {{ .CostBasis }} | {{ opt .Price }} | {{ .MarketValue }} | {{ signed .Unrealized }} | {{ signed .PnLPercent }} | {{ .OldestBuyDate }} |
{{- end }}
| **Total** | | | **{{ .Summary.TotalCost }}** | | **{{ .Summary.TotalValue }}** | **{{ signed .Summary.TotalUnrealized }}** | **{{ signed .Summary.TotalGainPercent }}** | |
{{- else }}

No open positions.
{{- end }}
{{- if .Summary.Unpriced }}

{{ .Summary.Unpriced }} position(s) have no known price and count for zero in the totals.
{{- end }}
{{- if .Recent }}

## Recent Trades

{{ template "open_table" .Recent }}
{{- end }}
`

// RenderPortfolio renders the valuation of the open positions to markdown.
func RenderPortfolio(p *Portfolio) string {
	return renderTemplate("portfolio", portfolioMarkdownTemplate, map[string]string{"open_table": openTableTemplate}, p)
}
