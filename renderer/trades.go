package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/tradejournal"
	"github.com/etnz/tradejournal/date"
)

// TradeRow is a trade as shown in trade lists.
type TradeRow struct {
	ID         string
	Ticker     string
	Quantity   tradejournal.Quantity
	BuyPrice   tradejournal.Money
	BuyDate    date.Date
	SellPrice  *tradejournal.Money
	SellDate   date.Date
	PnL        *tradejournal.Money // nil for open trades.
	Win        bool
	ExitReason tradejournal.ExitReason
	Charts     int
}

// NewTradeRows converts trades into rows, keeping their order.
func NewTradeRows(trades []tradejournal.Trade) []TradeRow {
	rows := make([]TradeRow, 0, len(trades))
	for _, t := range trades {
		row := TradeRow{
			ID:         t.ID,
			Ticker:     t.Symbol(),
			Quantity:   t.Quantity,
			BuyPrice:   t.BuyPrice,
			BuyDate:    t.BuyDate,
			SellPrice:  t.SellPrice,
			SellDate:   t.SellDate,
			Win:        t.IsWin(),
			ExitReason: t.ExitReason,
			Charts:     len(t.Charts),
		}
		if pnl, ok := t.RealizedPnL(); ok {
			row.PnL = &pnl
		}
		rows = append(rows, row)
	}
	return rows
}

// TradeList is the open trades and one page of the filtered closed trades.
type TradeList struct {
	Open     []TradeRow
	Filter   string
	Number   int
	NumPages int
	Total    int
	Closed   []TradeRow
}

// NewTradeList builds the trade list view.
func NewTradeList(open []tradejournal.Trade, f tradejournal.Filter, page tradejournal.Page) *TradeList {
	return &TradeList{
		Open:     NewTradeRows(open),
		Filter:   DescribeFilter(f),
		Number:   page.Number,
		NumPages: page.NumPages,
		Total:    page.Total,
		Closed:   NewTradeRows(page.Trades),
	}
}

// DescribeFilter returns a short human description of f, or "" when f selects everything.
func DescribeFilter(f tradejournal.Filter) string {
	var parts []string
	if f.Ticker != "" {
		parts = append(parts, fmt.Sprintf("ticker contains %q", f.Ticker))
	}
	if f.ExitReason != "" {
		parts = append(parts, fmt.Sprintf("exit reason is %s", f.ExitReason))
	}
	if !f.Sold.From.IsZero() {
		parts = append(parts, fmt.Sprintf("sold on or after %s", f.Sold.From))
	}
	if !f.Sold.To.IsZero() {
		parts = append(parts, fmt.Sprintf("sold on or before %s", f.Sold.To))
	}
	return strings.Join(parts, ", ")
}

const closedTableTemplate = `| Ticker | Quantity | Buy | Bought | Sell | Sold | P&L | Exit | Charts |
|:---|---:|---:|:---|---:|:---|---:|:---|---:|
{{- range . }}
| {{ .Ticker }} | {{ .Quantity }} | {{ .BuyPrice }} | {{ .BuyDate }} | {{ opt .SellPrice }} | {{ .SellDate }} | {{ signed .PnL }} | {{ .ExitReason.Label }} | {{ .Charts }} |
{{- end }}`

const openTableTemplate = `| Ticker | Quantity | Buy | Bought | ID |
|:---|---:|---:|:---|:---|
{{- range . }}
| {{ .Ticker }} | {{ .Quantity }} | {{ .BuyPrice }} | {{ .BuyDate }} | {{ .ID }} |
{{- end }}`

const tradeListMarkdownTemplate = `# Trades

## Open Trades
{{ if .Open }}
{{ template "open_table" .Open }}
{{- else }}
No open trades.
{{- end }}

## Closed Trades
{{ if .Filter }}
Filter: {{ .Filter }}
{{ end }}
{{- if .Closed }}
{{ template "closed_table" .Closed }}

Page {{ .Number }} of {{ .NumPages }} ({{ .Total }} trades)
{{- else }}
No closed trades.
{{- end }}
`

// RenderTradeList renders the trade list to markdown.
func RenderTradeList(l *TradeList) string {
	partials := map[string]string{"closed_table": closedTableTemplate, "open_table": openTableTemplate}
	return renderTemplate("tradeList", tradeListMarkdownTemplate, partials, l)
}
