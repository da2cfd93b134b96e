package tradejournal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVHeader is the first row written by WriteCSV.
var CSVHeader = []string{"id", "ticker", "quantity", "buy_price", "buy_date", "sell_price", "sell_date", "pnl", "exit_reason", "indicators_text", "charts"}

// CSVRow returns the export row of a trade.
//
// Numbers are exact decimals, not display values. Missing values are empty.
func CSVRow(t Trade) []string {
	sellPrice, pnl := "", ""
	if t.SellPrice != nil {
		sellPrice = t.SellPrice.Exact()
	}
	if p, ok := t.RealizedPnL(); ok {
		pnl = p.Exact()
	}
	return []string{
		t.ID,
		t.Ticker,
		t.Quantity.String(),
		t.BuyPrice.Exact(),
		t.BuyDate.String(),
		sellPrice,
		t.SellDate.String(),
		pnl,
		string(t.ExitReason),
		oneLine(t.Indicators),
		strings.Join(t.ChartFiles(), ";"),
	}
}

// oneLine keeps a multi-line text on one row.
func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", " | ")
}

// WriteCSV writes the header and one row per trade.
func WriteCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("cannot write csv header: %w", err)
	}
	for i, t := range trades {
		if err := cw.Write(CSVRow(t)); err != nil {
			return fmt.Errorf("cannot write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
