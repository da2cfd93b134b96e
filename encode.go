package tradejournal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/tradejournal/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jtrade is the persisted form of a Trade, one per line.
type jtrade struct {
	ID         string           `json:"id"`
	Ticker     string           `json:"ticker"`
	Quantity   decimal.Decimal  `json:"quantity"`
	BuyPrice   decimal.Decimal  `json:"buyPrice"`
	BuyDate    date.Date        `json:"buyDate"`
	Indicators string           `json:"indicators,omitempty"`
	BuyNotes   string           `json:"buyNotes,omitempty"`
	Closed     bool             `json:"closed,omitempty"`
	SellPrice  *decimal.Decimal `json:"sellPrice,omitempty"`
	SellDate   *date.Date       `json:"sellDate,omitempty"`
	ExitReason ExitReason       `json:"exitReason,omitempty"`
	SellNotes  string           `json:"sellNotes,omitempty"`
	Charts     []Chart          `json:"charts,omitempty"`
}

func (j *Journal) toJSON(t Trade) jtrade {
	jt := jtrade{
		ID:         t.ID,
		Ticker:     t.Ticker,
		Quantity:   t.Quantity.Decimal(),
		BuyPrice:   t.BuyPrice.Decimal(),
		BuyDate:    t.BuyDate,
		Indicators: t.Indicators,
		BuyNotes:   t.BuyNotes,
		Closed:     t.Closed,
		ExitReason: t.ExitReason,
		SellNotes:  t.SellNotes,
		Charts:     t.Charts,
	}
	if t.SellPrice != nil {
		v := t.SellPrice.Decimal()
		jt.SellPrice = &v
	}
	if !t.SellDate.IsZero() {
		d := t.SellDate
		jt.SellDate = &d
	}
	return jt
}

func (j *Journal) fromJSON(jt jtrade) Trade {
	t := Trade{
		ID:         jt.ID,
		Ticker:     jt.Ticker,
		Quantity:   Q(jt.Quantity),
		BuyPrice:   M(jt.BuyPrice, j.currency),
		BuyDate:    jt.BuyDate,
		Indicators: jt.Indicators,
		BuyNotes:   jt.BuyNotes,
		Closed:     jt.Closed,
		ExitReason: jt.ExitReason,
		SellNotes:  jt.SellNotes,
		Charts:     jt.Charts,
	}
	if jt.SellPrice != nil {
		p := M(*jt.SellPrice, j.currency)
		t.SellPrice = &p
	}
	if jt.SellDate != nil {
		t.SellDate = *jt.SellDate
	}
	return t
}

// DecodeJournal reads a JSONL stream of trades.
func DecodeJournal(r io.Reader, currency string) (*Journal, error) {
	j := NewJournal(currency)
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue // Skip empty lines
		}
		var jt jtrade
		if err := json.Unmarshal(line, &jt); err != nil {
			return nil, fmt.Errorf("format error on line %d: %w", i, err)
		}
		if jt.ID == "" {
			return nil, fmt.Errorf("format error on line %d: missing trade id", i)
		}
		if seen[jt.ID] {
			return nil, fmt.Errorf("format error on line %d: trade %q is already defined", i, jt.ID)
		}
		seen[jt.ID] = true
		j.trades = append(j.trades, j.fromJSON(jt))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read journal: %w", err)
	}
	return j, nil
}

// EncodeJournal writes all trades as JSONL, in insertion order.
func EncodeJournal(w io.Writer, j *Journal) error {
	enc := json.NewEncoder(w)
	for _, t := range j.trades {
		if err := enc.Encode(j.toJSON(t)); err != nil {
			return fmt.Errorf("cannot encode trade %q: %w", t.ID, err)
		}
	}
	return nil
}
