package tradejournal

import (
	"strconv"
	"strings"
)

// DefaultPageSize is the number of closed trades on a page.
const DefaultPageSize = 10

// Page is a 1-indexed slice of a trade list.
type Page struct {
	Number   int // 1-indexed
	NumPages int // at least 1, even for an empty list.
	Size     int
	Total    int // number of trades in the whole list.
	Trades   []Trade
}

// HasPrevious reports whether a previous page exists.
func (p Page) HasPrevious() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.Number < p.NumPages }

// Paginate returns the requested page of trades.
//
// A missing or non integer page gives the first page. A page number past the
// end, or lower than 1, gives the last page. It never fails.
func Paginate(trades []Trade, page string, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	numPages := (len(trades) + size - 1) / size
	if numPages == 0 {
		numPages = 1
	}

	n, err := strconv.Atoi(strings.TrimSpace(page))
	switch {
	case err != nil:
		n = 1
	case n < 1 || n > numPages:
		n = numPages
	}

	start := (n - 1) * size
	end := min(start+size, len(trades))
	return Page{
		Number:   n,
		NumPages: numPages,
		Size:     size,
		Total:    len(trades),
		Trades:   trades[start:end],
	}
}
