package tradejournal

import (
	"context"
	"errors"
)

var (
	ErrTradeNotFound = errors.New("trade not found")
	ErrAlreadyClosed = errors.New("trade already closed")
)

// Repository supplies the trades of one user.
//
// Reporting never writes back to the repository.
type Repository interface {
	// OpenTrades returns the trades not closed yet.
	OpenTrades(ctx context.Context) ([]Trade, error)
	// ClosedTrades returns the closed trades.
	ClosedTrades(ctx context.Context) ([]Trade, error)
}
