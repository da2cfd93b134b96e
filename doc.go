// Package tradejournal provides the valuation and reporting engine of a
// personal trade journal. Trades are recorded when bought, closed when sold,
// and may carry chart images as evidence.
//
// The core functionalities include:
//   - Positions: open trades are grouped by ticker into a single weighted
//     average holding (Aggregate).
//   - Live valuation: positions are valued at the last traded price of an
//     external, possibly unavailable, price source (Resolver, Value).
//   - Closed trades: filtering, sell date ordering and pagination (Filter,
//     Paginate).
//   - Reports: win rate and realized gains statistics (Summarize).
//   - Export: closed trades as CSV rows with exact decimal values (WriteCSV).
//
// All computations are exact decimal computations. Rounding happens only when
// values are displayed (Display), and never feeds back into totals.
//
// This package serves as the foundational logic for the `tj` command-line
// tool and its JSON API.
package tradejournal
