package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/tradejournal"
	"github.com/etnz/tradejournal/activity"
	"github.com/etnz/tradejournal/date"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(v float64) tradejournal.Money { return tradejournal.M(v, "USD") }

func fixture(t *testing.T) *tradejournal.Journal {
	t.Helper()
	j := tradejournal.NewJournal("USD")
	for _, tr := range []tradejournal.Trade{
		{ID: "a", Ticker: "XYZ", Quantity: tradejournal.Q(10), BuyPrice: usd(100), BuyDate: date.MustParse("2025-01-02")},
		{ID: "b", Ticker: "xyz", Quantity: tradejournal.Q(5), BuyPrice: usd(110), BuyDate: date.MustParse("2025-01-03")},
		{ID: "c", Ticker: "ABC", Quantity: tradejournal.Q(2), BuyPrice: usd(50), BuyDate: date.MustParse("2025-01-04")},
	} {
		_, err := j.Buy(tr)
		require.NoError(t, err)
	}
	// 12 closed trades: 8 wins, 4 losses, one sold every day of february.
	for i := range 12 {
		sell := 110.0
		reason := tradejournal.ResistanceAbove
		if i%3 == 0 {
			sell, reason = 95, tradejournal.StopLoss
		}
		id := fmt.Sprintf("s%02d", i)
		_, err := j.Buy(tradejournal.Trade{ID: id, Ticker: "AAPL", Quantity: tradejournal.Q(1), BuyPrice: usd(100), BuyDate: date.MustParse("2025-01-10")})
		require.NoError(t, err)
		_, err = j.Close(id, usd(sell), date.New(2025, 2, i+1), reason, "")
		require.NoError(t, err)
	}
	return j
}

func newTestServer(t *testing.T, repo tradejournal.Repository) *Server {
	t.Helper()
	log := zerolog.New(nil).Level(zerolog.Disabled)
	prices := tradejournal.NewResolver(tradejournal.Prices{"XYZ": 120}, "USD", log)
	engine := tradejournal.NewEngine(repo, prices, "USD", log)
	return New(Config{Addr: ":0", Log: log, Engine: engine})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var res map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return res
}

func TestHealth(t *testing.T) {
	w := get(t, newTestServer(t, fixture(t)), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestPortfolioValue(t *testing.T) {
	w := get(t, newTestServer(t, fixture(t)), "/api/portfolio/value")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode(t, w)

	assert.Equal(t, 1800.0, res["total_value"])
	assert.Equal(t, 1650.0, res["total_cost"])
	assert.Equal(t, 250.0, res["total_unrealized"])
	assert.Equal(t, 250.0, res["total_gain"])
	assert.Equal(t, 15.15, res["total_gain_pct"])
	assert.Equal(t, 1.0, res["unpriced"])

	positions := res["positions"].([]any)
	require.Len(t, positions, 2)
	abc := positions[0].(map[string]any)
	assert.Equal(t, "ABC", abc["ticker"])
	assert.Nil(t, abc["last_price"])
	assert.Nil(t, abc["unrealized_pnl"])
	assert.Nil(t, abc["pnl_pct"])
	assert.Equal(t, 0.0, abc["market_value"])

	xyz := positions[1].(map[string]any)
	assert.Equal(t, "a", xyz["id"])
	assert.Equal(t, 15.0, xyz["quantity"])
	assert.Equal(t, 103.33, xyz["buy_price"])
	assert.Equal(t, 120.0, xyz["last_price"])
	assert.Equal(t, 250.0, xyz["unrealized_pnl"])
	assert.Equal(t, 16.13, xyz["pnl_pct"])
	assert.Equal(t, "2025-01-02", xyz["buy_date"])
}

func TestClosedTrades(t *testing.T) {
	s := newTestServer(t, fixture(t))

	tests := []struct {
		query    string
		page     float64
		numPages float64
		count    float64
		first    string
	}{
		{"", 1, 2, 12, "s11"},
		{"?page=2", 2, 2, 12, "s01"},
		{"?page=abc", 1, 2, 12, "s11"},
		{"?page=99", 2, 2, 12, "s01"},
		{"?page=0", 2, 2, 12, "s01"},
		{"?exit_reason=SL", 1, 1, 4, "s09"},
		{"?q=msft", 1, 1, 0, ""},
		{"?q=apL&start_date=2025-02-05&end_date=2025-02-06", 1, 1, 2, "s05"},
		{"?start_date=not-a-date", 1, 2, 12, "s11"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := get(t, s, "/api/trades/closed"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)
			res := decode(t, w)
			assert.Equal(t, tt.page, res["page"])
			assert.Equal(t, tt.numPages, res["num_pages"])
			assert.Equal(t, tt.count, res["count"])
			trades := res["trades"].([]any)
			if tt.first == "" {
				assert.Empty(t, trades)
				return
			}
			assert.Equal(t, tt.first, trades[0].(map[string]any)["id"])
		})
	}
}

func TestTrade(t *testing.T) {
	s := newTestServer(t, fixture(t))

	w := get(t, s, "/api/trades/s00")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode(t, w)
	assert.Equal(t, -5.0, res["pnl"])
	assert.Equal(t, "SL", res["exit_reason"])
	assert.Equal(t, "2025-02-01", res["sell_date"])

	w = get(t, s, "/api/trades/a")
	require.Equal(t, http.StatusOK, w.Code)
	res = decode(t, w)
	assert.Nil(t, res["pnl"])
	assert.Nil(t, res["sell_date"])

	w = get(t, s, "/api/trades/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode(t, w)["error"], "trade not found")
}

func TestOpenTrades(t *testing.T) {
	w := get(t, newTestServer(t, fixture(t)), "/api/trades/open")
	require.Equal(t, http.StatusOK, w.Code)
	trades := decode(t, w)["trades"].([]any)
	require.Len(t, trades, 3)
	assert.Equal(t, "c", trades[0].(map[string]any)["id"])
}

func TestOpenTrades_Limit(t *testing.T) {
	s := newTestServer(t, fixture(t))
	tests := []struct {
		query string
		want  []string
	}{
		{"?limit=2", []string{"c", "b"}},
		{"?limit=0", []string{}},
		{"?limit=x", []string{"c", "b", "a"}},
		{"?limit=-3", []string{"c", "b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := get(t, s, "/api/trades/open"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)
			ids := []string{}
			for _, tr := range decode(t, w)["trades"].([]any) {
				ids = append(ids, tr.(map[string]any)["id"].(string))
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

// recordedActivity keeps the logged actions.
type recordedActivity struct{ actions []string }

func (r *recordedActivity) Log(action string, _ *activity.Target, details string) {
	r.actions = append(r.actions, action+": "+details)
}

func TestRules(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	rec := &recordedActivity{}
	path := filepath.Join(t.TempDir(), "rules.md")
	s := New(Config{
		Log:      log,
		Engine:   tradejournal.NewEngine(fixture(t), nil, "USD", log),
		Rules:    tradejournal.RulesFile(path),
		Activity: rec,
	})

	res := decode(t, get(t, s, "/api/rules"))
	assert.Equal(t, "Stage Analysis Rules", res["title"])
	assert.Equal(t, "", res["content"])
	assert.Nil(t, res["updated_at"])

	put := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/rules", strings.NewReader(body)))
		return w
	}

	w := put(`{"content":"Only buy stage 2."}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res = decode(t, w)
	assert.Equal(t, "Stage Analysis Rules", res["title"])
	assert.Equal(t, "Only buy stage 2.", res["content"])
	assert.NotNil(t, res["updated_at"])

	w = put(`{"title":"Mine","content":"Cut losses at 8%."}`)
	require.Equal(t, http.StatusOK, w.Code)

	res = decode(t, get(t, s, "/api/rules"))
	assert.Equal(t, "Mine", res["title"])
	assert.Equal(t, "Cut losses at 8%.", res["content"])

	w = put(`{"content":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "invalid rules")

	assert.Equal(t, []string{"Updated rules: title=Stage Analysis Rules", "Updated rules: title=Mine"}, rec.actions)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "title: Mine")
}

func TestRules_Disabled(t *testing.T) {
	s := newTestServer(t, fixture(t))
	w := get(t, s, "/api/rules")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode(t, w)["error"], "not available")
}

func TestReport(t *testing.T) {
	s := newTestServer(t, fixture(t))

	res := decode(t, get(t, s, "/api/reports"))
	assert.Equal(t, 12.0, res["total_closed"])
	assert.Equal(t, 8.0, res["wins"])
	assert.Equal(t, 4.0, res["losses"])
	assert.Equal(t, 66.67, res["win_rate"])
	assert.Equal(t, 60.0, res["total_realized"])
	assert.Equal(t, 10.0, res["avg_win"])
	assert.Equal(t, -5.0, res["avg_loss"])
	assert.Len(t, res["closed_trades"], 12)

	res = decode(t, get(t, s, "/api/reports?q=nothing"))
	assert.Equal(t, 0.0, res["total_closed"])
	assert.Nil(t, res["win_rate"])
	assert.Nil(t, res["avg_win"])
	assert.Nil(t, res["avg_loss"])
	assert.Equal(t, "nothing", res["filters"].(map[string]any)["q"])
}

func TestExportCSV(t *testing.T) {
	w := get(t, newTestServer(t, fixture(t)), "/api/reports/export.csv?exit_reason=SL")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "closed_trades.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, strings.Join(tradejournal.CSVHeader, ","), lines[0])
	assert.Equal(t, "s09,AAPL,1,100,2025-01-10,95,2025-02-10,-5,SL,,", lines[1])
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, fixture(t))
	req := httptest.NewRequest(http.MethodOptions, "/api/reports", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

type brokenRepo struct{}

func (brokenRepo) OpenTrades(context.Context) ([]tradejournal.Trade, error) {
	return nil, errors.New("disk on fire")
}
func (brokenRepo) ClosedTrades(context.Context) ([]tradejournal.Trade, error) {
	return nil, errors.New("disk on fire")
}

func TestRepositoryFailure(t *testing.T) {
	s := newTestServer(t, brokenRepo{})
	for _, target := range []string{"/api/portfolio/value", "/api/trades/closed", "/api/reports", "/api/reports/export.csv", "/api/trades/open"} {
		w := get(t, s, target)
		assert.Equal(t, http.StatusInternalServerError, w.Code, target)
		assert.Contains(t, decode(t, w)["error"], "disk on fire", target)
	}
}
