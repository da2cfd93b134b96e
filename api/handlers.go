package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/etnz/tradejournal"
	"github.com/etnz/tradejournal/activity"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handlePortfolioValue handles GET /api/portfolio/value
func (s *Server) handlePortfolioValue(w http.ResponseWriter, r *http.Request) {
	v, err := s.engine.Valuation(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newValueJSON(v))
}

// handleOpenTrades handles GET /api/trades/open?limit, most recently bought first.
// A missing or invalid limit lists every open trade.
func (s *Server) handleOpenTrades(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		limit = -1
	}
	open, err := s.engine.RecentOpen(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"trades": newTradesJSON(open)})
}

// handleClosedTrades handles GET /api/trades/closed?q&exit_reason&start_date&end_date&page
func (s *Server) handleClosedTrades(w http.ResponseWriter, r *http.Request) {
	f, fj := s.filter(r)
	page, err := s.engine.ClosedPage(r.Context(), f, r.URL.Query().Get("page"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pageJSON{
		Page:        page.Number,
		NumPages:    page.NumPages,
		Count:       page.Total,
		HasPrevious: page.HasPrevious(),
		HasNext:     page.HasNext(),
		Filters:     fj,
		Trades:      newTradesJSON(page.Trades),
	})
}

// handleTrade handles GET /api/trades/{id}
func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	t, err := s.engine.Trade(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, tradejournal.ErrTradeNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newTradeJSON(t))
}

// handleReport handles GET /api/reports with the same filters as the closed trades.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	f, fj := s.filter(r)
	rep, err := s.engine.Report(r.Context(), f)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	sum := rep.Summary
	s.writeJSON(w, http.StatusOK, reportJSON{
		TotalClosed:   sum.TotalClosed,
		Wins:          sum.Wins,
		Losses:        sum.Losses,
		WinRate:       percent(sum.WinRate),
		TotalRealized: amount(&sum.TotalRealized),
		AvgWin:        amount(sum.AverageWin),
		AvgLoss:       amount(sum.AverageLoss),
		Filters:       fj,
		ClosedTrades:  newTradesJSON(rep.Trades),
	})
}

// handleExportCSV handles GET /api/reports/export.csv
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	f, _ := s.filter(r)
	closed, err := s.engine.Closed(r.Context(), f)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=closed_trades.csv")
	if err := tradejournal.WriteCSV(w, closed); err != nil {
		// headers are gone already.
		s.log.Error().Err(err).Msg("cannot write csv export")
	}
}

var errNoRules = errors.New("rules are not available")

// maxRulesSize bounds the body of PUT /api/rules.
const maxRulesSize = 1 << 20

// handleRules handles GET /api/rules
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	if s.rules == nil {
		s.writeError(w, http.StatusNotFound, errNoRules)
		return
	}
	rules, err := s.rules.Rules(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newRulesJSON(rules))
}

// handleUpdateRules handles PUT /api/rules with a {"title", "content"} body.
// A missing title keeps the current one.
func (s *Server) handleUpdateRules(w http.ResponseWriter, r *http.Request) {
	if s.rules == nil {
		s.writeError(w, http.StatusNotFound, errNoRules)
		return
	}
	var in rulesInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRulesSize)).Decode(&in); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid rules: %w", err))
		return
	}
	rules, err := s.rules.Rules(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	rules = rules.Edit(in.Title, in.Content, time.Now())
	if err := s.rules.SaveRules(r.Context(), rules); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.activity.Log("Updated rules", &activity.Target{Type: "Rules"}, "title="+rules.Title)
	s.writeJSON(w, http.StatusOK, newRulesJSON(rules))
}

// filter reads the closed trades filter from the query string.
func (s *Server) filter(r *http.Request) (tradejournal.Filter, filterJSON) {
	q := r.URL.Query()
	fj := filterJSON{
		Q:          q.Get("q"),
		ExitReason: q.Get("exit_reason"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
	}
	return tradejournal.ParseFilter(s.log, fj.Q, fj.ExitReason, fj.StartDate, fj.EndDate), fj
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("cannot encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
