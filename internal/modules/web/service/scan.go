package service

import (
	"net/http"
	"time"

	"ema_scanner/internal/helper"
	"ema_scanner/internal/modules/store/pg"
	"ema_scanner/pkg/logger"
)

// handleScanRun гоняет EMA-скан по вочлисту. Результат уходит в ответ,
// в историю и в канал алертов.
func (s *Server) handleScanRun(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "login required")
		return
	}
	if !user.Authenticated() {
		writeError(w, http.StatusForbidden, "please authenticate with fyers first")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid watchlist id")
		return
	}
	tf, ok := helper.NormTF(r.URL.Query().Get("timeframe"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid timeframe, choose 5, 10 or 15 minutes")
		return
	}

	wl, err := s.watchlists.Get(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, http.StatusNotFound, "watchlist not found")
		return
	}
	if len(wl.Symbols) == 0 {
		writeError(w, http.StatusBadRequest, "watchlist is empty, add symbols first")
		return
	}

	logger.Info("starting scan for watchlist %q: %d symbols on %s", wl.Name, len(wl.Symbols), tf.Label())

	src := s.fyers.Client(user.FyersAppID, user.AccessToken)
	scan := s.scanner.ScanWatchlist(r.Context(), src, wl.ID, wl.Symbols, tf)

	if err := s.scans.Insert(r.Context(), user.ID, scan); err != nil {
		// история вторична, скан уже на руках
		logger.Error("persist scan history: %v", err)
	}
	s.state.TouchScan(time.Now())

	select {
	case s.scansOut <- scan:
	default:
		logger.Warn("alerts channel full, scan for watchlist %d dropped", wl.ID)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"watchlist_name":      wl.Name,
		"timeframe":           scan.Timeframe,
		"total_symbols":       len(wl.Symbols),
		"symbols_scanned":     len(scan.Results),
		"symbols_failed":      len(scan.Errors),
		"total_crossovers":    len(scan.Events),
		"positive_crossovers": scan.Positive(),
		"negative_crossovers": scan.Negative(),
		"results":             scan.Results,
		"errors":              scan.Errors,
		"all_crossovers":      scan.Events,
		"scan_time":           scan.StartedAt,
	})
}

func (s *Server) handleScanHistory(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "login required")
		return
	}
	records, err := s.scans.ListRecent(r.Context(), user.ID, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if records == nil {
		records = []pg.ScanRecord{} // пустой список, не null
	}
	writeJSON(w, http.StatusOK, records)
}
