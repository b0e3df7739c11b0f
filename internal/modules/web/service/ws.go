package service

import (
	"net/http"
	"time"

	"ema_scanner/internal/helper"
	"ema_scanner/internal/models"
	"ema_scanner/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 10 * time.Second

// wsFrame — кадр прогресса скана. type: result | error | done.
type wsFrame struct {
	Type    string                `json:"type"`
	Result  *models.SymbolScan    `json:"result,omitempty"`
	Error   *models.SymbolError   `json:"error,omitempty"`
	Summary *models.WatchlistScan `json:"summary,omitempty"`
}

// handleScanWS стримит результаты батч-скана по мере готовности символов.
// Браузер видит прогресс, а не ждёт весь вочлист.
func (s *Server) handleScanWS(w http.ResponseWriter, r *http.Request) {
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

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ws upgrade: %v", err)
		return
	}
	defer conn.Close()

	writeFrame := func(f wsFrame) bool {
		data, err := sonic.Marshal(f)
		if err != nil {
			logger.Error("ws marshal frame: %v", err)
			return false
		}
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return false
		}
		return true
	}

	src := s.fyers.Client(user.FyersAppID, user.AccessToken)
	scan := s.scanner.ScanWatchlistStream(r.Context(), src, wl.ID, wl.Symbols, tf,
		func(res models.SymbolScan, symErr *models.SymbolError) {
			if symErr != nil {
				writeFrame(wsFrame{Type: "error", Error: symErr})
				return
			}
			writeFrame(wsFrame{Type: "result", Result: &res})
		})

	if err := s.scans.Insert(r.Context(), user.ID, scan); err != nil {
		logger.Error("persist scan history: %v", err)
	}
	s.state.TouchScan(time.Now())

	select {
	case s.scansOut <- scan:
	default:
		logger.Warn("alerts channel full, scan for watchlist %d dropped", wl.ID)
	}

	writeFrame(wsFrame{Type: "done", Summary: scan})
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
