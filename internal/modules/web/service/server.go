package service

import (
	"net/http"

	"ema_scanner/internal/models"
	"ema_scanner/internal/modules/config"
	fyerssvc "ema_scanner/internal/modules/fyers/service"
	healthsvc "ema_scanner/internal/modules/health/service"
	scansvc "ema_scanner/internal/modules/scanner/service"
	"ema_scanner/internal/modules/store/pg"

	"github.com/gorilla/websocket"
)

// Server — HTTP-сервер дашборда: auth, вочлисты, сканы, OAuth-колбэк Fyers.
type Server struct {
	cfg        *config.Config
	users      *pg.Users
	watchlists *pg.Watchlists
	scans      *pg.Scans
	fyers      *fyerssvc.Factory
	scanner    *scansvc.Scanner
	state      *healthsvc.State
	sessions   *Sessions
	scansOut   chan<- *models.WatchlistScan

	upgrader websocket.Upgrader
}

func NewServer(
	cfg *config.Config,
	users *pg.Users,
	watchlists *pg.Watchlists,
	scans *pg.Scans,
	fyers *fyerssvc.Factory,
	scanner *scansvc.Scanner,
	state *healthsvc.State,
	scansOut chan<- *models.WatchlistScan,
) *Server {
	return &Server{
		cfg:        cfg,
		users:      users,
		watchlists: watchlists,
		scans:      scans,
		fyers:      fyers,
		scanner:    scanner,
		state:      state,
		sessions:   NewSessions(cfg.SessionTTL),
		scansOut:   scansOut,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)

	mux.HandleFunc("GET /api/fyers/auth", s.handleFyersAuth)
	mux.HandleFunc("GET /fyers/callback", s.handleFyersCallback)

	mux.HandleFunc("GET /api/watchlists", s.handleWatchlistList)
	mux.HandleFunc("POST /api/watchlists", s.handleWatchlistCreate)
	mux.HandleFunc("GET /api/watchlists/{id}", s.handleWatchlistGet)
	mux.HandleFunc("POST /api/watchlists/{id}/symbols", s.handleSymbolAdd)
	mux.HandleFunc("DELETE /api/watchlists/{id}/symbols/{symbolID}", s.handleSymbolRemove)

	mux.HandleFunc("POST /api/scan/{id}", s.handleScanRun)
	mux.HandleFunc("GET /api/scans", s.handleScanHistory)
	mux.HandleFunc("GET /ws/scan/{id}", s.handleScanWS)

	return mux
}
