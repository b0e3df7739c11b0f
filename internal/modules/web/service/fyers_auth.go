package service

import (
	"net/http"

	fyerssvc "ema_scanner/internal/modules/fyers/service"
	"ema_scanner/pkg/logger"
)

// handleFyersAuth начинает OAuth2: nonce в сессию, редирект на брокера.
func (s *Server) handleFyersAuth(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "login required")
		return
	}

	c, _ := r.Cookie(sessionCookie)
	state, ok := s.sessions.SetOAuthState(c.Value)
	if !ok {
		writeError(w, http.StatusUnauthorized, "login required")
		return
	}

	authURL := fyerssvc.AuthURL(s.cfg.Fyers.BaseURL, user.FyersAppID, s.cfg.Fyers.RedirectURI, state)
	logger.Info("initiating fyers auth for user: %s", user.Username)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// handleFyersCallback завершает OAuth2: сверяем state, меняем код на токен.
func (s *Server) handleFyersCallback(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "login required")
		return
	}

	c, _ := r.Cookie(sessionCookie)
	stored, ok := s.sessions.TakeOAuthState(c.Value)
	state := r.URL.Query().Get("state")
	if !ok || state == "" || state != stored {
		writeError(w, http.StatusBadRequest, "invalid state parameter")
		return
	}

	code := r.URL.Query().Get("auth_code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "no authorization code received")
		return
	}

	token, err := s.fyers.ExchangeAuthCode(r.Context(), user.FyersAppID, user.FyersSecret, code)
	if err != nil {
		logger.Error("fyers auth failed for user %s: %v", user.Username, err)
		writeError(w, http.StatusBadGateway, "token exchange failed")
		return
	}

	if err := s.users.SetAccessToken(r.Context(), user.ID, token); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	logger.Info("fyers auth successful for user: %s", user.Username)
	writeJSON(w, http.StatusOK, map[string]string{"status": "authenticated"})
}
