package service

import (
	"net/http"
	"strings"

	"ema_scanner/internal/models"
	"ema_scanner/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FyersAppID  string `json:"fyers_app_id"`
	FyersSecret string `json:"fyers_app_secret"`
}

func (r registerRequest) validate() string {
	switch {
	case len(strings.TrimSpace(r.Username)) < 3:
		return "username must be at least 3 characters"
	case !strings.Contains(r.Email, "@"):
		return "invalid email"
	case len(r.Password) < 6:
		return "password must be at least 6 characters"
	case r.FyersAppID == "" || r.FyersSecret == "":
		return "fyers app id and secret are required"
	}
	return ""
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		FyersAppID:   req.FyersAppID,
		FyersSecret:  req.FyersSecret,
	}
	if err := s.users.Create(r.Context(), user); err != nil {
		// уникальность username/email держит база
		writeError(w, http.StatusConflict, "username or email already exists")
		return
	}

	// дефолтный вочлист сразу при регистрации, как и раньше
	wl := &models.Watchlist{UserID: user.ID, Name: "My Watchlist", IsDefault: true}
	if err := s.watchlists.Create(r.Context(), wl); err != nil {
		logger.Error("default watchlist for user %d: %v", user.ID, err)
	}

	logger.Info("new user registered: %s", user.Username)
	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.GetByUsername(r.Context(), req.Username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	id := s.sessions.Create(user.ID)
	setSessionCookie(w, id, s.cfg.SessionTTL)

	logger.Info("user logged in: %s", user.Username)
	writeJSON(w, http.StatusOK, map[string]any{
		"user":          user,
		"broker_linked": user.Authenticated(),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.Drop(c.Value)
	}
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
