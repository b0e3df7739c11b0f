package service

import (
	"net/http"
	"strconv"
	"strings"

	"ema_scanner/internal/models"
)

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil && id > 0
}

func (s *Server) handleWatchlistList(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "login required")
		return
	}
	lists, err := s.watchlists.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (s *Server) handleWatchlistCreate(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "login required")
		return
	}

	var req struct {
		Name      string `json:"name"`
		IsDefault bool   `json:"is_default"`
	}
	if err := readJSON(r, &req); err != nil || strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "watchlist name is required")
		return
	}

	wl := &models.Watchlist{UserID: user.ID, Name: strings.TrimSpace(req.Name), IsDefault: req.IsDefault}
	if err := s.watchlists.Create(r.Context(), wl); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, wl)
}

func (s *Server) handleWatchlistGet(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "login required")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid watchlist id")
		return
	}

	wl, err := s.watchlists.Get(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, http.StatusNotFound, "watchlist not found")
		return
	}
	writeJSON(w, http.StatusOK, wl)
}

func (s *Server) handleSymbolAdd(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "login required")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid watchlist id")
		return
	}

	// владение проверяем чтением вочлиста
	if _, err := s.watchlists.Get(r.Context(), user.ID, id); err != nil {
		writeError(w, http.StatusNotFound, "watchlist not found")
		return
	}

	var req struct {
		Symbol      string `json:"symbol"`
		DisplayName string `json:"display_name"`
	}
	if err := readJSON(r, &req); err != nil || strings.TrimSpace(req.Symbol) == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	sym := &models.WatchlistSymbol{
		WatchlistID: id,
		Symbol:      strings.ToUpper(strings.TrimSpace(req.Symbol)),
		DisplayName: strings.TrimSpace(req.DisplayName),
	}
	if err := s.watchlists.AddSymbol(r.Context(), sym); err != nil {
		writeError(w, http.StatusConflict, "symbol already in watchlist")
		return
	}
	writeJSON(w, http.StatusCreated, sym)
}

func (s *Server) handleSymbolRemove(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "login required")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid watchlist id")
		return
	}
	symbolID, ok := pathID(r, "symbolID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid symbol id")
		return
	}

	if _, err := s.watchlists.Get(r.Context(), user.ID, id); err != nil {
		writeError(w, http.StatusNotFound, "watchlist not found")
		return
	}
	if err := s.watchlists.RemoveSymbol(r.Context(), id, symbolID); err != nil {
		writeError(w, http.StatusNotFound, "symbol not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
