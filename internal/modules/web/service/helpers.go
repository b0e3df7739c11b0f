package service

import (
	"io"
	"net/http"

	"ema_scanner/internal/models"
	"ema_scanner/pkg/logger"

	"github.com/bytedance/sonic"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		logger.Error("marshal response: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func readJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return err
	}
	return sonic.Unmarshal(body, v)
}

// currentUser достаёт пользователя по сессионной куке, nil если не залогинен.
func (s *Server) currentUser(r *http.Request) *models.User {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	userID, ok := s.sessions.UserID(c.Value)
	if !ok {
		return nil
	}
	user, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		return nil
	}
	return user
}
