package service

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"
)

const sessionCookie = "scanner_session"

type session struct {
	userID     int64
	oauthState string
	expiresAt  time.Time
}

// Sessions — сессии дашборда в памяти процесса. Рестарт разлогинивает,
// для однопроцессного дашборда этого достаточно.
type Sessions struct {
	ttl time.Duration

	mu   sync.RWMutex
	data map[string]*session
}

func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Sessions{
		ttl:  ttl,
		data: make(map[string]*session),
	}
}

func newToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (s *Sessions) Create(userID int64) string {
	id := newToken()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = &session{
		userID:    userID,
		expiresAt: time.Now().Add(s.ttl),
	}
	return id
}

// UserID возвращает владельца живой сессии; протухшие вычищаются лениво.
func (s *Sessions) UserID(id string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.data[id]
	if !ok {
		return 0, false
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.data, id)
		return 0, false
	}
	return sess.userID, true
}

func (s *Sessions) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}

// SetOAuthState кладёт nonce для проверки state в колбэке.
func (s *Sessions) SetOAuthState(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.data[id]
	if !ok {
		return "", false
	}
	sess.oauthState = newToken()
	return sess.oauthState, true
}

// TakeOAuthState отдаёт и сбрасывает nonce — одноразовый.
func (s *Sessions) TakeOAuthState(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.data[id]
	if !ok || sess.oauthState == "" {
		return "", false
	}
	state := sess.oauthState
	sess.oauthState = ""
	return state, true
}

func setSessionCookie(w http.ResponseWriter, id string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
