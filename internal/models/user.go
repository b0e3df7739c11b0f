package models

import "time"

// User хранит учётку дашборда и брокерские ключи Fyers.
// AccessToken живёт сутки и ежедневно зачищается клинером.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FyersAppID   string    `json:"fyers_app_id"`
	FyersSecret  string    `json:"-"`
	AccessToken  string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Authenticated — есть ли действующий брокерский токен.
func (u *User) Authenticated() bool { return u.AccessToken != "" }
