package models

import "time"

// Watchlist — именованный набор символов пользователя.
type Watchlist struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	Name      string            `json:"name"`
	IsDefault bool              `json:"is_default"`
	CreatedAt time.Time         `json:"created_at"`
	Symbols   []WatchlistSymbol `json:"symbols"`
}

type WatchlistSymbol struct {
	ID          int64     `json:"id"`
	WatchlistID int64     `json:"watchlist_id"`
	Symbol      string    `json:"symbol"`       // e.g. NSE:SBIN-EQ
	DisplayName string    `json:"display_name"` // e.g. SBIN
	CreatedAt   time.Time `json:"created_at"`
}

// Display возвращает имя для отображения (display name либо хвост символа).
func (s WatchlistSymbol) Display() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	// NSE:SBIN-EQ -> SBIN-EQ
	for i := len(s.Symbol) - 1; i >= 0; i-- {
		if s.Symbol[i] == ':' {
			return s.Symbol[i+1:]
		}
	}
	return s.Symbol
}
