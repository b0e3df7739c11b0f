package pg

import (
	"context"
	"fmt"

	"ema_scanner/internal/models"
	"ema_scanner/pkg/db"

	"github.com/jackc/pgx/v5"
)

// Watchlists implement db store
type Watchlists struct {
	db *db.PgTxManager
}

// NewWatchlists instance
func NewWatchlists(m *db.PgTxManager) *Watchlists {
	return &Watchlists{db: m}
}

// Create in db
func (w *Watchlists) Create(ctx context.Context, wl *models.Watchlist) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Watchlists.Create: %w", err)
		}
	}()
	return w.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			return tx.QueryRow(ctxTx,
				`INSERT INTO watchlists (user_id, name, is_default)
				 VALUES ($1, $2, $3) RETURNING id, created_at`,
				wl.UserID, wl.Name, wl.IsDefault,
			).Scan(&wl.ID, &wl.CreatedAt)
		})
}

// Get отдаёт вочлист вместе с символами; user_id в запросе — это и есть
// проверка владения.
func (w *Watchlists) Get(ctx context.Context, userID, watchlistID int64) (wl *models.Watchlist, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Watchlists.Get: %w", err)
		}
	}()
	wl = &models.Watchlist{}
	err = w.db.Conn().QueryRow(ctx,
		`SELECT id, user_id, name, is_default, created_at
		 FROM watchlists WHERE id = $1 AND user_id = $2`, watchlistID, userID,
	).Scan(&wl.ID, &wl.UserID, &wl.Name, &wl.IsDefault, &wl.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := w.db.Conn().Query(ctx,
		`SELECT id, watchlist_id, symbol, display_name, created_at
		 FROM watchlist_symbols WHERE watchlist_id = $1 ORDER BY id`, watchlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s models.WatchlistSymbol
		if err = rows.Scan(&s.ID, &s.WatchlistID, &s.Symbol, &s.DisplayName, &s.CreatedAt); err != nil {
			return nil, err
		}
		wl.Symbols = append(wl.Symbols, s)
	}
	return wl, rows.Err()
}

func (w *Watchlists) ListByUser(ctx context.Context, userID int64) (out []models.Watchlist, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Watchlists.ListByUser: %w", err)
		}
	}()
	rows, err := w.db.Conn().Query(ctx,
		`SELECT id, user_id, name, is_default, created_at
		 FROM watchlists WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var wl models.Watchlist
		if err = rows.Scan(&wl.ID, &wl.UserID, &wl.Name, &wl.IsDefault, &wl.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, wl)
	}
	return out, rows.Err()
}

// AddSymbol добавляет символ; дубликат внутри вочлиста — ошибка уникальности.
func (w *Watchlists) AddSymbol(ctx context.Context, s *models.WatchlistSymbol) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Watchlists.AddSymbol: %w", err)
		}
	}()
	return w.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			return tx.QueryRow(ctxTx,
				`INSERT INTO watchlist_symbols (watchlist_id, symbol, display_name)
				 VALUES ($1, $2, $3) RETURNING id, created_at`,
				s.WatchlistID, s.Symbol, s.DisplayName,
			).Scan(&s.ID, &s.CreatedAt)
		})
}

func (w *Watchlists) RemoveSymbol(ctx context.Context, watchlistID, symbolID int64) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Watchlists.RemoveSymbol: %w", err)
		}
	}()
	return w.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			tag, err := tx.Exec(ctxTx,
				`DELETE FROM watchlist_symbols WHERE id = $1 AND watchlist_id = $2`,
				symbolID, watchlistID)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return pgx.ErrNoRows
			}
			return nil
		})
}
