package pg

import (
	"context"
	"fmt"
	"time"

	"ema_scanner/internal/models"
	"ema_scanner/pkg/db"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
)

// Scans — история сканов. События храним JSONB-пачкой: события это
// неизменяемые факты о конкретной последовательности, нормализовать нечего.
type Scans struct {
	db *db.PgTxManager
}

// NewScans instance
func NewScans(m *db.PgTxManager) *Scans {
	return &Scans{db: m}
}

// ScanRecord — строка истории для выдачи в дашборд.
type ScanRecord struct {
	ID          int64                   `json:"id"`
	WatchlistID int64                   `json:"watchlist_id"`
	Timeframe   string                  `json:"timeframe"`
	SymbolsOK   int                     `json:"symbols_ok"`
	SymbolsErr  int                     `json:"symbols_err"`
	Events      []models.CrossoverEvent `json:"events"`
	Errors      []models.SymbolError    `json:"errors"`
	ScannedAt   time.Time               `json:"scanned_at"`
}

// Insert сохраняет итог батч-скана.
func (s *Scans) Insert(ctx context.Context, userID int64, scan *models.WatchlistScan) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Scans.Insert: %w", err)
		}
	}()

	events, err := sonic.Marshal(scan.Events)
	if err != nil {
		return err
	}
	errs, err := sonic.Marshal(scan.Errors)
	if err != nil {
		return err
	}

	return s.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			_, err := tx.Exec(ctxTx,
				`INSERT INTO scan_history (user_id, watchlist_id, timeframe, symbols_ok, symbols_err, events, errors, scanned_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				userID, scan.WatchlistID, scan.Timeframe,
				len(scan.Results), len(scan.Errors), events, errs, scan.StartedAt)
			return err
		})
}

// ListRecent — последние сканы пользователя, свежие сверху.
func (s *Scans) ListRecent(ctx context.Context, userID int64, limit int) (out []ScanRecord, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Scans.ListRecent: %w", err)
		}
	}()
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Conn().Query(ctx,
		`SELECT id, watchlist_id, timeframe, symbols_ok, symbols_err, events, errors, scanned_at
		 FROM scan_history WHERE user_id = $1 ORDER BY scanned_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r         ScanRecord
			rawEvents []byte
			rawErrors []byte
		)
		if err = rows.Scan(&r.ID, &r.WatchlistID, &r.Timeframe, &r.SymbolsOK, &r.SymbolsErr,
			&rawEvents, &rawErrors, &r.ScannedAt); err != nil {
			return nil, err
		}
		if err = sonic.Unmarshal(rawEvents, &r.Events); err != nil {
			return nil, err
		}
		if err = sonic.Unmarshal(rawErrors, &r.Errors); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
