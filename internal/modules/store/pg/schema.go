package pg

import (
	"context"
	"fmt"

	"ema_scanner/pkg/db"

	"github.com/jackc/pgx/v5"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	fyers_app_id  TEXT NOT NULL,
	fyers_secret  TEXT NOT NULL,
	access_token  TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS watchlists (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	is_default BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS watchlist_symbols (
	id           BIGSERIAL PRIMARY KEY,
	watchlist_id BIGINT NOT NULL REFERENCES watchlists(id) ON DELETE CASCADE,
	symbol       TEXT NOT NULL,
	display_name TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (watchlist_id, symbol)
);

CREATE TABLE IF NOT EXISTS scan_history (
	id           BIGSERIAL PRIMARY KEY,
	user_id      BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	watchlist_id BIGINT NOT NULL,
	timeframe    TEXT NOT NULL,
	symbols_ok   INT NOT NULL,
	symbols_err  INT NOT NULL,
	events       JSONB NOT NULL DEFAULT '[]',
	errors       JSONB NOT NULL DEFAULT '[]',
	scanned_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Bootstrap накатывает схему на старте. Идемпотентно.
func Bootstrap(ctx context.Context, m *db.PgTxManager) error {
	err := m.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, schema)
		return err
	})
	if err != nil {
		return fmt.Errorf("pg.Bootstrap: %w", err)
	}
	return nil
}
