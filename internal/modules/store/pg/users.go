package pg

import (
	"context"
	"fmt"

	"ema_scanner/internal/models"
	"ema_scanner/pkg/db"

	"github.com/jackc/pgx/v5"
)

// Users implement db store
type Users struct {
	db *db.PgTxManager
}

// NewUsers instance
func NewUsers(m *db.PgTxManager) *Users {
	return &Users{db: m}
}

// Create in db
func (u *Users) Create(ctx context.Context, user *models.User) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Users.Create: %w", err)
		}
	}()
	return u.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			return tx.QueryRow(ctxTx,
				`INSERT INTO users (username, email, password_hash, fyers_app_id, fyers_secret)
				 VALUES ($1, $2, $3, $4, $5)
				 RETURNING id, created_at, updated_at`,
				user.Username, user.Email, user.PasswordHash, user.FyersAppID, user.FyersSecret,
			).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
		})
}

func (u *Users) GetByUsername(ctx context.Context, username string) (user *models.User, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Users.GetByUsername: %w", err)
		}
	}()
	user = &models.User{}
	err = u.db.Conn().QueryRow(ctx,
		`SELECT id, username, email, password_hash, fyers_app_id, fyers_secret, access_token, created_at, updated_at
		 FROM users WHERE username = $1`, username,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FyersAppID, &user.FyersSecret, &user.AccessToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *Users) GetByID(ctx context.Context, id int64) (user *models.User, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Users.GetByID: %w", err)
		}
	}()
	user = &models.User{}
	err = u.db.Conn().QueryRow(ctx,
		`SELECT id, username, email, password_hash, fyers_app_id, fyers_secret, access_token, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FyersAppID, &user.FyersSecret, &user.AccessToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SetAccessToken сохраняет свежий брокерский токен после OAuth-колбэка.
func (u *Users) SetAccessToken(ctx context.Context, userID int64, token string) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Users.SetAccessToken: %w", err)
		}
	}()
	return u.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			_, err := tx.Exec(ctxTx,
				`UPDATE users SET access_token = $2, updated_at = now() WHERE id = $1`,
				userID, token)
			return err
		})
}

// WipeAccessTokens зачищает токены всем: Fyers живёт сутки,
// утром пользователи переавторизуются.
func (u *Users) WipeAccessTokens(ctx context.Context) (wiped int64, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Users.WipeAccessTokens: %w", err)
		}
	}()
	err = u.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			tag, err := tx.Exec(ctxTx,
				`UPDATE users SET access_token = '', updated_at = now() WHERE access_token <> ''`)
			if err != nil {
				return err
			}
			wiped = tag.RowsAffected()
			return nil
		})
	return wiped, err
}
