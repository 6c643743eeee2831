package repository

import (
	"context"
	"database/sql"
	"errors"

	apperrors "therm_hub/internal/errors"
	"therm_hub/internal/models"

	"github.com/jmoiron/sqlx"
)

const (
	tokenRowID = 1

	upsertTokenSQL = `
		INSERT INTO ecobee_token (id, access_token, refresh_token, expires)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token=excluded.access_token,
			refresh_token=excluded.refresh_token,
			expires=excluded.expires
	`

	selectTokenSQL = `
		SELECT id, access_token, refresh_token, expires
		FROM ecobee_token WHERE id=?
	`
)

type TokenSQL struct {
	db     *sqlx.DB
	upsert string
	load   string
}

func NewTokenSQL(db *sqlx.DB) *TokenSQL {
	return &TokenSQL{
		db:     db,
		upsert: db.Rebind(upsertTokenSQL),
		load:   db.Rebind(selectTokenSQL),
	}
}

// Load fetches the token row (id=1).
func (r *TokenSQL) Load(ctx context.Context) (*models.Token, error) {
	var t models.Token
	if err := r.db.GetContext(ctx, &t, r.load, tokenRowID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Persist("load token", err)
	}
	t.Expires = t.Expires.UTC()
	return &t, nil
}

// Save writes the token into row id=1, so a second row can never appear.
func (r *TokenSQL) Save(ctx context.Context, t models.Token) (models.Token, error) {
	if _, err := r.db.ExecContext(ctx, r.upsert,
		tokenRowID,
		t.AccessToken,
		t.RefreshToken,
		t.Expires.UTC(),
	); err != nil {
		return models.Token{}, apperrors.Persist("save token", err)
	}

	saved, err := r.Load(ctx)
	if err != nil {
		return models.Token{}, err
	}
	if saved == nil {
		return models.Token{}, apperrors.Persist("save token", sql.ErrNoRows)
	}
	return *saved, nil
}
