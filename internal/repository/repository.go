package repository

import (
	"context"
	"time"

	"therm_hub/internal/models"

	"github.com/jmoiron/sqlx"
)

// TokenRepo stores the single thermostat credential row.
type TokenRepo interface {
	// Load returns nil and no error when no token has been saved yet.
	Load(ctx context.Context) (*models.Token, error)
	// Save inserts the first token or updates the existing one and returns the stored row.
	Save(ctx context.Context, t models.Token) (models.Token, error)
}

// ReadingRepo is the append-only history of sensor readings.
type ReadingRepo interface {
	Insert(ctx context.Context, r models.Reading) error
	QueryRange(ctx context.Context, start, end time.Time) ([]models.Reading, error)
}

type Repository struct {
	Tokens   TokenRepo
	Readings ReadingRepo
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Tokens:   NewTokenSQL(db),
		Readings: NewReadingSQL(db),
	}
}
