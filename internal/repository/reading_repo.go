package repository

import (
	"context"
	"time"

	apperrors "therm_hub/internal/errors"
	"therm_hub/internal/models"

	"github.com/jmoiron/sqlx"
)

const (
	insertReadingSQL = `
		INSERT INTO thermostats (name, time, is_hygrostat, temperature, relative_humidity)
		VALUES (?, ?, ?, ?, ?)
	`

	selectReadingsSQL = `
		SELECT id, name, time, is_hygrostat, temperature, relative_humidity
		FROM thermostats
		WHERE time >= ? AND time <= ?
		ORDER BY time ASC, id ASC
	`
)

type ReadingSQL struct {
	db     *sqlx.DB
	insert string
	query  string
}

func NewReadingSQL(db *sqlx.DB) *ReadingSQL {
	return &ReadingSQL{
		db:     db,
		insert: db.Rebind(insertReadingSQL),
		query:  db.Rebind(selectReadingsSQL),
	}
}

// Insert appends one reading. Times are stored in UTC at second precision.
func (r *ReadingSQL) Insert(ctx context.Context, rd models.Reading) error {
	_, err := r.db.ExecContext(ctx, r.insert,
		rd.Name,
		rd.Time.UTC().Truncate(time.Second),
		rd.IsHygrostat,
		rd.Temperature,
		rd.RelativeHumidity,
	)
	if err != nil {
		return apperrors.Persist("insert reading "+rd.Name, err)
	}
	return nil
}

// QueryRange returns readings with start <= time <= end, oldest first.
func (r *ReadingSQL) QueryRange(ctx context.Context, start, end time.Time) ([]models.Reading, error) {
	out := make([]models.Reading, 0, 64)
	if err := r.db.SelectContext(ctx, &out, r.query, start.UTC(), end.UTC()); err != nil {
		return nil, apperrors.Persist("query readings", err)
	}
	for i := range out {
		out[i].Time = out[i].Time.UTC()
	}
	return out, nil
}
