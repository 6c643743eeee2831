package service

import (
	"context"
	"errors"
	"time"

	"therm_hub/internal/models"
	"therm_hub/internal/repository"
)

var (
	ErrMissingTimeRange = errors.New("start and end are both required")
	ErrInvalidTimeRange = errors.New("invalid time range: start must be <= end")
)

type HistoryService struct {
	readings repository.ReadingRepo
}

func NewHistoryService(readings repository.ReadingRepo) *HistoryService {
	return &HistoryService{readings: readings}
}

// Past returns the stored readings between start and end inclusive.
func (s *HistoryService) Past(ctx context.Context, start, end time.Time) ([]models.Reading, error) {
	if start.IsZero() || end.IsZero() {
		return nil, ErrMissingTimeRange
	}
	start, end = start.UTC(), end.UTC()
	if start.After(end) {
		return nil, ErrInvalidTimeRange
	}
	return s.readings.QueryRange(ctx, start, end)
}
