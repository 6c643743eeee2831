package weather

import (
	"context"
	"time"

	"therm_hub/internal/reducer"
)

// Sample is an offline stand-in for Client that returns a fixed forecast around the current time.
type Sample struct {
	Now func() time.Time
}

func (s Sample) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s Sample) FetchHourly(_ context.Context) ([]reducer.Period, error) {
	start := s.now().UTC().Truncate(time.Hour)
	temps := []float64{61, 63, 64, 64, 62, 59}
	out := make([]reducer.Period, 0, len(temps))
	for i, t := range temps {
		out = append(out, reducer.Period{
			Start:       start.Add(time.Duration(i) * time.Hour),
			Temperature: t,
			Description: "Partly Cloudy",
		})
	}
	return out, nil
}

func (s Sample) FetchDaily(_ context.Context) ([]reducer.Period, error) {
	day := s.now().UTC().Truncate(24 * time.Hour)
	var out []reducer.Period
	for i := 0; i < 3; i++ {
		d := day.AddDate(0, 0, i)
		out = append(out,
			reducer.Period{Start: d.Add(6 * time.Hour), Temperature: 68, Description: "Sunny"},
			reducer.Period{Start: d.Add(18 * time.Hour), Temperature: 51, Description: "Mostly Clear"},
		)
	}
	return out, nil
}
