package models

import "time"

// Snapshot is the published aggregate view served to clients.
type Snapshot struct {
	ForecastDaily  []DailyCondition  `json:"forecast_daily"`
	ForecastHourly []HourlyCondition `json:"forecast_hourly"`
	Thermostats    []Reading         `json:"thermostats"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Clone returns a deep copy so the result shares no backing arrays with s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		ForecastDaily:  cloneSlice(s.ForecastDaily),
		ForecastHourly: cloneSlice(s.ForecastHourly),
		Thermostats:    cloneSlice(s.Thermostats),
		UpdatedAt:      s.UpdatedAt,
	}
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
