package models

import "time"

// UnsetHalfDay marks a day or night temperature that no period has filled yet.
const UnsetHalfDay = -1000

// DailyCondition summarises one calendar date split into day and night halves.
type DailyCondition struct {
	Date             string `json:"date"` // YYYY-MM-DD, UTC
	Description      string `json:"description"`
	DayTemperature   int    `json:"day_temperature"`
	NightTemperature int    `json:"night_temperature"`
}

// HourlyCondition is one provider period, mapped 1:1.
type HourlyCondition struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Temperature int       `json:"temperature"`
}

// Forecast is a reduced batch of conditions along with the instant it goes stale from.
type Forecast[C DailyCondition | HourlyCondition] struct {
	StaleTime  time.Time
	Conditions []C
}
