package reducer

import (
	"math"
	"time"

	"therm_hub/internal/models"
)

const (
	dateLayout = "2006-01-02"
	noonHour   = 12
)

// Period is one raw weather provider period.
type Period struct {
	Start       time.Time
	Temperature float64 // provider units
	Description string
}

// scale keeps one decimal digit as an integer.
func scale(t float64) int {
	return int(math.Round(t * 10))
}

// ReduceHourly maps each period to one HourlyCondition. Hourly data is always fresh, so it goes stale from now.
func ReduceHourly(periods []Period, now time.Time) models.Forecast[models.HourlyCondition] {
	conditions := make([]models.HourlyCondition, 0, len(periods))
	for _, p := range periods {
		conditions = append(conditions, models.HourlyCondition{
			Date:        p.Start.UTC(),
			Description: p.Description,
			Temperature: scale(p.Temperature),
		})
	}
	return models.Forecast[models.HourlyCondition]{
		StaleTime:  now.UTC(),
		Conditions: conditions,
	}
}

// ReduceDaily groups periods by UTC calendar date. Periods starting before noon fill the day
// temperature, the rest fill the night temperature; within a half the last period wins.
// Dates come out in first-seen order and the stale time is the latest period start.
func ReduceDaily(periods []Period) models.Forecast[models.DailyCondition] {
	var (
		conditions []models.DailyCondition
		index      = make(map[string]int)
		stale      time.Time
	)

	for _, p := range periods {
		start := p.Start.UTC()
		if start.After(stale) {
			stale = start
		}

		date := start.Format(dateLayout)
		i, ok := index[date]
		if !ok {
			i = len(conditions)
			index[date] = i
			conditions = append(conditions, models.DailyCondition{
				Date:             date,
				Description:      p.Description,
				DayTemperature:   models.UnsetHalfDay,
				NightTemperature: models.UnsetHalfDay,
			})
		}

		if start.Hour() < noonHour {
			conditions[i].DayTemperature = scale(p.Temperature)
		} else {
			conditions[i].NightTemperature = scale(p.Temperature)
		}
	}

	if conditions == nil {
		conditions = []models.DailyCondition{}
	}
	return models.Forecast[models.DailyCondition]{
		StaleTime:  stale,
		Conditions: conditions,
	}
}

// MostApplicable picks the condition closest to now. On equal distance the earlier entry wins.
func MostApplicable(conditions []models.HourlyCondition, now time.Time) (models.HourlyCondition, bool) {
	if len(conditions) == 0 {
		return models.HourlyCondition{}, false
	}

	best := 0
	bestDistance := now.Sub(conditions[0].Date).Abs()
	for i := 1; i < len(conditions); i++ {
		if d := now.Sub(conditions[i].Date).Abs(); d < bestDistance {
			best, bestDistance = i, d
		}
	}
	return conditions[best], true
}
