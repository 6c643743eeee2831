package snapshot

import (
	"fmt"

	"therm_hub/internal/models"
)

// Field names one independently refreshable part of a Snapshot.
type Field int

const (
	FieldHourly Field = iota
	FieldDaily
	FieldThermostats
)

func (f Field) String() string {
	switch f {
	case FieldHourly:
		return "forecast_hourly"
	case FieldDaily:
		return "forecast_daily"
	case FieldThermostats:
		return "thermostats"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// WithField returns a new Snapshot equal to base with one field replaced. base is never
// modified and the result shares no slices with base or value.
func WithField(base models.Snapshot, field Field, value any) (models.Snapshot, error) {
	next := base.Clone()

	switch field {
	case FieldHourly:
		v, ok := value.([]models.HourlyCondition)
		if !ok {
			return base, fieldTypeError(field, value)
		}
		next.ForecastHourly = append(make([]models.HourlyCondition, 0, len(v)), v...)
	case FieldDaily:
		v, ok := value.([]models.DailyCondition)
		if !ok {
			return base, fieldTypeError(field, value)
		}
		next.ForecastDaily = append(make([]models.DailyCondition, 0, len(v)), v...)
	case FieldThermostats:
		v, ok := value.([]models.Reading)
		if !ok {
			return base, fieldTypeError(field, value)
		}
		next.Thermostats = append(make([]models.Reading, 0, len(v)), v...)
	default:
		return base, fmt.Errorf("unknown snapshot field %v", field)
	}

	return next, nil
}

func fieldTypeError(field Field, value any) error {
	return fmt.Errorf("snapshot field %v cannot hold %T", field, value)
}

// Update pairs a field with its replacement value for Store.Publish.
type Update struct {
	Field Field
	Value any
}

func Hourly(c []models.HourlyCondition) Update { return Update{Field: FieldHourly, Value: c} }
func Daily(c []models.DailyCondition) Update { return Update{Field: FieldDaily, Value: c} }
func Thermostats(r []models.Reading) Update { return Update{Field: FieldThermostats, Value: r} }
