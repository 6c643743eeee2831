package reducer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "therm_hub/internal/errors"
	"therm_hub/internal/models"
)

// Capability kinds that produce Reading fields. Anything else is ignored.
const (
	KindTemperature = "temperature"
	KindHumidity    = "humidity"
)

// Capability is one raw sensor capability value from a thermostat batch.
type Capability struct {
	Time   time.Time // batch timestamp
	Sensor string
	Kind   string
	Value  string
}

// ReduceSensors merges capabilities into one Reading per sensor name, in first-seen order.
// Values that fail to parse are dropped and reported in the returned slice; the sensor still
// gets its Reading and the batch continues.
func ReduceSensors(caps []Capability) ([]models.Reading, []error) {
	var (
		readings = make([]models.Reading, 0)
		index    = make(map[string]int)
		skipped  []error
	)

	for _, c := range caps {
		kind := strings.ToLower(strings.TrimSpace(c.Kind))
		if kind != KindTemperature && kind != KindHumidity {
			continue
		}

		i, ok := index[c.Sensor]
		if !ok {
			i = len(readings)
			index[c.Sensor] = i
			readings = append(readings, models.Reading{
				Name:        c.Sensor,
				Time:        c.Time.UTC(),
				Temperature: models.UnsetTemperature,
			})
		}

		value, err := strconv.Atoi(strings.TrimSpace(c.Value))
		if err != nil {
			skipped = append(skipped, apperrors.Parse(fmt.Sprintf("sensor %q %s", c.Sensor, kind), err))
			continue
		}

		r := &readings[i]
		switch kind {
		case KindTemperature:
			r.Temperature = value
		case KindHumidity:
			r.RelativeHumidity = value
			r.IsHygrostat = true
		}
	}

	return readings, skipped
}
