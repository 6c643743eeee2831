package models

import "time"

// UnsetTemperature marks a Reading whose sensor never reported a temperature capability.
const UnsetTemperature = -10000

// Reading is one thermostat or hygrostat sample for a named sensor.
type Reading struct {
	ID               int       `json:"-" db:"id"`
	Name             string    `json:"name" db:"name"`
	Time             time.Time `json:"time" db:"time"`
	IsHygrostat      bool      `json:"is_hygrostat" db:"is_hygrostat"`
	Temperature      int       `json:"temperature" db:"temperature"`             // tenths of a degree
	RelativeHumidity int       `json:"relative_humidity" db:"relative_humidity"` // 0 unless hygrostat

	Station bool `json:"-" db:"-"` // synthesised from the hourly forecast
}
