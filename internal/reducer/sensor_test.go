package reducer

import (
	"testing"
	"time"

	apperrors "therm_hub/internal/errors"
	"therm_hub/internal/models"
)

var batchTime = time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)

func capability(sensor, kind, value string) Capability {
	return Capability{Time: batchTime, Sensor: sensor, Kind: kind, Value: value}
}

func TestReduceSensors(t *testing.T) {
	tests := []struct {
		name        string
		in          []Capability
		want        []models.Reading
		wantSkipped int
	}{
		{
			name: "temperature then humidity merge",
			in:   []Capability{capability("A", "temperature", "72"), capability("A", "humidity", "55")},
			want: []models.Reading{{Name: "A", Time: batchTime, Temperature: 72, RelativeHumidity: 55, IsHygrostat: true}},
		},
		{
			name: "humidity seeds reading with unset temperature",
			in:   []Capability{capability("A", "humidity", "40")},
			want: []models.Reading{{Name: "A", Time: batchTime, Temperature: models.UnsetTemperature, RelativeHumidity: 40, IsHygrostat: true}},
		},
		{
			name:        "malformed value is dropped and batch continues",
			in:          []Capability{capability("A", "temperature", "xx"), capability("A", "humidity", "55")},
			want:        []models.Reading{{Name: "A", Time: batchTime, Temperature: models.UnsetTemperature, RelativeHumidity: 55, IsHygrostat: true}},
			wantSkipped: 1,
		},
		{
			name: "sensor with only malformed values still yields a reading",
			in:   []Capability{capability("A", "temperature", "xx"), capability("B", "temperature", "70")},
			want: []models.Reading{
				{Name: "A", Time: batchTime, Temperature: models.UnsetTemperature},
				{Name: "B", Time: batchTime, Temperature: 70},
			},
			wantSkipped: 1,
		},
		{
			name:        "malformed humidity does not mark hygrostat",
			in:          []Capability{capability("A", "humidity", "n/a")},
			want:        []models.Reading{{Name: "A", Time: batchTime, Temperature: models.UnsetTemperature}},
			wantSkipped: 1,
		},
		{
			name: "other kinds ignored",
			in: []Capability{
				capability("Living Room", "occupancy", "true"),
				capability("Living Room", "temperature", "701"),
				capability("Bedroom", "occupancy", "false"),
			},
			want: []models.Reading{{Name: "Living Room", Time: batchTime, Temperature: 701}},
		},
		{
			name: "one reading per sensor, first-seen order",
			in: []Capability{
				capability("B", "temperature", "680"),
				capability("A", "temperature", "700"),
				capability("B", "temperature", "690"),
				capability("A", "humidity", "45"),
			},
			want: []models.Reading{
				{Name: "B", Time: batchTime, Temperature: 690},
				{Name: "A", Time: batchTime, Temperature: 700, RelativeHumidity: 45, IsHygrostat: true},
			},
		},
		{
			name: "empty batch",
			in:   nil,
			want: []models.Reading{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, skipped := ReduceSensors(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d readings, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("reading %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
			if len(skipped) != tt.wantSkipped {
				t.Fatalf("skipped = %v, want %d", skipped, tt.wantSkipped)
			}
			for _, err := range skipped {
				if !apperrors.IsKind(err, apperrors.KindParse) {
					t.Errorf("expected parse error, got %v", err)
				}
			}
		})
	}
}

func TestReduceSensors_OneReadingPerDistinctName(t *testing.T) {
	var in []Capability
	names := []string{"a", "b", "c", "a", "b", "a", "d"}
	for _, n := range names {
		in = append(in, capability(n, "temperature", "1"), capability(n, "humidity", "2"))
	}

	got, _ := ReduceSensors(in)

	seen := map[string]int{}
	for _, r := range got {
		seen[r.Name]++
	}
	if len(got) != 4 || len(seen) != 4 {
		t.Fatalf("expected 4 distinct readings, got %+v", got)
	}
}
