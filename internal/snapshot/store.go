package snapshot

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"therm_hub/internal/models"
)

// published is immutable once stored; readers may hold it for as long as they like.
type published struct {
	snapshot   models.Snapshot
	serialized []byte
	version    uint64
}

// Store holds the current Snapshot. Readers load an atomic pointer and never block;
// writers are serialized and swap in a freshly built value.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[published]
	now     func() time.Time
}

func NewStore() *Store {
	s := &Store{now: time.Now}
	empty := models.Snapshot{
		ForecastDaily:  []models.DailyCondition{},
		ForecastHourly: []models.HourlyCondition{},
		Thermostats:    []models.Reading{},
	}
	b, _ := json.Marshal(empty)
	s.current.Store(&published{snapshot: empty, serialized: b})
	return s
}

// Publish applies every update on top of the current snapshot, renders it and swaps it in
// as one value. Nothing becomes visible if any update is invalid.
func (s *Store) Publish(updates ...Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	next := cur.snapshot
	for _, u := range updates {
		var err error
		if next, err = WithField(next, u.Field, u.Value); err != nil {
			return err
		}
	}
	next.UpdatedAt = s.now().UTC()

	b, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("render snapshot: %w", err)
	}

	s.current.Store(&published{snapshot: next, serialized: b, version: cur.version + 1})
	return nil
}

// Current returns a private copy of the structured snapshot.
func (s *Store) Current() models.Snapshot {
	return s.current.Load().snapshot.Clone()
}

// Serialized returns the pre-rendered JSON form. Callers must not modify it.
func (s *Store) Serialized() []byte {
	return s.current.Load().serialized
}

// Version increases by one with every successful Publish.
func (s *Store) Version() uint64 {
	return s.current.Load().version
}
