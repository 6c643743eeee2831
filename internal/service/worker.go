package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	apperrors "therm_hub/internal/errors"
	"therm_hub/internal/logger"
	"therm_hub/internal/models"
	"therm_hub/internal/reducer"
	"therm_hub/internal/repository"
	"therm_hub/internal/snapshot"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
)

// Worker defaults.
const (
	DefaultTick        = 4 * time.Second
	DefaultThrottle    = 300 * time.Second
	DefaultStationName = "weather.gov"
)

// ErrNoData means a cycle got nothing from either the weather service or the thermostats.
var ErrNoData = errors.New("pipeline cycle obtained no data from any source")

// WeatherSource returns raw forecast periods.
type WeatherSource interface {
	FetchHourly(ctx context.Context) ([]reducer.Period, error)
	FetchDaily(ctx context.Context) ([]reducer.Period, error)
}

// SensorSource returns raw thermostat capabilities.
type SensorSource interface {
	Read(ctx context.Context, accessToken string) ([]reducer.Capability, error)
}

// TokenSource yields a usable thermostat credential.
type TokenSource interface {
	CurrentToken(ctx context.Context) (*models.Token, error)
}

type WorkerConfig struct {
	Tick        time.Duration
	Throttle    time.Duration
	StationName string // sensor name of the synthetic weather reading
}

// CycleReport summarises one pipeline cycle.
type CycleReport struct {
	CycleID        string    `json:"cycle_id"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	Hourly         bool      `json:"hourly"`          // hourly forecast refreshed
	Daily          bool      `json:"daily"`           // daily forecast refreshed
	SensorsFetched bool      `json:"sensors_fetched"` // thermostat read succeeded
	Readings       int       `json:"readings"`        // readings published
	Persisted      int       `json:"persisted"`       // readings written to the store
}

// Worker runs the fetch, reduce, persist, publish pipeline.
type Worker struct {
	weather  WeatherSource
	sensors  SensorSource
	tokens   TokenSource
	readings repository.ReadingRepo
	store    *snapshot.Store
	cfg      WorkerConfig
	log      *logger.Logger
	now      func() time.Time

	runMu sync.Mutex // one cycle at a time

	mu        sync.Mutex
	lastRun   time.Time
	scheduler *gocron.Scheduler
}

func NewWorker(
	weather WeatherSource,
	sensors SensorSource,
	tokens TokenSource,
	readings repository.ReadingRepo,
	store *snapshot.Store,
	cfg WorkerConfig,
	log *logger.Logger,
) *Worker {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.Throttle <= 0 {
		cfg.Throttle = DefaultThrottle
	}
	if cfg.StationName == "" {
		cfg.StationName = DefaultStationName
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Worker{
		weather:  weather,
		sensors:  sensors,
		tokens:   tokens,
		readings: readings,
		store:    store,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// Start schedules the tick job. Each tick runs a cycle only once the throttle has
// elapsed since the last completed one.
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.scheduler != nil {
		return nil
	}

	s := gocron.NewScheduler(time.UTC)
	if _, err := s.Every(w.cfg.Tick).SingletonMode().Do(w.tick); err != nil {
		return fmt.Errorf("schedule worker tick: %w", err)
	}
	s.StartAsync()
	w.scheduler = s

	w.log.Infow("worker started", "tick", w.cfg.Tick, "throttle", w.cfg.Throttle)
	return nil
}

// Stop cancels future ticks. A cycle already running is not waited for.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.scheduler != nil {
		w.scheduler.Stop()
		w.scheduler = nil
	}
}

func (w *Worker) tick() {
	if !w.due(w.now()) {
		return
	}
	if _, err := w.RunOnce(context.Background()); err != nil {
		w.log.Warnw("pipeline cycle failed", "err", err)
	}
}

func (w *Worker) due(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastRun.IsZero() || now.Sub(w.lastRun) >= w.cfg.Throttle
}

func (w *Worker) markRun(at time.Time) {
	w.mu.Lock()
	w.lastRun = at
	w.mu.Unlock()
}

// RunOnce executes one full cycle synchronously. It always publishes whatever it has and
// returns ErrNoData only when no source produced anything. Cancelling ctx does not abort
// the cycle; only its values are passed on.
func (w *Worker) RunOnce(ctx context.Context) (CycleReport, error) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	report := w.cycle(context.WithoutCancel(ctx))
	w.markRun(report.FinishedAt)

	if !report.Hourly && !report.Daily && !report.SensorsFetched {
		return report, ErrNoData
	}
	return report, nil
}

func (w *Worker) cycle(ctx context.Context) CycleReport {
	report := CycleReport{CycleID: uuid.NewString(), StartedAt: w.now().UTC()}
	log := w.log.With("cycle_id", report.CycleID)

	var (
		updates  []snapshot.Update
		previous = w.store.Current()
		fresh    []models.Reading
	)

	// hourly forecast, plus the synthetic station reading from whatever hourly forecast is held
	hourly := previous.ForecastHourly
	if periods, err := w.weather.FetchHourly(ctx); err != nil {
		log.Warnw("hourly forecast unavailable, keeping previous", "err", err, "kind", apperrors.KindOf(err))
	} else {
		hourly = reducer.ReduceHourly(periods, w.now()).Conditions
		updates = append(updates, snapshot.Hourly(hourly))
		report.Hourly = true
	}
	if c, ok := reducer.MostApplicable(hourly, w.now()); ok {
		fresh = append(fresh, w.stationReading(c))
	}

	// thermostats
	sensorReadings, ok := w.fetchSensors(ctx, log)
	report.SensorsFetched = ok
	fresh = append(fresh, sensorReadings...)

	// durable history, one independent insert per reading
	for _, r := range fresh {
		if err := w.readings.Insert(ctx, r); err != nil {
			log.Warnw("reading not persisted", "sensor", r.Name, "err", err)
			continue
		}
		report.Persisted++
	}

	// daily forecast
	if periods, err := w.weather.FetchDaily(ctx); err != nil {
		log.Warnw("daily forecast unavailable, keeping previous", "err", err, "kind", apperrors.KindOf(err))
	} else {
		updates = append(updates, snapshot.Daily(reducer.ReduceDaily(periods).Conditions))
		report.Daily = true
	}

	published := fresh
	if !report.SensorsFetched {
		published = append(published, w.previousSensorReadings(previous)...)
	}
	updates = append(updates, snapshot.Thermostats(published))
	report.Readings = len(published)

	if err := w.store.Publish(updates...); err != nil {
		log.Errorw("snapshot publish failed", "err", err)
	}

	report.FinishedAt = w.now().UTC()
	log.Infow("pipeline cycle finished",
		"hourly", report.Hourly,
		"daily", report.Daily,
		"sensors", report.SensorsFetched,
		"readings", report.Readings,
		"persisted", report.Persisted,
		"took", report.FinishedAt.Sub(report.StartedAt),
	)
	return report
}

// fetchSensors returns the reduced thermostat readings and whether the read succeeded.
func (w *Worker) fetchSensors(ctx context.Context, log *logger.Logger) ([]models.Reading, bool) {
	tok, err := w.tokens.CurrentToken(ctx)
	if err != nil || tok == nil {
		log.Warnw("no usable thermostat credential, skipping sensors", "err", err, "kind", apperrors.KindOf(err))
		return nil, false
	}

	caps, err := w.sensors.Read(ctx, tok.AccessToken)
	if err != nil {
		log.Warnw("thermostat read failed", "err", err, "kind", apperrors.KindOf(err))
		return nil, false
	}

	readings, skipped := reducer.ReduceSensors(caps)
	for _, e := range skipped {
		log.Warnw("sensor capability skipped", "err", e)
	}
	return readings, true
}

func (w *Worker) stationReading(c models.HourlyCondition) models.Reading {
	return models.Reading{
		Name:        w.cfg.StationName,
		Time:        c.Date,
		Temperature: c.Temperature,
		Station:     true,
	}
}

// previousSensorReadings keeps the last published thermostat readings when this cycle
// could not read the thermostats. The station reading is always rebuilt, so the old one
// is dropped by its Station flag, never by name.
func (w *Worker) previousSensorReadings(previous models.Snapshot) []models.Reading {
	var out []models.Reading
	for _, r := range previous.Thermostats {
		if !r.Station {
			out = append(out, r)
		}
	}
	return out
}
