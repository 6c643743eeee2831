package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "therm_hub/docs"
	"therm_hub/internal/config"
	"therm_hub/internal/handlers"
	"therm_hub/internal/logger"
	"therm_hub/internal/models"
	"therm_hub/internal/provider"
	"therm_hub/internal/provider/ecobee"
	"therm_hub/internal/provider/weather"
	"therm_hub/internal/repository"
	"therm_hub/internal/repository/db"
	"therm_hub/internal/server"
	"therm_hub/internal/service"
	"therm_hub/internal/snapshot"
)

const shutdownTimeout = 10 * time.Second

// @title                       therm_hub API
// @version                     20200822
// @description                 Weather and thermostat collector: current conditions, history and thermostat pairing.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load configs/config.yml, .env and environment
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level)

	// open DB
	conn, err := db.Open(db.Config{
		Driver:          cfg.DB.Driver,
		DSN:             cfg.DB.DSN,
		ConnectAttempts: cfg.DB.ConnectAttempts,
		ConnectDelay:    cfg.DB.ConnectDelay,
	}, log.Named("db"))
	if err != nil {
		log.Fatalw("failed to open database", "driver", cfg.DB.Driver, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	deps := providers(cfg, log)
	deps.Store = snapshot.NewStore()
	deps.Worker = service.WorkerConfig{
		Tick:        cfg.Worker.Tick,
		Throttle:    cfg.Worker.Throttle,
		StationName: cfg.Worker.StationName,
	}
	deps.Auth = service.AuthConfig{
		SharedSecret:     cfg.Auth.SharedSecret,
		SharedSecretHash: cfg.Auth.SharedSecretHash,
		SigningKey:       cfg.Auth.SigningKey,
		TokenTTL:         cfg.Auth.TokenTTL,
	}
	deps.AlwaysRefreshToken = cfg.Token.AlwaysRefresh

	services, worker, err := service.NewService(repos, deps, log)
	if err != nil {
		log.Fatalw("failed to build services", "err", err)
	}

	// startup self-check: one synchronous cycle must obtain some data
	report, err := worker.RunOnce(context.Background())
	if err != nil {
		log.Fatalw("startup cycle failed", "err", err, "cycle_id", report.CycleID)
	}
	log.Infow("startup cycle done", "cycle_id", report.CycleID, "readings", report.Readings)

	// start the background worker
	if err := worker.Start(); err != nil {
		log.Fatalw("failed to start worker", "err", err)
	}

	// start HTTP server
	apiHandler := handlers.NewHandler(services, log.Named("http"))
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, server.WithCORS(apiHandler.InitRoutes(), cfg.CORSHost), log)

	// graceful shutdown
	waitForShutdown(worker, srv, log)
}

// providers picks the live remote clients, or the canned samples in offline mode.
func providers(cfg *config.Config, log *logger.Logger) service.Dependencies {
	if cfg.Worker.Offline {
		log.Warnw("offline mode: using sample weather and thermostat data")
		return service.Dependencies{
			Weather:    weather.Sample{},
			Thermostat: ecobee.Sample{},
			OfflineToken: &models.Token{
				AccessToken:  "offline",
				RefreshToken: "offline",
				Expires:      time.Now().Add(100 * 365 * 24 * time.Hour).UTC(),
			},
		}
	}

	httpClient := provider.NewHTTPClient(cfg.HTTP.Timeout)
	return service.Dependencies{
		Weather: weather.NewClient(httpClient, weather.Config{
			HourlyURL: cfg.Weather.HourlyURL,
			DailyURL:  cfg.Weather.DailyURL,
			UserAgent: cfg.HTTP.UserAgent,
			Policy:    provider.NewRetryPolicy(cfg.Weather.RetryAttempts, cfg.Weather.RetryDelay),
		}, log.Named("weather")),
		Thermostat: ecobee.NewClient(httpClient, ecobee.Config{
			BaseURL:   cfg.Ecobee.BaseURL,
			ClientID:  cfg.Ecobee.ClientID,
			Scope:     cfg.Ecobee.Scope,
			UserAgent: cfg.HTTP.UserAgent,
		}, log.Named("ecobee")),
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler http.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(worker *service.Worker, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop scheduling new cycles
	worker.Stop()

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
