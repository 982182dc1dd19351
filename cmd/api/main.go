// Package main is the entry point for the milelog API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/milelog/backend/internal/ai"
	"github.com/milelog/backend/internal/auth"
	"github.com/milelog/backend/internal/config"
	"github.com/milelog/backend/internal/geo"
	"github.com/milelog/backend/internal/handler"
	"github.com/milelog/backend/internal/logging"
	"github.com/milelog/backend/internal/middleware"
	"github.com/milelog/backend/internal/service"
	"github.com/milelog/backend/internal/state"
	"github.com/milelog/backend/internal/store"
	"github.com/milelog/backend/migrations"
)

// maxBodyBytes caps incoming request bodies; nothing the API accepts
// should come close.
const maxBodyBytes = 1 << 20 // 1 MiB

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately, the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Migrations -------------------------------------------------------
	// Applied at bootstrap from the embedded FS, so the binary is
	// self-contained.
	if err := migrateUp(cfg.DatabaseURL); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// --- Application state ------------------------------------------------
	app := state.Load(context.Background(), store.NewPG(pool))
	app.Subscribe(func() {
		slog.Debug("application state changed",
			"trips", len(app.Trips()),
			"vehicles", len(app.Vehicles()),
		)
	})

	// --- Gateways ---------------------------------------------------------
	gemini, err := ai.New(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		slog.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}
	if !gemini.Enabled() {
		slog.Warn("GEMINI_API_KEY not set; AI endpoints will answer 503")
	}

	var provider geo.Provider
	if cfg.DeviceLat != nil && cfg.DeviceLon != nil {
		provider = geo.StaticProvider{Coords: geo.Coords{Lat: *cfg.DeviceLat, Lon: *cfg.DeviceLon}}
	} else {
		slog.Warn("DEVICE_LAT/DEVICE_LON not set; location endpoint will answer 503")
	}
	locator := geo.NewService(provider, cfg.GeocodeAPIKey)

	// --- Services ---------------------------------------------------------
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	server := handler.NewServer(handler.Config{
		Log:          logger,
		Trips:        service.NewTripService(app),
		Vehicles:     service.NewVehicleService(app),
		Reports:      service.NewReportService(app),
		Assist:       service.NewAssistService(app, gemini),
		Location:     locator,
		Sessions:     service.NewSessionService(app, jwtManager),
		Tokens:       jwtManager,
		SessionState: app,
	})

	// --- Router -----------------------------------------------------------
	// Middleware order matters: request ID and real IP first so the logger
	// sees them, recoverer before anything that can panic, body cap last.
	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(metrics.Handler)
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrateUp applies every pending migration from the embedded FS.
func migrateUp(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("applied migration", "source", res.Source.Path)
	}
	return nil
}
