// Package handler implements the HTTP handlers for the milelog API.
// All handlers are methods on Server. Methods are split into
// domain-specific files (trip.go, vehicle.go, report.go, ...) but all share
// the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/milelog/backend/internal/ai"
	"github.com/milelog/backend/internal/domain"
	"github.com/milelog/backend/internal/geo"
	"github.com/milelog/backend/internal/middleware"
	"github.com/milelog/backend/internal/report"
	"github.com/milelog/backend/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the state or store layers.
type TripServicer interface {
	Log(ctx context.Context, in service.LogTripInput) (domain.Trip, error)
	History(ctx context.Context, filter domain.TripFilter, page domain.Page) ([]domain.Trip, int, error)
	Delete(ctx context.Context, id string) error
}

// VehicleServicer defines the operations the vehicle handlers depend on.
type VehicleServicer interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	Add(ctx context.Context, in service.VehicleInput) (domain.Vehicle, error)
	Update(ctx context.Context, id string, in service.VehicleInput) error
	Delete(ctx context.Context, id string) error
}

// Reporter defines the aggregation and export operations.
type Reporter interface {
	Summary(ctx context.Context) (report.Summary, error)
	ExportRows(ctx context.Context) ([]domain.TripExportRow, error)
	ExportPDF(ctx context.Context) ([]byte, string, error)
}

// Assistant defines the AI-backed operations.
type Assistant interface {
	SuggestPurpose(ctx context.Context, description string) ([]domain.PurposeSuggestion, error)
	GenerateNotes(ctx context.Context, tripSummary string) (string, error)
	Insights(ctx context.Context, question string) (ai.Insight, error)
}

// Locator defines the geolocation operations.
type Locator interface {
	CurrentLocation(ctx context.Context) (geo.Coords, error)
	AddressFromCoords(ctx context.Context, coords geo.Coords) (string, error)
}

// SessionServicer defines the login-session operations.
type SessionServicer interface {
	Login(ctx context.Context, name, email, photoURL string) (domain.User, string, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (domain.User, error)
}

// Config carries the Server's dependencies.
type Config struct {
	Log      *slog.Logger
	Trips    TripServicer
	Vehicles VehicleServicer
	Reports  Reporter
	Assist   Assistant
	Location Locator
	Sessions SessionServicer

	// Tokens and SessionState feed the auth middleware wired in Routes.
	Tokens       middleware.TokenValidator
	SessionState middleware.SessionReader
}

// Server holds every handler dependency.
type Server struct {
	log      *slog.Logger
	trips    TripServicer
	vehicles VehicleServicer
	reports  Reporter
	assist   Assistant
	location Locator
	sessions SessionServicer

	tokens       middleware.TokenValidator
	sessionState middleware.SessionReader
}

// NewServer constructs the Server with all its dependencies.
func NewServer(cfg Config) *Server {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		log:          log,
		trips:        cfg.Trips,
		vehicles:     cfg.Vehicles,
		reports:      cfg.Reports,
		assist:       cfg.Assist,
		location:     cfg.Location,
		sessions:     cfg.Sessions,
		tokens:       cfg.Tokens,
		sessionState: cfg.SessionState,
	}
}
