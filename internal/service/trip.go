// Package service implements the application's use cases on top of the
// state layer: trip logging and history, vehicle management, reports and
// exports, sessions, and the AI assistant. Handlers call services;
// services own validation and orchestration.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/milelog/backend/internal/domain"
	"github.com/milelog/backend/internal/state"
)

// LogTripInput carries the fields needed to log a trip. Date may be zero,
// in which case the trip is dated today.
type LogTripInput struct {
	Date            time.Time
	StartLocation   string
	EndLocation     string
	Distance        float64
	PurposeCategory domain.PurposeCategory
	PurposeDetail   string
	VehicleID       string
	Notes           string
}

// TripService owns the trip lifecycle: logging, history queries, deletion.
type TripService struct {
	app *state.App
}

func NewTripService(app *state.App) *TripService {
	return &TripService{app: app}
}

// Log validates and records a new trip, returning it with its assigned id.
func (s *TripService) Log(ctx context.Context, in LogTripInput) (domain.Trip, error) {
	if err := s.validate(in); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Log: %w", err)
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	trip := domain.Trip{
		ID:              uuid.NewString(),
		Date:            date,
		StartLocation:   strings.TrimSpace(in.StartLocation),
		EndLocation:     strings.TrimSpace(in.EndLocation),
		Distance:        in.Distance,
		PurposeCategory: in.PurposeCategory,
		PurposeDetail:   strings.TrimSpace(in.PurposeDetail),
		VehicleID:       in.VehicleID,
		Notes:           strings.TrimSpace(in.Notes),
	}

	if err := s.app.AddTrip(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Log: %w", err)
	}
	return trip, nil
}

// History returns one page of the filtered trip collection plus the total
// number of matches before pagination.
func (s *TripService) History(ctx context.Context, filter domain.TripFilter, page domain.Page) ([]domain.Trip, int, error) {
	matched := filter.Apply(s.app.Trips(), s.app.Vehicles())
	total := len(matched)
	lo, hi := page.Bounds(total)
	return matched[lo:hi], total, nil
}

// Delete removes a trip. Deleting an id that does not exist is a no-op.
func (s *TripService) Delete(ctx context.Context, id string) error {
	if err := s.app.DeleteTrip(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

func (s *TripService) validate(in LogTripInput) error {
	if strings.TrimSpace(in.StartLocation) == "" {
		return fmt.Errorf("%w: start location is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.EndLocation) == "" {
		return fmt.Errorf("%w: end location is required", domain.ErrValidation)
	}
	if in.Distance <= 0 {
		return fmt.Errorf("%w: distance must be greater than zero", domain.ErrValidation)
	}
	if !in.PurposeCategory.Valid() {
		return fmt.Errorf("%w: unknown purpose category %q", domain.ErrValidation, in.PurposeCategory)
	}
	if in.VehicleID != "" && !s.vehicleExists(in.VehicleID) {
		return fmt.Errorf("%w: unknown vehicle %q", domain.ErrValidation, in.VehicleID)
	}
	return nil
}

func (s *TripService) vehicleExists(id string) bool {
	for _, v := range s.app.Vehicles() {
		if v.ID == id {
			return true
		}
	}
	return false
}
