package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/milelog/backend/internal/domain"
	"github.com/milelog/backend/internal/state"
)

// VehicleInput carries the editable fields of a vehicle.
type VehicleInput struct {
	Make     string
	Model    string
	Year     int
	Nickname string
}

// VehicleService owns the vehicle collection.
type VehicleService struct {
	app *state.App
}

func NewVehicleService(app *state.App) *VehicleService {
	return &VehicleService{app: app}
}

// List returns every vehicle, most recently added first.
func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	return s.app.Vehicles(), nil
}

// Add validates and stores a new vehicle, returning it with its assigned id.
func (s *VehicleService) Add(ctx context.Context, in VehicleInput) (domain.Vehicle, error) {
	if err := validateVehicle(in); err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Add: %w", err)
	}

	v, err := s.app.AddVehicle(ctx, domain.Vehicle{
		Make:     strings.TrimSpace(in.Make),
		Model:    strings.TrimSpace(in.Model),
		Year:     in.Year,
		Nickname: strings.TrimSpace(in.Nickname),
	})
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Add: %w", err)
	}
	return v, nil
}

// Update replaces the editable fields of an existing vehicle. Updating an
// absent id is a no-op.
func (s *VehicleService) Update(ctx context.Context, id string, in VehicleInput) error {
	if err := validateVehicle(in); err != nil {
		return fmt.Errorf("service.VehicleService.Update: %w", err)
	}

	err := s.app.UpdateVehicle(ctx, domain.Vehicle{
		ID:       id,
		Make:     strings.TrimSpace(in.Make),
		Model:    strings.TrimSpace(in.Model),
		Year:     in.Year,
		Nickname: strings.TrimSpace(in.Nickname),
	})
	if err != nil {
		return fmt.Errorf("service.VehicleService.Update: %w", err)
	}
	return nil
}

// Delete removes a vehicle and detaches it from any trips that referenced
// it. Deleting an absent id is a no-op.
func (s *VehicleService) Delete(ctx context.Context, id string) error {
	if err := s.app.DeleteVehicle(ctx, id); err != nil {
		return fmt.Errorf("service.VehicleService.Delete: %w", err)
	}
	return nil
}

func validateVehicle(in VehicleInput) error {
	if strings.TrimSpace(in.Make) == "" {
		return fmt.Errorf("%w: make is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Model) == "" {
		return fmt.Errorf("%w: model is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Nickname) == "" {
		return fmt.Errorf("%w: nickname is required", domain.ErrValidation)
	}
	if maxYear := time.Now().Year() + 1; in.Year < 1900 || in.Year > maxYear {
		return fmt.Errorf("%w: year must be between 1900 and %d", domain.ErrValidation, maxYear)
	}
	return nil
}
