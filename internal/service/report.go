package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/milelog/backend/internal/domain"
	"github.com/milelog/backend/internal/report"
	"github.com/milelog/backend/internal/state"
)

// ReportService aggregates the trip history into summaries and renders the
// full-data exports.
type ReportService struct {
	app *state.App
}

func NewReportService(app *state.App) *ReportService {
	return &ReportService{app: app}
}

// Summary computes the mileage report over the entire trip history.
func (s *ReportService) Summary(ctx context.Context) (report.Summary, error) {
	return report.Summarize(s.app.Trips(), s.app.Vehicles()), nil
}

// ExportRows flattens the trip history into export rows, most recent trip
// first, with vehicle references resolved to display names.
func (s *ReportService) ExportRows(ctx context.Context) ([]domain.TripExportRow, error) {
	trips := s.app.Trips()
	vehicles := s.app.Vehicles()

	byID := make(map[string]domain.Vehicle, len(vehicles))
	for _, v := range vehicles {
		byID[v.ID] = v
	}

	rows := make([]domain.TripExportRow, 0, len(trips))
	for _, t := range trips {
		vehicle := report.UnspecifiedBucket
		if v, ok := byID[t.VehicleID]; ok {
			vehicle = v.DisplayName()
		}
		rows = append(rows, domain.TripExportRow{
			Date:          t.Date.Format("2006-01-02"),
			StartLocation: t.StartLocation,
			EndLocation:   t.EndLocation,
			Distance:      t.Distance,
			Purpose:       string(t.PurposeCategory),
			PurposeDetail: t.PurposeDetail,
			Vehicle:       vehicle,
			Notes:         t.Notes,
		})
	}
	return rows, nil
}

// ExportPDF renders the summary report and the trip table as a PDF
// document, returning the bytes and a dated filename.
func (s *ReportService) ExportPDF(ctx context.Context) ([]byte, string, error) {
	summary, _ := s.Summary(ctx)
	rows, _ := s.ExportRows(ctx)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Mileage Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Generated %s", time.Now().Format("January 2, 2006")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Total distance: %s", summary.TotalMiles))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Trips logged: %d    Vehicles tracked: %d", summary.TotalTrips, summary.VehiclesTracked))
	pdf.Ln(12)

	writeBuckets := func(title string, buckets []report.Bucket) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		for _, b := range buckets {
			pdf.Cell(90, 6, b.Name)
			pdf.Cell(0, 6, report.FormatMiles(b.Miles))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}
	writeBuckets("Distance by purpose", summary.ByPurpose)
	writeBuckets("Distance by vehicle", summary.ByVehicle)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Trips")
	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 9)
	pdf.Cell(22, 6, "Date")
	pdf.Cell(60, 6, "Route")
	pdf.Cell(20, 6, "Distance")
	pdf.Cell(24, 6, "Purpose")
	pdf.Cell(0, 6, "Vehicle")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		pdf.Cell(22, 6, r.Date)
		pdf.Cell(60, 6, fmt.Sprintf("%s to %s", r.StartLocation, r.EndLocation))
		pdf.Cell(20, 6, fmt.Sprintf("%.1f", r.Distance))
		pdf.Cell(24, 6, r.Purpose)
		pdf.Cell(0, 6, r.Vehicle)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("service.ReportService.ExportPDF: %w", err)
	}

	filename := fmt.Sprintf("mileage-report-%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
