package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/milelog/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of the CSV
// export.
var csvHeaders = []string{
	"date", "start_location", "end_location", "distance",
	"purpose", "purpose_detail", "vehicle", "notes",
}

// GetReport handles GET /api/reports.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	summary, err := s.reports.Summary(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

// GetExport handles GET /api/reports/export.
// Returns the full trip table; ?format=csv or ?format=pdf selects the
// download format, default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("format") {
	case "csv":
		s.exportCSV(w, r)
	case "pdf":
		s.exportPDF(w, r)
	case "", "json":
		rows, err := s.reports.ExportRows(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string][]domain.TripExportRow{"data": rows})
	default:
		s.badRequest(w, "format must be one of csv, pdf, json")
	}
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.ExportRows(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	//nolint:errcheck — bytes.Buffer writes never fail.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write([]string{
			row.Date,
			row.StartLocation,
			row.EndLocation,
			strconv.FormatFloat(row.Distance, 'f', -1, 64),
			row.Purpose,
			row.PurposeDetail,
			row.Vehicle,
			row.Notes,
		})
	}
	cw.Flush()

	filename := fmt.Sprintf("mileage-report-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) exportPDF(w http.ResponseWriter, r *http.Request) {
	doc, filename, err := s.reports.ExportPDF(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
