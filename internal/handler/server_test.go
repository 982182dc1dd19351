package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/milelog/backend/internal/ai"
	"github.com/milelog/backend/internal/auth"
	"github.com/milelog/backend/internal/domain"
	"github.com/milelog/backend/internal/geo"
	"github.com/milelog/backend/internal/handler"
	"github.com/milelog/backend/internal/report"
	"github.com/milelog/backend/internal/service"
)

// --- function-field mocks ---------------------------------------------------

type mockTripService struct {
	LogFn     func(ctx context.Context, in service.LogTripInput) (domain.Trip, error)
	HistoryFn func(ctx context.Context, filter domain.TripFilter, page domain.Page) ([]domain.Trip, int, error)
	DeleteFn  func(ctx context.Context, id string) error
}

var _ handler.TripServicer = (*mockTripService)(nil)

func (m *mockTripService) Log(ctx context.Context, in service.LogTripInput) (domain.Trip, error) {
	return m.LogFn(ctx, in)
}

func (m *mockTripService) History(ctx context.Context, filter domain.TripFilter, page domain.Page) ([]domain.Trip, int, error) {
	return m.HistoryFn(ctx, filter, page)
}

func (m *mockTripService) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

type mockVehicleService struct {
	ListFn   func(ctx context.Context) ([]domain.Vehicle, error)
	AddFn    func(ctx context.Context, in service.VehicleInput) (domain.Vehicle, error)
	UpdateFn func(ctx context.Context, id string, in service.VehicleInput) error
	DeleteFn func(ctx context.Context, id string) error
}

var _ handler.VehicleServicer = (*mockVehicleService)(nil)

func (m *mockVehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	return m.ListFn(ctx)
}

func (m *mockVehicleService) Add(ctx context.Context, in service.VehicleInput) (domain.Vehicle, error) {
	return m.AddFn(ctx, in)
}

func (m *mockVehicleService) Update(ctx context.Context, id string, in service.VehicleInput) error {
	return m.UpdateFn(ctx, id, in)
}

func (m *mockVehicleService) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

type mockReporter struct {
	SummaryFn    func(ctx context.Context) (report.Summary, error)
	ExportRowsFn func(ctx context.Context) ([]domain.TripExportRow, error)
	ExportPDFFn  func(ctx context.Context) ([]byte, string, error)
}

var _ handler.Reporter = (*mockReporter)(nil)

func (m *mockReporter) Summary(ctx context.Context) (report.Summary, error) {
	return m.SummaryFn(ctx)
}

func (m *mockReporter) ExportRows(ctx context.Context) ([]domain.TripExportRow, error) {
	return m.ExportRowsFn(ctx)
}

func (m *mockReporter) ExportPDF(ctx context.Context) ([]byte, string, error) {
	return m.ExportPDFFn(ctx)
}

type mockAssistant struct {
	SuggestPurposeFn func(ctx context.Context, description string) ([]domain.PurposeSuggestion, error)
	GenerateNotesFn  func(ctx context.Context, tripSummary string) (string, error)
	InsightsFn       func(ctx context.Context, question string) (ai.Insight, error)
}

var _ handler.Assistant = (*mockAssistant)(nil)

func (m *mockAssistant) SuggestPurpose(ctx context.Context, description string) ([]domain.PurposeSuggestion, error) {
	return m.SuggestPurposeFn(ctx, description)
}

func (m *mockAssistant) GenerateNotes(ctx context.Context, tripSummary string) (string, error) {
	return m.GenerateNotesFn(ctx, tripSummary)
}

func (m *mockAssistant) Insights(ctx context.Context, question string) (ai.Insight, error) {
	return m.InsightsFn(ctx, question)
}

type mockLocator struct {
	CurrentLocationFn   func(ctx context.Context) (geo.Coords, error)
	AddressFromCoordsFn func(ctx context.Context, coords geo.Coords) (string, error)
}

var _ handler.Locator = (*mockLocator)(nil)

func (m *mockLocator) CurrentLocation(ctx context.Context) (geo.Coords, error) {
	return m.CurrentLocationFn(ctx)
}

func (m *mockLocator) AddressFromCoords(ctx context.Context, coords geo.Coords) (string, error) {
	return m.AddressFromCoordsFn(ctx, coords)
}

type mockSessionService struct {
	LoginFn   func(ctx context.Context, name, email, photoURL string) (domain.User, string, error)
	LogoutFn  func(ctx context.Context) error
	CurrentFn func(ctx context.Context) (domain.User, error)
}

var _ handler.SessionServicer = (*mockSessionService)(nil)

func (m *mockSessionService) Login(ctx context.Context, name, email, photoURL string) (domain.User, string, error) {
	return m.LoginFn(ctx, name, email, photoURL)
}

func (m *mockSessionService) Logout(ctx context.Context) error {
	return m.LogoutFn(ctx)
}

func (m *mockSessionService) Current(ctx context.Context) (domain.User, error) {
	return m.CurrentFn(ctx)
}

// sessionStub feeds the auth middleware the "who is logged in" answer.
type sessionStub struct {
	user *domain.User
}

func (s sessionStub) CurrentUser() (domain.User, bool) {
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// --- harness ----------------------------------------------------------------

// testEnv runs requests against the real router with a real JWT manager;
// only the service layer is mocked.
type testEnv struct {
	h     http.Handler
	token string
}

var testUser = domain.User{ID: "u1", Name: "Demo User", Email: "demo@example.com"}

func newEnv(t *testing.T, cfg handler.Config) *testEnv {
	t.Helper()

	jm := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jm.Generate(testUser)
	require.NoError(t, err)

	cfg.Tokens = jm
	cfg.SessionState = sessionStub{user: &testUser}
	return &testEnv{h: handler.NewServer(cfg).Routes(), token: token}
}

// newLoggedOutEnv builds an env whose session state has no active user.
func newLoggedOutEnv(t *testing.T, cfg handler.Config) *testEnv {
	t.Helper()

	jm := auth.NewJWTManager("test-secret", time.Hour)
	cfg.Tokens = jm
	cfg.SessionState = sessionStub{}
	return &testEnv{h: handler.NewServer(cfg).Routes()}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
