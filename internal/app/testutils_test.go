package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/cinema-seating/api"
	"github.com/metinatakli/cinema-seating/internal/clock"
	"github.com/metinatakli/cinema-seating/internal/customer"
	"github.com/metinatakli/cinema-seating/internal/domain"
	"github.com/metinatakli/cinema-seating/internal/pricing"
	"github.com/metinatakli/cinema-seating/internal/repository"
	"github.com/metinatakli/cinema-seating/internal/showing"
	"github.com/metinatakli/cinema-seating/internal/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

type MockTicketRegistry struct {
	mock.Mock
}

func (m *MockTicketRegistry) Register(ctx context.Context, sales ...domain.Sale) error {
	args := m.Called(ctx, sales)
	return args.Error(0)
}

func (m *MockTicketRegistry) GetByCode(ctx context.Context, code string) (*domain.Sale, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

// newTestShowings hosts the demo showing (id 1, 3D, A1..A10 standard,
// B1..B5 premium) with a 30 minute hold TTL on the given clock.
func newTestShowings(t *testing.T, clk domain.Clock, book *customer.TicketBook) *showing.Catalog {
	t.Helper()

	policy, err := pricing.New(pricing.DefaultConfig())
	require.NoError(t, err)

	showings, err := DemoShowings(ShowingDeps{
		HoldTTL:    30 * time.Minute,
		Pricing:    policy,
		Clock:      clk,
		TicketBook: book,
	}, testStart.Add(2*time.Hour))
	require.NoError(t, err)

	return showings
}

func newTestApplication(t *testing.T, opts ...func(*Application)) *Application {
	t.Helper()

	book := customer.NewTicketBook()

	app := &Application{
		config:         Config{Env: "test"},
		validator:      validator.NewValidator(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionManager: scs.New(),
		showings:       newTestShowings(t, clock.NewManual(testStart), book),
		ticketRegistry: repository.NewMemoryTicketRegistry(),
		ticketBook:     book,
	}
	app.metrics = newMetrics(app.logger)

	for _, opt := range opts {
		opt(app)
	}

	return app
}

type request struct {
	method   string
	url      string
	body     any
	customer string
	cookies  []*http.Cookie
}

func executeRequest(t *testing.T, handler http.Handler, req request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if req.body != nil {
		jsonData, err := json.Marshal(req.body)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(req.method, req.url, body)
	r.Header.Set("Content-Type", "application/json")

	if req.customer != "" {
		r.Header.Set(CustomerHeader, req.customer)
	}

	for _, c := range req.cookies {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	return w
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), "Failed to decode response")

	return v
}

func ptr[T any](v T) *T {
	return &v
}
