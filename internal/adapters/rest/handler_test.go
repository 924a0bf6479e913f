package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ewilliams-labs/chorale/internal/adapters/catalog"
	"github.com/ewilliams-labs/chorale/internal/core/domain"
	"github.com/ewilliams-labs/chorale/internal/core/extract"
	"github.com/ewilliams-labs/chorale/internal/core/services"
	"github.com/ewilliams-labs/chorale/internal/worker"
)

// --- Mocks ---

type failingProvider struct{}

func (failingProvider) Search(context.Context, domain.SearchParameters) ([]domain.ScoreRecord, error) {
	return nil, errors.New("live lookup down")
}

type mockHistory struct {
	mu      sync.Mutex
	saved   []domain.SearchReport
	listErr error
}

func (m *mockHistory) Save(_ context.Context, report domain.SearchReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, report)
	return nil
}

func (m *mockHistory) ListRecent(_ context.Context, limit int) ([]domain.SearchReport, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.saved) {
		limit = len(m.saved)
	}
	return m.saved[:limit], nil
}

func newTestHandler(history *mockHistory) (*Handler, *worker.Pool) {
	extractor := extract.New(extract.DefaultVocabulary())
	finder := services.NewFinder(extractor, failingProvider{}, catalog.NewProvider(), nil)
	pool := worker.NewPool(history, 10, nil)
	pool.Start(1)
	return NewHandler(finder, history, pool), pool
}

// --- Tests ---

func TestSearchEndpoint(t *testing.T) {
	history := &mockHistory{}
	handler, pool := newTestHandler(history)

	body := bytes.NewBufferString(`{"instruction":"Possible TB pieces that are on the Earth theme for Rhapsody."}`)
	req := httptest.NewRequest(http.MethodPost, "/search", body)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200; body: %s", rr.Code, rr.Body.String())
	}

	var report domain.SearchReport
	if err := json.Unmarshal(rr.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if report.Parameters.Voicing != domain.VoicingTB {
		t.Errorf("voicing: got %q", report.Parameters.Voicing)
	}
	if report.Parameters.Ensemble != "Rhapsody" {
		t.Errorf("ensemble: got %q", report.Parameters.Ensemble)
	}
	if report.Origin != domain.OriginCatalog {
		t.Errorf("origin: got %q, want catalog (live provider is failing)", report.Origin)
	}
	if report.ResultCount == 0 {
		t.Error("expected non-empty results from the fallback path")
	}

	// The report is persisted off the request path.
	pool.Stop()
	history.mu.Lock()
	saved := len(history.saved)
	history.mu.Unlock()
	if saved != 1 {
		t.Errorf("got %d saved reports, want 1", saved)
	}
}

func TestSearchEndpointValidation(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
	}{
		{
			name:        "missing content type",
			contentType: "",
			body:        `{"instruction":"SATB pieces"}`,
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:        "malformed body",
			contentType: "application/json",
			body:        `{"instruction":`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "blank instruction",
			contentType: "application/json",
			body:        `{"instruction":"   "}`,
			wantStatus:  http.StatusBadRequest,
		},
	}

	handler, pool := newTestHandler(&mockHistory{})
	defer pool.Stop()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/search", bytes.NewBufferString(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler, pool := newTestHandler(&mockHistory{})
	defer pool.Stop()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rr.Code)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	history := &mockHistory{
		saved: []domain.SearchReport{
			{ID: "r1", Instruction: "SATB pieces", CreatedAt: time.Now().UTC()},
		},
	}
	handler, pool := newTestHandler(history)
	defer pool.Stop()

	req := httptest.NewRequest(http.MethodGet, "/history?limit=5", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rr.Code)
	}

	var reports []domain.SearchReport
	if err := json.Unmarshal(rr.Body.Bytes(), &reports); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != "r1" {
		t.Errorf("unexpected reports: %+v", reports)
	}
}

func TestHistoryEndpointBadLimit(t *testing.T) {
	handler, pool := newTestHandler(&mockHistory{})
	defer pool.Stop()

	for _, limit := range []string{"abc", "0", "-3"} {
		req := httptest.NewRequest(http.MethodGet, "/history?limit="+limit, nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: got status %d, want 400", limit, rr.Code)
		}
	}
}

func TestHistoryEndpointNotConfigured(t *testing.T) {
	extractor := extract.New(extract.DefaultVocabulary())
	finder := services.NewFinder(extractor, nil, catalog.NewProvider(), nil)
	handler := NewHandler(finder, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotImplemented {
		t.Fatalf("got status %d, want 501", rr.Code)
	}
}
