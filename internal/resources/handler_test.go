package resources

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DarboeDev/UTGSSA-HUB/internal/cache"
	"github.com/DarboeDev/UTGSSA-HUB/internal/validation"
	"github.com/go-chi/chi/v5"
)

func newTestRouter(repo Repository) *chi.Mux {
	svc := NewService(repo, nil, time.UTC, discardLogger())
	h := NewHandler(svc, validation.New(), discardLogger(), cache.NewNoop(), time.Minute)

	r := chi.NewRouter()
	r.Get("/api/resources", h.List)
	r.Get("/api/resources/{id}", h.Get)
	r.Get("/api/resources/{id}/download", h.Download)
	r.Post("/api/resources", h.Create)
	r.Put("/api/resources/{id}", h.Update)
	r.Delete("/api/resources/{id}", h.Delete)
	return r
}

func TestCreateRejectsUnknownType(t *testing.T) {
	router := newTestRouter(newStubRepo())

	payload := `{
		"title": "Notes",
		"type": "spreadsheet",
		"fileUrl": "https://files.example/notes.xlsx",
		"department": "Mathematics",
		"year": "Year 1"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/resources", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Invalid type. Must be one of: pdf, document, link, video") {
		t.Fatalf("expected enum message, got %s", body)
	}
}

func TestCreateMissingFieldsMessage(t *testing.T) {
	router := newTestRouter(newStubRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/resources", strings.NewReader(`{"type":"pdf"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Missing required fields:") {
		t.Fatalf("expected missing-fields message, got %s", body)
	}
	for _, field := range []string{"title", "fileUrl", "department", "year"} {
		if !strings.Contains(body, field) {
			t.Fatalf("message should name %q, got %s", field, body)
		}
	}
}

func TestDownloadRedirectsAndCounts(t *testing.T) {
	repo := newStubRepo()
	repo.items["r1"] = Resource{ID: "r1", FileURL: "https://files.example/a.pdf"}
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/resources/r1/download", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "https://files.example/a.pdf" {
		t.Fatalf("expected redirect to file url, got %q", got)
	}
	if repo.items["r1"].DownloadCount != 1 {
		t.Fatalf("download should bump the counter, got %d", repo.items["r1"].DownloadCount)
	}
}

func TestDownloadNotFoundStatus(t *testing.T) {
	router := newTestRouter(newStubRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/resources/missing/download", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
