package blogs

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DarboeDev/UTGSSA-HUB/internal/cache"
	"github.com/DarboeDev/UTGSSA-HUB/internal/validation"
	"github.com/go-chi/chi/v5"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(repo Repository) *chi.Mux {
	svc := NewService(repo, time.UTC)
	h := NewHandler(svc, validation.New(), discardLogger(), cache.NewNoop(), time.Minute)

	r := chi.NewRouter()
	r.Get("/api/blogs", h.List)
	r.Post("/api/blogs/{id}/like", h.Like)
	return r
}

func TestLikeReturnsNewCount(t *testing.T) {
	repo := newStubRepo()
	repo.items["b1"] = Blog{ID: "b1", Likes: 9}
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/blogs/b1/like", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Data struct {
			Likes int64 `json:"likes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Data.Likes != 10 {
		t.Fatalf("expected 10 likes, got %d", body.Data.Likes)
	}
}

func TestLikeUnknownBlog(t *testing.T) {
	router := newTestRouter(newStubRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/blogs/missing/like", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
