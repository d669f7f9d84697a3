package events

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/DarboeDev/UTGSSA-HUB/internal/cache"
	"github.com/DarboeDev/UTGSSA-HUB/internal/httpx"
	"github.com/DarboeDev/UTGSSA-HUB/internal/middleware"
	"github.com/DarboeDev/UTGSSA-HUB/internal/transport"
	"github.com/DarboeDev/UTGSSA-HUB/internal/validation"
	"github.com/go-chi/chi/v5"
)

const cachePrefix = "events:"

type Handler struct {
	service  *Service
	val      *validation.Validator
	log      *slog.Logger
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, store cache.Cache, cacheTTL time.Duration) *Handler {
	return &Handler{
		service:  service,
		val:      val,
		log:      log,
		cache:    store,
		cacheTTL: cacheTTL,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	limit, err := httpx.ParseLimit(r.URL.Query())
	if err != nil {
		log.Warn("events list: invalid query", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	filter := ListFilter{
		Category:     strings.TrimSpace(r.URL.Query().Get("category")),
		UpcomingOnly: r.URL.Query().Get("upcoming") == "true",
		Limit:        limit,
	}

	// Upcoming results shift as the clock moves, so only the stable
	// queries are cached.
	cacheKey := ""
	if !filter.UpcomingOnly {
		cacheKey = cachePrefix + r.URL.RawQuery
		if h.cache != nil {
			if cached, ok, err := h.cache.Get(r.Context(), cacheKey); err == nil && ok {
				writeCached(w, cached)
				return
			}
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.List(ctx, filter)
	if err != nil {
		log.Error("events list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if h.cache != nil && cacheKey != "" {
		if payload, err := transport.EncodeData(items); err == nil {
			_ = h.cache.Set(r.Context(), cacheKey, payload, h.cacheTTL)
		}
	}

	log.Info("events list: ok", slog.Int("count", len(items)))
	transport.WriteData(w, http.StatusOK, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			transport.WriteError(w, http.StatusNotFound, "Event not found", nil)
			return
		}
		log.Error("events get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("events create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		errs := h.val.ValidationErrors(err)
		log.Warn("events create: validation error")
		transport.WriteError(w, http.StatusBadRequest, httpx.ValidationMessage(errs), httpx.ValidationDetails(errs))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req)
	if err != nil {
		if errors.Is(err, ErrBadDate) {
			log.Warn("events create: bad date")
			transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		log.Error("events create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.invalidate(r)
	log.Info("events create: ok", slog.String("event_id", item.ID))
	transport.WriteData(w, http.StatusCreated, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	var req UpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("events update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			transport.WriteError(w, http.StatusNotFound, "Event not found", nil)
		case errors.Is(err, ErrEmptyField), errors.Is(err, ErrBadDate):
			log.Warn("events update: invalid fields", slog.String("event_id", id))
			transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		default:
			log.Error("events update: database error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		}
		return
	}

	h.invalidate(r)
	log.Info("events update: ok", slog.String("event_id", id))
	transport.WriteData(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			transport.WriteError(w, http.StatusNotFound, "Event not found", nil)
			return
		}
		log.Error("events delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.invalidate(r)
	log.Info("events delete: ok", slog.String("event_id", id))
	transport.WriteMessage(w, http.StatusOK, "Event deleted successfully")
}

func (h *Handler) invalidate(r *http.Request) {
	if h.cache != nil {
		_ = h.cache.DeletePrefix(r.Context(), cachePrefix)
	}
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}

func writeCached(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
