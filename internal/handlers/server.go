package handlers

import (
	"log/slog"
	"net/http"

	"github.com/DarboeDev/UTGSSA-HUB/internal/auth"
	"github.com/DarboeDev/UTGSSA-HUB/internal/config"
	"github.com/DarboeDev/UTGSSA-HUB/internal/db"
	"github.com/DarboeDev/UTGSSA-HUB/internal/middleware"
	"github.com/DarboeDev/UTGSSA-HUB/internal/transport"
	"github.com/DarboeDev/UTGSSA-HUB/internal/validation"
)

// Server carries the shared dependencies of the auth and health
// endpoints. Content endpoints live in their own packages.
type Server struct {
	Cfg  *config.Config
	Cols *db.Collections
	Val  *validation.Validator
	Log  *slog.Logger
	JWT  *auth.Manager
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	transport.WriteData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}
