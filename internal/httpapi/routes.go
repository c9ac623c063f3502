package httpapi

import (
	"net/http"

	"github.com/DoyleJ11/rolly-polly/internal/hub"
	"github.com/DoyleJ11/rolly-polly/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func SetupRoutes(h *hub.Hub, wsOpts ws.Options, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz(h))
	r.Get("/ws", ws.Handler(h, wsOpts, log))
	return r
}
