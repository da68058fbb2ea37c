package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/consultavoz/backend/internal/handler/gateway"
	middlewarePkg "github.com/consultavoz/backend/internal/middleware"
)

// NewRouter wires the gateway endpoints to the HTTP surface.
func NewRouter(profiles gateway.ProfileFinder, tokens gateway.CredentialMinter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	gatewayHandler := gateway.New(profiles, tokens)
	gatewayHandler.RegisterRoutes(r)

	return r
}
