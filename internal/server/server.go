package server

import (
	"github.com/gorilla/mux"

	"secure-store-hub/internal/application/usecases"
	"secure-store-hub/internal/handler"
	"secure-store-hub/internal/middleware"
)

// Server represents the HTTP server with configured middleware
type Server struct {
	Router *mux.Router
}

// New creates a new server instance and attaches middlewares.
// Order matters: CORS (preflight), request id, logging, panic recovery,
// then authentication and authorization for everything non-public.
func New(keys *usecases.KeyUseCase) *Server {
	router := mux.NewRouter()

	router.Use(middleware.CorsMiddleware)
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.ErrorHandlerMiddleware)
	router.Use(middleware.APIKeyAuthMiddleware(keys, handler.IsPublic))
	router.Use(middleware.Authorize(handler.IsPublic))

	return &Server{
		Router: router,
	}
}
