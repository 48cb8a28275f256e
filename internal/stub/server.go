package stub

import (
	"fmt"
	"net/http"
	"time"

	"crickmart/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Server is the local development API stub.
type Server struct {
	*http.Server
	logger *zap.Logger
}

// NewServer builds the stub's router and HTTP server.
func NewServer(cfg config.Stub, logger *zap.Logger) *Server {
	router := NewRouter(cfg, logger)

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// NewRouter wires the middleware stack and routes. Split out so tests can
// mount the stub in-process with httptest.
func NewRouter(cfg config.Stub, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(loggingMiddleware(logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	store := newMemoryStore()
	tokens := newTokenService(cfg.JWTSecret, cfg.AccessExpiry)
	handler := NewHandler(store, tokens, logger)
	handler.RegisterRoutes(router, authMiddleware(tokens, logger))

	return router
}

// Close releases server resources.
func (s *Server) Close() error {
	s.logger.Info("Closing stub server resources")
	s.logger.Sync()
	return nil
}
