package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/mentormatch/apiserver/config"
	"github.com/mentormatch/apiserver/internal/auth"
	"github.com/mentormatch/apiserver/internal/handlers"
	"github.com/mentormatch/apiserver/internal/logging"
	"github.com/mentormatch/apiserver/internal/services"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	backend    *Backend
	logger     *zap.Logger
}

// New constructs a Server with all dependencies wired from cfg.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Server, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.TokenTTL)

	userService := services.NewUserService(backend.Users, hasher, tokens)
	matchService := services.NewMatchService(backend.Requests, backend.Users)
	mentorService := services.NewMentorService(backend.Users)
	profileService := services.NewProfileService(backend.Users, backend.Images)
	adminService := services.NewAdminService(backend.Admin, hasher)

	authMiddleware := handlers.RequireAuth(userService, logger)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		logging.RequestLogger(logger),
		middleware.Timeout(60*time.Second),
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/healthz", http.StatusTemporaryRedirect)
	})
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", func(r chi.Router) {
		handlers.AuthRouter(r, userService, logger)
		r.Route("/profile", func(r chi.Router) {
			handlers.ProfileRouter(r, profileService, logger, authMiddleware)
		})
		r.Route("/images", func(r chi.Router) {
			handlers.ImageRouter(r, profileService, logger)
		})
		r.Route("/mentors", func(r chi.Router) {
			handlers.MentorRouter(r, mentorService, logger, authMiddleware)
		})
		r.Route("/match-requests", func(r chi.Router) {
			handlers.MatchRequestRouter(r, matchService, logger, authMiddleware)
		})
		r.Route("/admin", func(r chi.Router) {
			handlers.AdminRouter(r, adminService, logger)
		})
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		backend:    backend,
		logger:     logger,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server. It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then closes the backend.
func (s *Server) Shutdown(ctx context.Context) error {
	httpErr := s.httpServer.Shutdown(ctx)
	backendErr := s.backend.Close()
	return errors.Join(httpErr, backendErr)
}
