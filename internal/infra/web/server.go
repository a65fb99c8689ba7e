package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-lookup-bot/internal/config"
	"telegram-lookup-bot/internal/usecase"
)

// Server exposes the admin API: session login, code issuance/listing and
// balance inspection, plus /healthz and /metrics.
type Server struct {
	codeUC   usecase.CodeUseCase
	ledgerUC usecase.LedgerUseCase
	auth     *AuthManager
	adminKey string
	log      *zerolog.Logger

	httpServer *http.Server
}

func NewServer(cfg *config.WebConfig, codeUC usecase.CodeUseCase, ledgerUC usecase.LedgerUseCase, dev bool, logger *zerolog.Logger) *Server {
	s := &Server{
		codeUC:   codeUC,
		ledgerUC: ledgerUC,
		auth:     NewAuthManager(cfg.JWTSecret, !dev, cfg.SessionTTL),
		adminKey: cfg.AdminKey,
		log:      logger,
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/v1/session", s.handleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(s.auth.Middleware)
		pr.Get("/api/v1/codes", s.handleListCodes)
		pr.Post("/api/v1/codes", s.handleIssueCode)
		pr.Get("/api/v1/users/{id}/credits", s.handleGetCredits)
		pr.Post("/api/v1/users/{id}/adjust", s.handleAdjustCredits)
	})

	return r
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("admin api listening")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
