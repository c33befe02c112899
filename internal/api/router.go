package api

import (
	"context"
	"encoding/json"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lzjever/project-audit/internal/api/middleware"
)

// AuditService is the provider operation the HTTP surface exposes.
type AuditService interface {
	GetAuditData(ctx context.Context, projectID string) (json.RawMessage, error)
	Ping(ctx context.Context) error
}

type API struct {
	svc AuditService
	log *zap.Logger
}

func NewAPI(svc AuditService, log *zap.Logger) *API {
	return &API{svc: svc, log: log}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recoverer(a.log))
	r.Use(middleware.Logger)

	// Health endpoints
	r.Get("/healthz", a.HealthHandler)
	r.Get("/readyz", a.ReadyHandler)

	r.Get("/get-audit-data", a.GetAuditData)

	return r
}
