package audit

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/lzjever/project-audit/internal/api/middleware"
	"github.com/lzjever/project-audit/internal/core"
	"github.com/lzjever/project-audit/internal/observability"
)

// Service republishes the audit property of a project. It keeps no state
// between calls.
type Service struct {
	source core.PropertySource
	key    string
	log    *zap.Logger
}

func NewService(source core.PropertySource, key string, log *zap.Logger) *Service {
	if key == "" {
		key = core.AuditPropertyKey
	}
	return &Service{source: source, key: key, log: log}
}

// GetAuditData returns the property value verbatim, or the empty payload when
// the property has no value. Failures come back as *core.AppError.
func (s *Service) GetAuditData(ctx context.Context, projectID string) (json.RawMessage, error) {
	if projectID == "" {
		return nil, core.NewAppError(core.ErrBadRequest, core.MsgProjectIDMissing)
	}

	log := observability.ProjectLogger(s.log, projectID, s.source.Name())
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		log = log.With(zap.String("request_id", id))
	}

	start := time.Now()
	prop, err := s.source.ProjectProperty(ctx, projectID, s.key)
	observability.UpstreamDuration.WithLabelValues(s.source.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		var upErr *core.UpstreamError
		if errors.As(err, &upErr) {
			observability.UpstreamRequestsTotal.WithLabelValues(s.source.Name(), strconv.Itoa(upErr.StatusCode)).Inc()
			log.Error(core.MsgFetchFailed,
				zap.Int("status", upErr.StatusCode),
				zap.String("upstream_body", upErr.Body),
			)
			return nil, &core.AppError{Code: core.ErrUpstream, Message: core.MsgFetchFailed, Status: upErr.StatusCode}
		}
		observability.UpstreamRequestsTotal.WithLabelValues(s.source.Name(), "error").Inc()
		log.Error(core.MsgFetchFailed, zap.Error(err))
		return nil, core.NewAppError(core.ErrUpstreamUnavailable, core.MsgFetchFailed)
	}

	observability.UpstreamRequestsTotal.WithLabelValues(s.source.Name(), "200").Inc()
	return core.PayloadOrEmpty(prop.Value), nil
}

// Ping checks the source when it supports health checks.
func (s *Service) Ping(ctx context.Context) error {
	if p, ok := s.source.(core.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
