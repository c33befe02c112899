package api

import (
	"time"

	"github.com/lzjever/project-audit/internal/source"
)

type Config struct {
	HTTPAddr        string        `envconfig:"AUDIT_HTTP_ADDR" default:"0.0.0.0:8080"`
	MetricsAddr     string        `envconfig:"AUDIT_METRICS_ADDR" default:"0.0.0.0:9090"`
	LogLevel        string        `envconfig:"AUDIT_LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"AUDIT_SHUTDOWN_TIMEOUT" default:"30s"`
	Source          source.Config
}
