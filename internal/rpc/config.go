package rpc

import (
	"time"

	"github.com/lzjever/project-audit/internal/source"
)

type Config struct {
	GRPCAddr        string        `envconfig:"AUDIT_GRPC_ADDR" default:"0.0.0.0:7070"`
	MetricsAddr     string        `envconfig:"AUDIT_RPC_METRICS_ADDR" default:"0.0.0.0:9092"`
	LogLevel        string        `envconfig:"AUDIT_LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"AUDIT_SHUTDOWN_TIMEOUT" default:"30s"`
	Source          source.Config
}
