package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lzjever/project-audit/internal/observability"
)

var (
	apiURL   string
	grpcAddr string
	output   string
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:          "auditctl",
	Short:        "Project audit CLI - view per-project user audit data",
	Long:         `auditctl reads the internal-audit project property through audit-api or audit-rpc and renders it as a table.`,
	SilenceUsage: true,
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&apiURL, "api-url", "a", "http://localhost:8080", "audit-api URL")
	rootCmd.PersistentFlags().StringVar(&grpcAddr, "grpc-addr", "", "audit-rpc address; takes precedence over --api-url")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
}

// newLogger keeps the terminal clean: logs only go to --log-file.
func newLogger() (*zap.Logger, error) {
	if logFile == "" {
		return zap.NewNop(), nil
	}
	return observability.NewLogger("debug", logFile)
}
