package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/lzjever/project-audit/internal/audit"
	"github.com/lzjever/project-audit/internal/observability"
	"github.com/lzjever/project-audit/internal/rpc"
	"github.com/lzjever/project-audit/internal/source"
)

func main() {
	var cfg rpc.Config
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, _ := observability.NewLogger(cfg.LogLevel)
	defer log.Sync()

	reg := prometheus.DefaultRegisterer
	observability.RegisterAll(reg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	src, closeSource, err := source.Open(ctx, cfg.Source, log)
	if err != nil {
		log.Fatal("property source setup failed", zap.Error(err))
	}
	defer closeSource()

	// Metrics HTTP server
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}

	// gRPC server
	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatal("listen failed", zap.Error(err))
	}

	srv := grpc.NewServer(grpc.UnaryInterceptor(rpc.UnaryMetrics))
	svc := audit.NewService(src, cfg.Source.PropertyKey, log)
	rpc.RegisterAuditServiceServer(srv, rpc.NewServer(svc, log))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("metrics server starting", zap.String("addr", cfg.MetricsAddr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("gRPC server starting", zap.String("addr", cfg.GRPCAddr))
		return srv.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down audit rpc")
		srv.GracefulStop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		return metricsSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("audit rpc stopped with error", zap.Error(err))
	}
}
