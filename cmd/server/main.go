package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc"

	"github.com/murkotick/product-form-service/internal/app/productform"
	"github.com/murkotick/product-form-service/internal/app/productform/contracts"
	"github.com/murkotick/product-form-service/internal/app/productform/session"
	"github.com/murkotick/product-form-service/internal/config"
	"github.com/murkotick/product-form-service/internal/pkg/logger"
	"github.com/murkotick/product-form-service/internal/pkg/metrics"
	"github.com/murkotick/product-form-service/internal/pkg/storage"
	grpcproductform "github.com/murkotick/product-form-service/internal/transport/grpc/productform"
	"github.com/murkotick/product-form-service/internal/transport/http/ops"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("load config", zap.Error(err))
	}
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		zap.L().Fatal("create logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return err
	}
	defer client.Close()

	var images contracts.ImageStore
	if cfg.Storage.Bucket != "" {
		store, err := storage.NewS3ImageStore(ctx, storage.S3Config{
			Bucket:       cfg.Storage.Bucket,
			Region:       cfg.Storage.Region,
			Endpoint:     cfg.Storage.Endpoint,
			PublicURL:    cfg.Storage.PublicURL,
			AccessKey:    cfg.Storage.AccessKey,
			SecretKey:    cfg.Storage.SecretKey,
			UsePathStyle: cfg.Storage.UsePathStyle,
		})
		if err != nil {
			return err
		}
		images = store
	} else {
		log.Warn("no image bucket configured; image uploads will fail")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	saveMetrics := metrics.NewSaveMetrics(reg)

	checkoutDefaults := cfg.CheckoutDefaults.Settings()
	engine, err := productform.NewEngine(
		productform.SpannerDeps(client, images, log),
		productform.Config{
			MaxLoadAttempts:    cfg.Engine.MaxLoadAttempts,
			LoadTimeout:        cfg.Engine.LoadTimeout,
			SaveHandlerTimeout: cfg.Engine.SaveHandlerTimeout,
			SaveAllTimeout:     cfg.Engine.SaveAllTimeout,
			CheckoutDefaults:   &checkoutDefaults,
		},
		productform.WithLogger(log),
		productform.WithObserver(saveMetrics),
	)
	if err != nil {
		return err
	}
	sessions := session.NewManager(engine, log)

	// gRPC server
	srv := grpc.NewServer()
	grpcproductform.RegisterProductFormServiceServer(srv, grpcproductform.NewHandler(sessions, log))

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		return err
	}

	// Ops server
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	opsSrv := &http.Server{
		Addr: cfg.Ops.Addr,
		Handler: ops.NewRouter(ops.Options{
			Logger:   log,
			Gatherer: reg,
			Checks:   map[string]ops.HealthCheck{"spanner": spannerPing(client)},
			Sessions: sessions.Len,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("gRPC server listening", zap.String("addr", cfg.GRPC.Addr))
		errCh <- srv.Serve(lis)
	}()
	go func() {
		log.Info("ops server listening", zap.String("addr", cfg.Ops.Addr))
		if err := opsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GRPC.ShutdownTimeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		srv.Stop()
	}

	// In-flight saves settle before the process exits.
	if err := sessions.CloseAll(shutdownCtx); err != nil {
		log.Warn("close sessions", zap.Error(err))
	}
	if err := opsSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("ops server shutdown", zap.Error(err))
	}
	return serveErr
}

func spannerPing(client *spanner.Client) ops.HealthCheck {
	return func(ctx context.Context) error {
		iter := client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
		defer iter.Stop()
		_, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		return err
	}
}
