package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"liyu1981.xyz/liftright-data-server/pkg/common"
	"liyu1981.xyz/liftright-data-server/pkg/config"
	"liyu1981.xyz/liftright-data-server/pkg/db"
	liftrightGrpc "liyu1981.xyz/liftright-data-server/pkg/grpc"
	liftrightHttp "liyu1981.xyz/liftright-data-server/pkg/http"
	"liyu1981.xyz/liftright-data-server/pkg/liftright"
	"liyu1981.xyz/liftright-data-server/pkg/observability"
)

const shutdownTimeout = 10 * time.Second

var version = "dev"

var openStore = db.OpenStore

func newRootCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:           "liftright-data-server",
		Short:         "Ingest LiftRight device telemetry and answer RTFB status lookups",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
}

func run(ctx context.Context, cfg *config.Config) (err error) {
	logger := common.GetLogger()
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingOptions{
		Mode:        cfg.Tracing,
		ServiceName: liftrightHttp.ServiceName,
		Version:     version,
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if tracingErr := shutdownTracing(flushCtx); tracingErr != nil {
			logger.Warn("Tracing shutdown failed", zap.Error(tracingErr))
		}
	}()

	store, err := openStore(ctx, cfg.StoreOptions())
	if err != nil {
		return err
	}
	gateway := liftright.NewGateway(store)
	defer func() {
		if closeErr := gateway.Close(); closeErr != nil {
			logger.Warn("Store close failed", zap.Error(closeErr))
		}
	}()

	logger.Info("Store opened",
		zap.String("db_type", cfg.DbType),
		zap.Bool("persist_submissions", cfg.PersistSubmissions),
	)

	// bind every listener before serving anything
	httpListener, err := net.Listen("tcp", cfg.HttpAddr())
	if err != nil {
		return err
	}
	defer httpListener.Close()

	var grpcListener net.Listener
	if cfg.GrpcPort != 0 {
		grpcListener, err = net.Listen("tcp", cfg.GrpcAddr())
		if err != nil {
			return err
		}
		defer grpcListener.Close()
	}

	rs := &liftrightHttp.RestfulServer{
		Server:             liftrightHttp.NewEngine(cfg.CorsOrigins),
		Gateway:            gateway,
		PersistSubmissions: cfg.PersistSubmissions,
	}
	rs.Setup()

	httpServer := &http.Server{
		Handler:           rs.Server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("Starting HTTP server on: " + cfg.HttpAddr())
		if serveErr := httpServer.Serve(httpListener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("HTTP server shutdown failed", zap.Error(shutdownErr))
		}
	}()

	if grpcListener != nil {
		grpcServer := liftrightGrpc.NewServer(&liftrightGrpc.DataServer{
			Gateway:            gateway,
			PersistSubmissions: cfg.PersistSubmissions,
		})

		go func() {
			logger.Info("Starting gRPC server on: " + cfg.GrpcAddr())
			if serveErr := grpcServer.Serve(grpcListener); serveErr != nil {
				errCh <- serveErr
			}
		}()
		defer grpcServer.GracefulStop()
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
		return nil
	case err = <-errCh:
		logger.Error("Server failed", zap.Error(err))
		return err
	}
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}

	v := config.New()
	rootCmd := newRootCmd(v)
	if err := config.AddFlags(rootCmd, v); err != nil {
		log.Fatal(err)
	}

	if err := rootCmd.Execute(); err != nil {
		common.GetLogger().Error("liftright-data-server exited", zap.Error(err))
		os.Exit(1)
	}
}
