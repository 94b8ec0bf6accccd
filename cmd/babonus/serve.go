package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/babonus/internal/handlers/babonus/v1alpha1"
)

var grpcPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gRPC server",
	Long:  `Start the bonus gRPC server over the configured scene.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides BABONUS_GRPC_PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			slog.Info("received shutdown signal, gracefully stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	port := cfg.GRPCPort
	if cmd.Flags().Changed("port") {
		port = grpcPort
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		RollService:  a.rolls,
		BonusService: a.bonuses,
		Resolver:     a.index,
		Aura:         a.aura,
		Trees:        a.trees,
	})
	if err != nil {
		return fmt.Errorf("failed to create bonus handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := newGRPCServer()
	v1alpha1.RegisterBonusServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", port)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gRPC server")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

func newGRPCServer() *grpc.Server {
	logger := grpc_logging.LoggerFunc(logFunc)
	recovery := grpc_recovery.WithRecoveryHandlerContext(v1alpha1.RecoverPanic)
	return grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(recovery),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(recovery),
		),
	)
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
