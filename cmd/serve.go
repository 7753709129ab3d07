package main

import (
	"context"
	"errors"
	"landing/internal/api"
	"landing/internal/config"
	"landing/internal/site"
	"landing/pkg/logger"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setupServer prepares the site, binds the listener and starts serving in the
// background. Any failure before the listener is bound is fatal. The returned
// function shuts the server down gracefully.
func setupServer(ctx context.Context, cfg *config.Config) func(ctx context.Context) {
	st, err := site.Prepare(ctx, site.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not prepare site", zap.Error(err))
	}

	server, err := api.NewServer(ctx, api.Deps{Site: st}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		logger.Fatal(ctx, "could not bind listener", zap.String("addr", server.Addr), zap.Error(err))
	}
	logger.Info(ctx, "ready", zap.String("url", readyURL(ln.Addr())))

	go func() {
		if err := server.Serve(ln); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "webserver stopped unexpectedly", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// readyURL is the address operators can open in a browser once the listener
// is bound. Wildcard hosts are reported as localhost.
func readyURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String()
	}

	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}

	return "http://" + net.JoinHostPort(host, port)
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves the prebuilt site until interrupted",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stopWebserver := setupServer(ctx, cfg)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
