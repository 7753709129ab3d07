// Package api assembles the HTTP server: the site itself, the generated page
// bootstrap resources, metrics, health and debug endpoints, and the
// middleware stack around them.
package api

import (
	"context"
	"fmt"
	"landing/internal/animation"
	"landing/internal/config"
	"landing/internal/site"
	"landing/pkg/controller"
	"landing/pkg/logger"
	"landing/pkg/metrics"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
type Options struct {
	// Bootstrap is the particle background and scroll animations rendered into the page script.
	Bootstrap animation.Bootstrap
	// ScriptPath is the URL path of the generated bootstrap script.
	ScriptPath string

	// Addr is the TCP address the server listens on, e.g. ":3000".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// HealthPath is the HTTP path of the liveness endpoint.
	HealthPath string
	// CORSOrigin is sent as Access-Control-Allow-Origin.
	CORSOrigin string
	// Compress enables brotli/gzip response encoding.
	Compress bool
	// Pprof mounts net/http/pprof under /debug/pprof/.
	Pprof bool
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Bootstrap:  animation.NewBootstrap(cfg),
		ScriptPath: cfg.Site.ScriptPath,

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		HealthPath:        cfg.HTTP.HealthPath,
		CORSOrigin:        cfg.HTTP.CORSOrigin,
		Compress:          cfg.HTTP.Compress,
		Pprof:             cfg.HTTP.Pprof,
	}
}

// Deps are the collaborators NewServer wires together.
type Deps struct {
	// Site is the prepared bundle. Generated resources are mounted on it.
	Site *site.Site
	// Registry receives the server's metrics. prometheus.DefaultRegisterer is used when nil.
	Registry *prometheus.Registry
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - the bootstrap script and, unless the bundle ships one, the particle configuration
// - Prometheus metrics endpoint (MetricsPath) fed by an OpenTelemetry meter provider
// - a liveness endpoint (HealthPath)
// - the site handler for everything else
// - pprof endpoints for profiling, when enabled
// It also wraps the mux with CORS, metrics, compression and logging middlewares and applies a request
// timeout. pprof is only logged and is not bound by the request timeout.
func NewServer(ctx context.Context, deps Deps, opts Options) (*http.Server, error) {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	if err := mountBootstrap(ctx, deps.Site, opts); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// prometheus metrics server
	mux.Handle(opts.MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// otel
	mp, err := metrics.NewMeterProvider(registerer)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}
	httpMetrics, err := controller.NewHTTPMetrics(mp)
	if err != nil {
		return nil, fmt.Errorf("could not create http metrics: %w", err)
	}

	mux.HandleFunc(opts.HealthPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/", deps.Site.Handler())

	handler := controller.WithCORS(opts.CORSOrigin, mux)
	handler = controller.WithMetrics(httpMetrics, handler)
	if opts.Compress {
		handler = controller.WithCompression(handler)
	}
	handler = controller.WithLogger(handler)

	root := http.NewServeMux()
	root.Handle("/", http.TimeoutHandler(handler, opts.RequestTimeout, "request timed out"))

	// pprof profiles run for as long as the client asks, so they bypass the request timeout
	if opts.Pprof {
		root.Handle(controller.PprofPrefix, controller.WithLogger(controller.PprofMux()))
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           root,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
		ErrorLog:          logger.Std(ctx, slog.LevelWarn),
	}, nil
}

// mountBootstrap serves the generated page script and, when the bundle does
// not provide its own, the default particle configuration.
func mountBootstrap(ctx context.Context, s *site.Site, opts Options) error {
	script, err := animation.ScriptHandler(opts.Bootstrap)
	if err != nil {
		return fmt.Errorf("could not build bootstrap script: %w", err)
	}
	s.Mount("GET "+opts.ScriptPath, script)

	configPath := opts.Bootstrap.Particles.ConfigPath
	if strings.Contains(configPath, "://") {
		// hosted elsewhere
		return nil
	}

	particlesPath := path.Join("/", configPath)
	if s.Has(configPath) {
		logger.Debug(ctx, "using particle configuration from bundle", zap.String("path", particlesPath))

		return nil
	}
	s.Mount("GET "+particlesPath, animation.ParticlesHandler(animation.DefaultParticlesConfig()))

	return nil
}
