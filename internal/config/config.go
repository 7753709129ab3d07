package config

import (
	"errors"
	"fmt"
	"io/fs"
	"landing/pkg/serrors"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Animation describes one scroll-triggered entrance animation. The target
// starts at Opacity and a vertical offset of Y pixels and moves to its natural
// layout state over Duration seconds once the trigger element crosses Start.
type Animation struct {
	// Target is the CSS selector of the animated element(s).
	Target string `yaml:"target"`
	// Trigger is the CSS selector whose scroll position starts the animation.
	Trigger string `yaml:"trigger"`
	// Start is the ScrollTrigger start position, e.g. "top center".
	Start string `yaml:"start"`
	// Opacity is the starting opacity.
	Opacity float64 `yaml:"opacity"`
	// Y is the starting vertical offset in pixels.
	Y float64 `yaml:"y"`
	// Duration is the animation length in seconds.
	Duration float64 `yaml:"duration"`
	// Stagger is the delay in seconds between elements matched by Target.
	Stagger float64 `yaml:"stagger"`
}

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, the served site and
// graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":3000" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request. It does not apply to pprof
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// HealthPath defines the URL path of the liveness endpoint
		HealthPath string `env:"HTTP_HEALTH_PATH" env-default:"/healthz" yaml:"healthPath"`
		// CORSOrigin is the value of Access-Control-Allow-Origin
		CORSOrigin string `env:"HTTP_CORS_ORIGIN" env-default:"*" yaml:"corsOrigin"`
		// Compress enables brotli/gzip response compression
		Compress bool `env:"HTTP_COMPRESS" env-default:"true" yaml:"compress"`
		// Pprof exposes net/http/pprof under /debug/pprof/
		Pprof bool `env:"HTTP_PPROF" env-default:"false" yaml:"pprof"`
	} `yaml:"http"`

	// Site describes the prebuilt bundle being served
	Site struct {
		// BuildDir is the directory holding the prebuilt site, including index.html
		BuildDir string `env:"SITE_BUILD_DIR" env-default:"build/web" yaml:"buildDir"`
		// IndexFile is the root document inside BuildDir, served for / and /index.html
		IndexFile string `env:"SITE_INDEX_FILE" env-default:"index.html" yaml:"indexFile"`
		// ImmutablePaths lists path prefixes (relative to BuildDir) holding content-hashed assets
		ImmutablePaths []string `env:"SITE_IMMUTABLE_PATHS" env-default:"assets/" env-separator:"," yaml:"immutablePaths"` //nolint: lll
		// ScriptPath is the URL path of the generated animation bootstrap script
		ScriptPath string `env:"SITE_SCRIPT_PATH" env-default:"/script.js" yaml:"scriptPath"`

		// Particles configures the particle background
		Particles struct {
			// ContainerID is the DOM id of the element hosting the particle canvas
			ContainerID string `env:"SITE_PARTICLES_CONTAINER_ID" env-default:"particles-js" yaml:"containerID"`
			// ConfigPath is the URL of the particles.js JSON configuration, relative to the page
			ConfigPath string `env:"SITE_PARTICLES_CONFIG_PATH" env-default:"particles.json" yaml:"configPath"`
		} `yaml:"particles"`

		// Animations are the scroll-triggered animations registered on page load.
		// The built-in hero and services animations are used when empty.
		Animations []Animation `yaml:"animations"`
	} `yaml:"site"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config
// struct. A missing file is not an error: environment variables and defaults
// are used instead.
func Load(configPath string) (*Config, error) {
	var cfg Config

	_, err := os.Stat(configPath)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from env: %w", err)
		}
	default:
		return nil, fmt.Errorf("could not stat config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	switch {
	case c.HTTP.Addr == "":
		return serrors.With(serrors.ErrInvalid, "http.addr must not be empty")
	case c.Site.BuildDir == "":
		return serrors.With(serrors.ErrInvalid, "site.buildDir must not be empty")
	case c.Site.IndexFile == "":
		return serrors.With(serrors.ErrInvalid, "site.indexFile must not be empty")
	case c.Site.Particles.ContainerID == "" || c.Site.Particles.ConfigPath == "":
		return serrors.With(serrors.ErrInvalid, "site.particles needs a container id and a config path")
	}

	for i, a := range c.Site.Animations {
		switch {
		case a.Target == "":
			return serrors.With(serrors.ErrInvalid, "site.animations[%d]: target must not be empty", i)
		case a.Trigger == "":
			return serrors.With(serrors.ErrInvalid, "site.animations[%d]: trigger must not be empty", i)
		case a.Duration <= 0:
			return serrors.With(serrors.ErrInvalid, "site.animations[%d]: duration must be positive", i)
		case a.Stagger < 0:
			return serrors.With(serrors.ErrInvalid, "site.animations[%d]: stagger must not be negative", i)
		}
	}

	return nil
}
