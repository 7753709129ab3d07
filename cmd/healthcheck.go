package main

import (
	"context"
	"fmt"
	"landing/internal/config"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

const healthcheckTimeout = 2 * time.Second

// healthcheckCommand probes the running server's health endpoint over
// loopback. It exits non-zero unless the endpoint answers 200, which makes it
// usable as a container HEALTHCHECK without curl in the image.
func healthcheckCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "healthcheck",
		Short: "Checks that a running server is healthy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), healthcheckTimeout)
			defer cancel()

			return check(ctx, &http.Client{Timeout: healthcheckTimeout},
				"http://"+normalizeAddr(cfg.HTTP.Addr)+cfg.HTTP.HealthPath)
		},
	}
}

func check(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("could not build health request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: %s returned %d", url, resp.StatusCode)
	}

	return nil
}

// normalizeAddr points the probe at loopback when the server binds all
// interfaces, since the check runs on the same host.
func normalizeAddr(raw string) string {
	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return "127.0.0.1:3000"
	}

	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
