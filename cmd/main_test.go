package main

import (
	"bytes"
	"context"
	"landing/internal/config"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadyURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{addr: "[::]:3000", want: "http://localhost:3000"},
		{addr: "0.0.0.0:3000", want: "http://localhost:3000"},
		{addr: "127.0.0.1:8080", want: "http://127.0.0.1:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			addr, err := net.ResolveTCPAddr("tcp", tt.addr)
			require.NoError(t, err)
			require.Equal(t, tt.want, readyURL(addr))
		})
	}
}

func TestNormalizeAddr(t *testing.T) {
	require.Equal(t, "127.0.0.1:3000", normalizeAddr(":3000"))
	require.Equal(t, "127.0.0.1:3000", normalizeAddr("0.0.0.0:3000"))
	require.Equal(t, "127.0.0.1:3000", normalizeAddr("garbage"))
	require.Equal(t, "10.1.2.3:8080", normalizeAddr("10.1.2.3:8080"))
}

func TestCheck(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			http.NotFound(w, r)

			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(healthy.Close)

	ctx := context.Background()
	require.NoError(t, check(ctx, healthy.Client(), healthy.URL+"/healthz"))
	require.ErrorContains(t, check(ctx, healthy.Client(), healthy.URL+"/other"), "returned 404")

	require.Error(t, check(ctx, http.DefaultClient, "http://127.0.0.1:1/healthz"))
}

func TestScriptCommand(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	var out bytes.Buffer
	cmd := scriptCommand(cfg)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	require.True(t, strings.HasPrefix(out.String(), "particlesJS.load('particles-js', 'particles.json'"))

	out.Reset()
	cmd = scriptCommand(cfg)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--particles"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), `"retina_detect":true`)
}
