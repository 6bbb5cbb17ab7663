// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package bootstrap_test

import (
	"bytes"
	"context"
	"crypto/x509"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/config"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/bootstrap"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/testutil"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/trust"
	x509certs "github.com/H0llyW00dzZ/x509-trust-manager/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/logger"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStore(t *testing.T, certs ...*x509.Certificate) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, x509certs.New().EncodeMultiplePEM(certs), 0o600))
	return path
}

func TestNew(t *testing.T) {
	root := testutil.NewRoot(t, "Bootstrap Root CA")
	inter := root.Intermediate(t, "Bootstrap Intermediate CA")
	leaf := inter.Leaf(t, "bootstrap.example.com")
	expired := inter.Issue(t, "expired.example.com", testutil.Options{
		NotBefore: time.Now().Add(-48 * time.Hour),
		NotAfter:  time.Now().Add(-24 * time.Hour),
	}).Cert

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Trusted Chain",
			testFunc: func(t *testing.T) {
				cfg := config.Default()
				cfg.TrustStore.Paths = []string{writeStore(t, root.Cert)}

				rt, err := bootstrap.New(cfg, nil)
				require.NoError(t, err)
				assert.Equal(t, 1, rt.Store.Size())

				require.NoError(t, rt.Manager.CheckServerTrusted([]*x509.Certificate{leaf, inter.Cert}, "ECDHE_ECDSA"))
				assert.Len(t, rt.Manager.AcceptedIssuers(), 1)

				count, err := promtestutil.GatherAndCount(rt.Registry, "x509_trust_manager_verifications_total")
				require.NoError(t, err)
				assert.Equal(t, 1, count)
			},
		},
		{
			name: "Validity Check",
			testFunc: func(t *testing.T) {
				cfg := config.Default()
				cfg.TrustStore.Paths = []string{writeStore(t, root.Cert)}

				lenient, err := bootstrap.New(cfg, nil)
				require.NoError(t, err)
				assert.NoError(t, lenient.Manager.CheckServerTrusted([]*x509.Certificate{expired, inter.Cert}, "ECDHE_ECDSA"))

				cfg.Engine.CheckValidity = true
				strict, err := bootstrap.New(cfg, nil)
				require.NoError(t, err)

				err = strict.Manager.CheckServerTrusted([]*x509.Certificate{expired, inter.Cert}, "ECDHE_ECDSA")
				require.Error(t, err)
				assert.Equal(t, trust.KindLeafVerificationFailed, trust.KindOf(err))
			},
		},
		{
			name: "Verbose Logging",
			testFunc: func(t *testing.T) {
				cfg := config.Default()
				cfg.TrustStore.Paths = []string{writeStore(t, root.Cert)}
				cfg.Logging.Verbose = true

				var buf bytes.Buffer
				rt, err := bootstrap.New(cfg, bootstrap.NewLogger("text", &buf))
				require.NoError(t, err)

				require.NoError(t, rt.Manager.CheckServerTrusted([]*x509.Certificate{leaf, inter.Cert}, "ECDHE_ECDSA"))
				assert.Contains(t, buf.String(), "Loaded 1 trust store entries from 1 path(s)")
				assert.Contains(t, buf.String(), "entered checkServerTrusted()")
			},
		},
		{
			name: "No Trust Store",
			testFunc: func(t *testing.T) {
				_, err := bootstrap.New(config.Default(), nil)
				assert.ErrorIs(t, err, bootstrap.ErrNoTrustStore)

				_, err = bootstrap.New(nil, nil)
				assert.ErrorIs(t, err, bootstrap.ErrNoTrustStore)
			},
		},
		{
			name: "Missing Trust Store",
			testFunc: func(t *testing.T) {
				cfg := config.Default()
				cfg.TrustStore.Paths = []string{filepath.Join(t.TempDir(), "missing.pem")}

				_, err := bootstrap.New(cfg, nil)
				assert.ErrorIs(t, err, os.ErrNotExist)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestStartMetrics(t *testing.T) {
	root := testutil.NewRoot(t, "Metrics Root CA")

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Disabled",
			testFunc: func(t *testing.T) {
				cfg := config.Default()
				cfg.TrustStore.Paths = []string{writeStore(t, root.Cert)}

				rt, err := bootstrap.New(cfg, nil)
				require.NoError(t, err)

				srv, err := rt.StartMetrics()
				require.NoError(t, err)
				assert.Nil(t, srv)
			},
		},
		{
			name: "Enabled",
			testFunc: func(t *testing.T) {
				cfg := config.Default()
				cfg.TrustStore.Paths = []string{writeStore(t, root.Cert)}
				cfg.Metrics.ListenAddress = "127.0.0.1:0"
				cfg.Metrics.Path = "/trust-metrics"

				rt, err := bootstrap.New(cfg, nil)
				require.NoError(t, err)

				srv, err := rt.StartMetrics()
				require.NoError(t, err)
				require.NotNil(t, srv)
				defer srv.Shutdown(context.Background())

				assert.NotNil(t, srv.Addr())
				assert.Equal(t, "/trust-metrics", srv.Path)
			},
		},
		{
			name: "Address In Use",
			testFunc: func(t *testing.T) {
				cfg := config.Default()
				cfg.TrustStore.Paths = []string{writeStore(t, root.Cert)}
				cfg.Metrics.ListenAddress = "127.0.0.1:0"

				first, err := bootstrap.New(cfg, nil)
				require.NoError(t, err)
				srv, err := first.StartMetrics()
				require.NoError(t, err)
				defer srv.Shutdown(context.Background())

				cfg.Metrics.ListenAddress = srv.Addr().String()
				second, err := bootstrap.New(cfg, nil)
				require.NoError(t, err)

				_, err = second.StartMetrics()
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to start metrics server")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	l := bootstrap.NewLogger("json", &buf)
	_, ok := l.(*logger.JSONLogger)
	require.True(t, ok)

	l.Printf("trust store has %d entries", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "trust store has 3 entries", entry["message"])

	buf.Reset()
	l = bootstrap.NewLogger("text", &buf)
	_, ok = l.(*logger.CLILogger)
	require.True(t, ok)

	l.Println("plain")
	assert.Equal(t, "plain", strings.TrimSpace(buf.String()))
}
