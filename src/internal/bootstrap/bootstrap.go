// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package bootstrap

import (
	"errors"
	"fmt"
	"io"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/config"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/keystore"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/metrics"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/x509/certmanager"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/logger"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/trustmanager"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrNoTrustStore indicates that no trust store path was configured.
var ErrNoTrustStore = errors.New("bootstrap: no trust store configured")

// Runtime holds the components built from a configuration.
type Runtime struct {
	Config   *config.Config
	Store    *keystore.KeyStore
	Manager  *trustmanager.TrustManager
	Metrics  *metrics.Collector
	Registry *prometheus.Registry
	Logger   logger.Logger
}

// New loads the configured trust store and builds a trust manager over it.
//
// Parameters:
//   - cfg: Configuration; TrustStore.Paths must not be empty
//   - log: Logger for runtime messages; a nil logger is silent
//
// Returns:
//   - *Runtime: Assembled components
//   - error: ErrNoTrustStore or a trust store loading error
func New(cfg *config.Config, log logger.Logger) (*Runtime, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewJSONLogger(nil, true)
	}
	if len(cfg.TrustStore.Paths) == 0 {
		return nil, ErrNoTrustStore
	}

	store, err := keystore.Load(cfg.TrustStore.Password, cfg.TrustStore.Paths...)
	if err != nil {
		return nil, err
	}

	var engineOpts []certmanager.Option
	if cfg.Engine.CheckValidity {
		engineOpts = append(engineOpts, certmanager.WithValidityCheck(nil))
	}

	registry := prometheus.NewRegistry()
	collector := metrics.New(registry)

	opts := []trustmanager.Option{
		trustmanager.WithEngineFactory(certmanager.Factory(engineOpts...)),
		trustmanager.WithMetrics(collector),
	}
	if cfg.Logging.Verbose {
		opts = append(opts, trustmanager.WithLogger(log))
	}

	log.Printf("Loaded %d trust store entries from %d path(s)", store.Size(), len(cfg.TrustStore.Paths))

	return &Runtime{
		Config:   cfg,
		Store:    store,
		Manager:  trustmanager.New(store, opts...),
		Metrics:  collector,
		Registry: registry,
		Logger:   log,
	}, nil
}

// StartMetrics starts the metrics endpoint when Metrics.ListenAddress is set.
// It returns a nil server when metrics exposition is disabled.
func (r *Runtime) StartMetrics() (*metrics.Server, error) {
	if r.Config.Metrics.ListenAddress == "" {
		return nil, nil
	}

	srv := metrics.NewServer(r.Config.Metrics.ListenAddress, r.Registry, r.Logger)
	if r.Config.Metrics.Path != "" {
		srv.Path = r.Config.Metrics.Path
	}
	if err := srv.Start(); err != nil {
		return nil, fmt.Errorf("failed to start metrics server: %w", err)
	}
	return srv, nil
}

// NewLogger returns the logger selected by format, writing to w.
// Unknown formats fall back to human-readable text.
func NewLogger(format string, w io.Writer) logger.Logger {
	if format == "json" {
		return logger.NewJSONLogger(w, false)
	}
	l := logger.NewCLILogger()
	l.SetOutput(w)
	return l
}
