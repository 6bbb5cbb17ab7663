// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultPath is the default path for the metrics endpoint.
const DefaultPath = "/metrics"

// Server exposes a Prometheus registry over HTTP.
type Server struct {
	// ListenAddress is the address to listen on, for example "127.0.0.1:9464".
	ListenAddress string
	// Path is the path to expose metrics on. Defaults to [DefaultPath].
	Path string

	gatherer prometheus.Gatherer
	log      logger.Logger

	mu  sync.Mutex
	srv *http.Server
	ln  net.Listener
}

// NewServer returns a metrics server for gatherer.
func NewServer(addr string, gatherer prometheus.Gatherer, log logger.Logger) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if log == nil {
		log = logger.NewJSONLogger(nil, true)
	}
	return &Server{ListenAddress: addr, Path: DefaultPath, gatherer: gatherer, log: log}
}

// Handler returns the HTTP handler serving the metrics path.
func (s *Server) Handler() http.Handler {
	path := s.Path
	if path == "" {
		path = DefaultPath
	}
	metrics := promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		metrics.ServeHTTP(w, r)
	})
}

// Start listens on ListenAddress and serves in the background.
//
// Returns:
//   - error: Error if the address cannot be bound
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.ListenAddress)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	s.mu.Lock()
	s.srv, s.ln = srv, ln
	s.mu.Unlock()

	s.log.Printf("Starting Prometheus metrics server on %s%s", ln.Addr(), s.Path)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Printf("metrics server failed: %v", err)
		}
	}()

	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown stops the server gracefully. It is a no-op before Start.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	s.log.Println("Shutting down Prometheus metrics server")
	return srv.Shutdown(ctx)
}
