// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/config"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/bootstrap"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/mcp-server/templates"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/version"
	"github.com/mark3labs/mcp-go/server"
)

var appVersion = version.Version // default version

// metricsShutdownTimeout bounds the graceful shutdown of the metrics endpoint.
const metricsShutdownTimeout = 5 * time.Second

// GetVersion returns the current version of the MCP server.
//
// The version is initially set to the default from the version package,
// and is overridden when calling [Run] with a specific version string.
func GetVersion() string {
	return appVersion
}

// Run starts the MCP server over stdio with the trust manager tools.
//
// Run loads the configuration from configFile (or the X509_TRUST_CONFIG_FILE
// environment variable when empty), loads the trust store, starts the optional
// metrics endpoint and serves until stdin is closed or ctx is cancelled.
// Log output goes to stderr; stdout carries the protocol only.
//
// Parameters:
//   - ctx: Context controlling the server lifetime
//   - version: Version string to report to clients
//   - configFile: Path to the configuration file, may be empty
//
// Returns:
//   - error: Configuration, trust store or transport error; nil on clean shutdown
func Run(ctx context.Context, version, configFile string) error {
	appVersion = version

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := bootstrap.NewLogger(cfg.Logging.Format, os.Stderr)

	rt, err := bootstrap.New(cfg, logger)
	if err != nil {
		return err
	}

	metricsServer, err := rt.StartMetrics()
	if err != nil {
		return err
	}
	if metricsServer != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Printf("failed to shut down metrics server: %v", err)
			}
		}()
	}

	tools := createTools()

	instructions, err := loadInstructions(templates.MagicEmbed, tools)
	if err != nil {
		return fmt.Errorf("failed to load instructions: %w", err)
	}

	s, err := NewServerBuilder().
		WithRuntime(rt).
		WithVersion(version).
		WithTools(tools...).
		WithResources(createResources()...).
		WithInstructions(instructions).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	return serve(ctx, s, os.Stdin, os.Stdout)
}

// serve runs s as a stdio server on in and out until in reaches EOF or ctx is
// cancelled. Cancellation is a clean shutdown.
func serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	stdioServer := server.NewStdioServer(s)
	stdioServer.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))

	if err := stdioServer.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
