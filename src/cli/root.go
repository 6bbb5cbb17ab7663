// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/config"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/bootstrap"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/logger"
	"github.com/spf13/cobra"
)

// Output formats accepted by the --format flags.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatPEM   = "pem"
)

// ErrUnsupportedFormat indicates an unknown --format value.
var ErrUnsupportedFormat = errors.New("cli: unsupported output format")

// options holds the flags shared by all commands.
type options struct {
	configFile  string
	trustStores []string
	password    string
	log         logger.Logger
}

// Execute builds the root command and runs it with ctx.
//
// Parameters:
//   - ctx: Context for cancellation; passed to every command
//   - version: Version string reported by --version
//   - log: Logger for diagnostics; nil uses a [logger.CLILogger]
//
// Returns:
//   - error: Configuration, loading or verification error. An untrusted
//     chain is reported as the [trustmanager.CertificateError] returned by
//     the trust manager.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewRootCommand(version, log).ExecuteContext(ctx)
}

// NewRootCommand returns the root command with all subcommands attached.
func NewRootCommand(version string, log logger.Logger) *cobra.Command {
	if log == nil {
		log = logger.NewCLILogger()
	}
	opts := &options{log: log}

	// Use cross-platform executable name extraction for consistent UX
	exeName := posix.GetExecutableName()

	rootCmd := &cobra.Command{
		Use:   exeName,
		Short: "X.509 trust manager for TLS certificate chains",
		Long: `Verify X.509 certificate chains by linear extension of trust from a trust store.

The trust store is built from PEM, DER, PKCS#7 and PKCS#12 files or directories
given with --truststore or the trustStore section of the configuration file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "path to configuration file (JSON or YAML)")
	pf.StringSliceVarP(&opts.trustStores, "truststore", "t", nil, "trust store file or directory (repeatable)")
	pf.StringVarP(&opts.password, "password", "p", "", "PKCS#12 trust store password")

	rootCmd.AddCommand(
		newVerifyCommand(opts),
		newIssuersCommand(opts),
		newProbeCommand(opts),
	)

	return rootCmd
}

// runtime loads the configuration, applies the shared flags and builds the
// trust manager.
func (o *options) runtime(cmd *cobra.Command) (*bootstrap.Runtime, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if len(o.trustStores) > 0 {
		cfg.TrustStore.Paths = o.trustStores
	}
	if cmd.Flags().Changed("password") {
		cfg.TrustStore.Password = o.password
	}

	log := o.log
	if cfg.Logging.Format == "json" {
		log = bootstrap.NewLogger(cfg.Logging.Format, cmd.ErrOrStderr())
	}

	return bootstrap.New(cfg, log)
}

// checkFormat returns ErrUnsupportedFormat unless format is one of allowed.
func checkFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("%w %q (want one of %v)", ErrUnsupportedFormat, format, allowed)
}
