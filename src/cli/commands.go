// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/report"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/trust"
	x509certs "github.com/H0llyW00dzZ/x509-trust-manager/src/internal/x509/certs"
	x509remote "github.com/H0llyW00dzZ/x509-trust-manager/src/internal/x509/remote"
	"github.com/spf13/cobra"
)

func newVerifyCommand(opts *options) *cobra.Command {
	var chainFile, role, authType, format string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a certificate chain against the trust store",
		Long: `Verify a certificate chain file, leaf first, against the trust store.

The outermost certificate is checked first and each verified intermediate
becomes trusted for the next one. The command fails when the chain is not trusted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format, FormatText, FormatTable, FormatJSON); err != nil {
				return err
			}

			rt, err := opts.runtime(cmd)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(chainFile)
			if err != nil {
				return fmt.Errorf("failed to read chain: %w", err)
			}
			chain, err := x509certs.New().DecodeMultiple(data)
			if err != nil {
				return fmt.Errorf("failed to decode chain: %w", err)
			}

			if role == "" {
				role = rt.Config.Defaults.Role
			}
			r, err := trust.ParseRole(role)
			if err != nil {
				return err
			}
			if authType == "" {
				authType = rt.Config.Defaults.AuthType
			}

			verr := rt.Manager.CheckTrusted(chain, authType, r)
			if err := writeChain(cmd.OutOrStdout(), format, chain, r, authType, verr); err != nil {
				return err
			}
			return verr
		},
	}

	cmd.Flags().StringVarP(&chainFile, "chain", "c", "", "certificate chain file, leaf first (PEM, DER or PKCS#7)")
	cmd.Flags().StringVarP(&role, "role", "r", "", "peer role: server or client (default from config)")
	cmd.Flags().StringVarP(&authType, "auth-type", "a", "", "authentication type (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format: text, table or json")
	_ = cmd.MarkFlagRequired("chain")

	return cmd
}

func newIssuersCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "issuers",
		Short: "List the accepted issuers of the trust store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format, FormatTable, FormatPEM, FormatJSON); err != nil {
				return err
			}

			rt, err := opts.runtime(cmd)
			if err != nil {
				return err
			}

			issuers := rt.Manager.AcceptedIssuers()
			out := cmd.OutOrStdout()

			switch format {
			case FormatPEM:
				_, err = out.Write(x509certs.New().EncodeMultiplePEM(issuers))
				return err
			case FormatJSON:
				data, err := report.IssuersJSON(issuers)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			default:
				_, err = fmt.Fprint(out, report.IssuersTable(issuers))
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatTable, "output format: table, pem or json")

	return cmd
}

func newProbeCommand(opts *options) *cobra.Command {
	var timeout time.Duration
	var format string

	cmd := &cobra.Command{
		Use:   "probe HOST[:PORT]",
		Short: "Verify the chain presented by a TLS server",
		Long: `Connect to a TLS server and verify the chain it presents against the trust store.

The port defaults to 443. The server host name is not matched against the leaf.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, FormatText, FormatTable, FormatJSON); err != nil {
				return err
			}

			rt, err := opts.runtime(cmd)
			if err != nil {
				return err
			}

			if timeout <= 0 {
				timeout = rt.Config.Timeout()
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			res, err := x509remote.Probe(ctx, args[0], rt.Manager.TLSConfig(trust.RoleServer))
			if len(res.Chain) == 0 {
				return err
			}

			out := cmd.OutOrStdout()
			if err == nil && format == FormatText {
				fmt.Fprintf(out, "Connected to %s (%s, %s)\n", res.Address,
					tls.VersionName(res.Version), tls.CipherSuiteName(res.CipherSuite))
			}

			authType := res.Chain[0].PublicKeyAlgorithm.String()
			if werr := writeChain(out, format, res.Chain, trust.RoleServer, authType, err); werr != nil {
				return werr
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "handshake timeout (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format: text, table or json")

	return cmd
}

// writeChain prints the verification result of chain in format.
func writeChain(w io.Writer, format string, chain []*x509.Certificate, role trust.Role, authType string, verr error) error {
	switch format {
	case FormatJSON:
		data, err := report.NewResult(chain, role, authType, verr).JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatTable:
		_, err := fmt.Fprint(w, report.ChainTable(chain, verr))
		return err
	}

	_, err := fmt.Fprint(w, report.Summary(chain, role, verr))
	return err
}
