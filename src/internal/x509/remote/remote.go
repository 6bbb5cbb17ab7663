// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509remote retrieves the certificate chain a TLS server presents
// during the handshake.
package x509remote

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
)

// DefaultPort is used when an address carries no port.
const DefaultPort = "443"

// ErrNoPeerCertificates indicates that the server presented no certificates.
var ErrNoPeerCertificates = errors.New("x509remote: no certificates received from server")

// Result describes a completed or attempted handshake.
type Result struct {
	// Address is the dialed host:port.
	Address string
	// Chain is the chain presented by the server, leaf first. It is
	// populated even when peer verification rejected the chain.
	Chain []*x509.Certificate
	// Version and CipherSuite are set only for a completed handshake.
	Version     uint16
	CipherSuite uint16
}

// NormalizeAddress returns address with [DefaultPort] appended when it has no port.
func NormalizeAddress(address string) (host, hostport string) {
	if h, _, err := net.SplitHostPort(address); err == nil {
		return h, address
	}
	return address, net.JoinHostPort(address, DefaultPort)
}

// Probe performs a TLS handshake with address and returns the peer chain.
//
// The handshake is governed by config, whose VerifyPeerCertificate callback
// decides whether the chain is trusted. A nil config accepts any chain. The
// chain is captured before the callback runs, so it is returned together
// with the handshake error when verification fails.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - address: host or host:port
//   - config: TLS client configuration; cloned, never modified
//
// Returns:
//   - *Result: Handshake details, never nil
//   - error: Error if dialing or the handshake fails
func Probe(ctx context.Context, address string, config *tls.Config) (*Result, error) {
	host, hostport := NormalizeAddress(address)
	result := &Result{Address: hostport}

	cfg := &tls.Config{InsecureSkipVerify: true}
	if config != nil {
		cfg = config.Clone()
	}
	if cfg.ServerName == "" {
		cfg.ServerName = host
	}

	verify := cfg.VerifyPeerCertificate
	cfg.VerifyPeerCertificate = func(rawCerts [][]byte, verifiedChains [][]*x509.Certificate) error {
		for _, raw := range rawCerts {
			if cert, err := x509.ParseCertificate(raw); err == nil {
				result.Chain = append(result.Chain, cert)
			}
		}
		if verify == nil {
			return nil
		}
		return verify(rawCerts, verifiedChains)
	}

	dialer := &tls.Dialer{Config: cfg}
	conn, err := dialer.DialContext(ctx, "tcp", hostport)
	if err != nil {
		return result, fmt.Errorf("failed to connect to %s: %w", hostport, err)
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return result, ErrNoPeerCertificates
	}

	result.Chain = state.PeerCertificates
	result.Version = state.Version
	result.CipherSuite = state.CipherSuite

	return result, nil
}
