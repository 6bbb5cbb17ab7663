// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package trustmanager

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/trust"
)

// VerifyPeerCertificate returns a callback for
// [tls.Config.VerifyPeerCertificate] that checks the raw peer chain for role.
//
// When authType is empty the public key algorithm of the leaf is used.
func (tm *TrustManager) VerifyPeerCertificate(role Role, authType string) func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		chain := make([]*x509.Certificate, 0, len(rawCerts))
		for i, raw := range rawCerts {
			cert, err := x509.ParseCertificate(raw)
			if err != nil {
				return &CertificateError{
					Role:     role,
					AuthType: authType,
					Err: &trust.VerificationError{
						Kind:  trust.KindInvalidInput,
						Role:  role,
						Index: i,
						Err:   fmt.Errorf("failed to parse peer certificate: %w", err),
					},
				}
			}
			chain = append(chain, cert)
		}

		at := authType
		if at == "" && len(chain) > 0 {
			at = chain[0].PublicKeyAlgorithm.String()
		}

		return tm.check(chain, at, role)
	}
}

// ClientCAs returns a pool of the accepted issuers, suitable for
// [tls.Config.ClientCAs] so that clients know which issuers are accepted.
func (tm *TrustManager) ClientCAs() *x509.CertPool {
	pool := x509.NewCertPool()
	for _, cert := range tm.AcceptedIssuers() {
		pool.AddCert(cert)
	}
	return pool
}

// TLSConfig returns a TLS configuration whose peer verification is this
// trust manager.
//
// For [RoleClient] the configuration is meant for a server: it requires a
// client certificate and advertises the accepted issuers. For [RoleServer]
// it is meant for a client and replaces the default chain verification.
//
// The server host name is not checked against the leaf. Callers that need
// host name verification add a VerifyConnection callback.
func (tm *TrustManager) TLSConfig(role Role) *tls.Config {
	cfg := &tls.Config{
		MinVersion:            tls.VersionTLS12,
		VerifyPeerCertificate: tm.VerifyPeerCertificate(role, ""),
	}

	switch role {
	case RoleClient:
		cfg.ClientAuth = tls.RequireAnyClientCert
		cfg.ClientCAs = tm.ClientCAs()
	default:
		// Chain verification is done by VerifyPeerCertificate.
		cfg.InsecureSkipVerify = true
	}

	return cfg
}
