// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certmanager

import (
	"bytes"
	"crypto/x509"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/trust"
	x509certs "github.com/H0llyW00dzZ/x509-trust-manager/src/internal/x509/certs"
)

var (
	// ErrReleased indicates that the engine was used after [CertManager.Release].
	ErrReleased = errors.New("certmanager: engine already released")

	// ErrUnknownIssuer indicates that no trusted certificate matches the issuer.
	ErrUnknownIssuer = errors.New("certmanager: no trusted certificate matches issuer")

	// ErrNotCA indicates that a certificate loaded as a CA does not assert CA capability.
	ErrNotCA = errors.New("certmanager: certificate is not a CA")

	// ErrOutsideValidity indicates that a certificate is expired or not yet valid.
	ErrOutsideValidity = errors.New("certmanager: certificate is outside its validity period")

	// ErrEmptyCertificate indicates that the DER input was empty.
	ErrEmptyCertificate = errors.New("certmanager: empty certificate")
)

// Option configures a [CertManager].
type Option func(*CertManager)

// WithValidityCheck rejects certificates outside their validity period at
// the time returned by now. A nil now uses [time.Now].
func WithValidityCheck(now func() time.Time) Option {
	return func(m *CertManager) {
		if now == nil {
			now = time.Now
		}
		m.now = now
	}
}

// CertManager is a single-use trust evaluation engine backed by crypto/x509.
//
// It implements [trust.Engine].
type CertManager struct {
	mu       sync.Mutex
	trusted  map[string][]*x509.Certificate
	size     int
	released bool
	now      func() time.Time
}

// New creates an empty CertManager.
//
// Parameters:
//   - opts: Optional configuration
//
// Returns:
//   - *CertManager: Engine with an empty trust set
func New(opts ...Option) *CertManager {
	m := &CertManager{trusted: make(map[string][]*x509.Certificate)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Factory returns a [trust.EngineFactory] creating a fresh CertManager per call.
func Factory(opts ...Option) trust.EngineFactory {
	return func() (trust.Engine, error) {
		return New(opts...), nil
	}
}

// LoadTrustedCAs seeds the trust set with every CA entry of store.
//
// Entries that do not assert CA capability are skipped. A store without any
// CA entry leaves the trust set empty, which is not an error.
//
// Returns:
//   - error: Error if the store cannot be enumerated or an entry cannot be parsed
func (m *CertManager) LoadTrustedCAs(store trust.TrustStore) error {
	if store == nil {
		return fmt.Errorf("certmanager: nil trust store")
	}

	certs, err := trust.TrustedCertificates(store)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return ErrReleased
	}

	for _, c := range certs {
		der := c.Encoded()
		if der == nil {
			return fmt.Errorf("certmanager: trusted certificate %q has no encoding", c.SubjectName())
		}

		cert, err := parse(der)
		if err != nil {
			return err
		}
		m.add(cert)
	}

	return nil
}

// Verify checks that der was signed by a certificate in the trust set.
//
// Returns:
//   - error: [ErrUnknownIssuer] when no trusted subject matches the issuer,
//     the signature error when none of the candidates signed it
//
// Thread Safety: Safe for concurrent use, although an engine is normally
// owned by a single verification call.
func (m *CertManager) Verify(der []byte) error {
	cert, err := parse(der)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return ErrReleased
	}

	if m.now != nil {
		if err := checkValidity(cert, m.now()); err != nil {
			return err
		}
	}

	candidates := m.trusted[string(cert.RawIssuer)]
	if len(candidates) == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownIssuer, cert.Issuer)
	}

	var lastErr error
	for _, ca := range candidates {
		if lastErr = cert.CheckSignatureFrom(ca); lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("certmanager: signature of %q not valid for issuer %q: %w", cert.Subject, cert.Issuer, lastErr)
}

// LoadCA adds der to the trust set.
//
// Version 3 certificates must assert CA capability through basic
// constraints; version 1 certificates are accepted as they are.
func (m *CertManager) LoadCA(der []byte) error {
	cert, err := parse(der)
	if err != nil {
		return err
	}

	if cert.Version >= 3 && x509certs.BasicConstraints(cert) < 0 {
		return fmt.Errorf("%w: %s", ErrNotCA, cert.Subject)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return ErrReleased
	}

	m.add(cert)
	return nil
}

// Release drops the trust set. Later calls return [ErrReleased].
// Release is idempotent.
func (m *CertManager) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.released = true
	m.trusted = nil
	m.size = 0
}

// Size returns the number of certificates in the trust set.
func (m *CertManager) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.size
}

// add must be called with mu held.
func (m *CertManager) add(cert *x509.Certificate) {
	key := string(cert.RawSubject)
	for _, existing := range m.trusted[key] {
		if bytes.Equal(existing.Raw, cert.Raw) {
			return
		}
	}
	m.trusted[key] = append(m.trusted[key], cert)
	m.size++
}

func parse(der []byte) (*x509.Certificate, error) {
	if len(der) == 0 {
		return nil, ErrEmptyCertificate
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("certmanager: failed to parse certificate: %w", err)
	}

	return cert, nil
}

func checkValidity(cert *x509.Certificate, now time.Time) error {
	if now.Before(cert.NotBefore) || now.After(cert.NotAfter) {
		return fmt.Errorf("%w: %s (valid %s to %s)", ErrOutsideValidity, cert.Subject,
			cert.NotBefore.UTC().Format(time.RFC3339), cert.NotAfter.UTC().Format(time.RFC3339))
	}
	return nil
}

var _ trust.Engine = (*CertManager)(nil)
