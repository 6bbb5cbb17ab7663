// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package testutil builds throwaway PKI hierarchies for tests.
package testutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Authority is a certificate together with the key that signs its children.
type Authority struct {
	Cert *x509.Certificate
	Key  *ecdsa.PrivateKey
}

// Options tweaks a certificate template before it is signed.
type Options struct {
	IsCA           bool
	MaxPathLen     int
	MaxPathLenZero bool
	// OmitBasicConstraints issues a v3 certificate without the extension.
	OmitBasicConstraints bool
	DNSNames             []string
	IPAddresses          []net.IP
	NotBefore            time.Time
	NotAfter             time.Time
}

// NewRoot returns a self-signed CA without a path length constraint.
func NewRoot(t testing.TB, cn string) *Authority {
	t.Helper()
	return issue(t, cn, nil, Options{IsCA: true, MaxPathLen: -1})
}

// Intermediate issues a subordinate CA signed by a.
func (a *Authority) Intermediate(t testing.TB, cn string) *Authority {
	t.Helper()
	return issue(t, cn, a, Options{IsCA: true, MaxPathLen: -1})
}

// Leaf issues an end-entity certificate signed by a.
func (a *Authority) Leaf(t testing.TB, cn string) *x509.Certificate {
	t.Helper()
	return issue(t, cn, a, Options{}).Cert
}

// Issue signs a certificate for cn with the given options.
func (a *Authority) Issue(t testing.TB, cn string, opts Options) *Authority {
	t.Helper()
	return issue(t, cn, a, opts)
}

// SelfSigned returns a self-signed certificate built from opts.
func SelfSigned(t testing.TB, cn string, opts Options) *Authority {
	t.Helper()
	return issue(t, cn, nil, opts)
}

// ServerLeaf issues a leaf usable for a TLS listener on the loopback interface.
func (a *Authority) ServerLeaf(t testing.TB, cn string) *Authority {
	t.Helper()
	return issue(t, cn, a, Options{
		DNSNames:    []string{"localhost"},
		IPAddresses: []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
	})
}

func issue(t testing.TB, cn string, parent *Authority, opts Options) *Authority {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err, "failed to generate key")

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	require.NoError(t, err, "failed to generate serial")

	notBefore := opts.NotBefore
	if notBefore.IsZero() {
		notBefore = time.Now().Add(-time.Hour)
	}
	notAfter := opts.NotAfter
	if notAfter.IsZero() {
		notAfter = time.Now().Add(24 * time.Hour)
	}

	template := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName:   cn,
			Organization: []string{"Trust Manager Tests"},
		},
		NotBefore:   notBefore,
		NotAfter:    notAfter,
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		DNSNames:    opts.DNSNames,
		IPAddresses: opts.IPAddresses,
	}

	if !opts.OmitBasicConstraints {
		template.BasicConstraintsValid = true
		template.IsCA = opts.IsCA
	}
	if opts.IsCA {
		template.KeyUsage |= x509.KeyUsageCertSign | x509.KeyUsageCRLSign
		template.MaxPathLen = opts.MaxPathLen
		template.MaxPathLenZero = opts.MaxPathLenZero
	}

	signer, signerKey := template, key
	if parent != nil {
		signer, signerKey = parent.Cert, parent.Key
	}

	der, err := x509.CreateCertificate(rand.Reader, template, signer, &key.PublicKey, signerKey)
	require.NoError(t, err, "failed to create certificate %q", cn)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err, "failed to parse certificate %q", cn)

	return &Authority{Cert: cert, Key: key}
}
