// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"math"
)

// NotCA is the basic constraints value of a certificate that does not
// assert CA capability.
const NotCA = -1

// UnlimitedPathLen is the basic constraints value of a CA certificate
// without a path length constraint.
const UnlimitedPathLen = math.MaxInt32

// Cert is a read-only view of a parsed certificate exposing the encoded
// form together with the attributes extracted for trust decisions.
//
// A nil *Cert is valid and reports no encoding.
type Cert struct{ cert *x509.Certificate }

// Wrap returns a view over cert, or nil when cert is nil.
func Wrap(cert *x509.Certificate) *Cert {
	if cert == nil {
		return nil
	}
	return &Cert{cert: cert}
}

// Encoded returns the DER encoding of the certificate, or nil when the
// certificate carries no encoding.
func (c *Cert) Encoded() []byte {
	if c == nil || c.cert == nil || len(c.cert.Raw) == 0 {
		return nil
	}
	return c.cert.Raw
}

// SubjectName returns the distinguished name of the subject in RFC 2253 form.
func (c *Cert) SubjectName() string {
	if c == nil || c.cert == nil {
		return ""
	}
	return c.cert.Subject.String()
}

// BasicConstraints returns the CA path length constraint of the certificate.
// See [BasicConstraints].
func (c *Cert) BasicConstraints() int {
	if c == nil {
		return NotCA
	}
	return BasicConstraints(c.cert)
}

// X509 returns the underlying certificate.
func (c *Cert) X509() *x509.Certificate {
	if c == nil {
		return nil
	}
	return c.cert
}

// BasicConstraints reports the CA capability of cert:
//   - [NotCA] when the basic constraints extension is absent or cA is false
//   - the path length constraint when one is present (zero included)
//   - [UnlimitedPathLen] for a CA without a path length constraint
func BasicConstraints(cert *x509.Certificate) int {
	if cert == nil || !cert.BasicConstraintsValid || !cert.IsCA {
		return NotCA
	}
	if cert.MaxPathLen > 0 || (cert.MaxPathLen == 0 && cert.MaxPathLenZero) {
		return cert.MaxPathLen
	}
	return UnlimitedPathLen
}
