// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package trust

import "fmt"

// Certificate is the view of a certificate consumed by the trust core.
// The core never parses certificate bytes itself.
type Certificate interface {
	// Encoded returns the DER encoding, or nil if it is unavailable.
	Encoded() []byte
	// SubjectName returns the subject distinguished name, used for diagnostics only.
	SubjectName() string
	// BasicConstraints returns a non-negative value when the certificate
	// asserts CA capability and a negative value otherwise.
	BasicConstraints() int
}

// TrustStore is a read-only keyed collection of trusted certificate entries
// and key entries.
//
// Implementations must be safe for concurrent reads. A nil certificate or an
// empty chain together with a nil error means the entry holds none.
type TrustStore interface {
	// Aliases returns every alias in a deterministic order.
	Aliases() ([]string, error)
	// IsKeyEntry reports whether alias names a private key entry.
	IsKeyEntry(alias string) (bool, error)
	// CertificateChain returns the certificate chain of a key entry.
	CertificateChain(alias string) ([]Certificate, error)
	// Certificate returns the certificate of a trusted certificate entry.
	Certificate(alias string) (Certificate, error)
}

// ResolveCertificate returns the representative certificate of alias:
// the first certificate of a key entry's chain, or the entry's own
// certificate otherwise. It returns nil without error when the entry holds
// no certificate.
func ResolveCertificate(store TrustStore, alias string) (Certificate, error) {
	isKey, err := store.IsKeyEntry(alias)
	if err != nil {
		return nil, err
	}

	if isKey {
		chain, err := store.CertificateChain(alias)
		if err != nil {
			return nil, err
		}
		if len(chain) == 0 {
			return nil, nil
		}
		return chain[0], nil
	}

	return store.Certificate(alias)
}

// TrustedCertificates returns the CA-capable certificates of store, in alias
// order. It selects the same certificates as [AcceptedIssuers] but reports
// store errors, which makes it suitable for seeding an [Engine].
func TrustedCertificates(store TrustStore) ([]Certificate, error) {
	aliases, err := store.Aliases()
	if err != nil {
		return nil, fmt.Errorf("trust: failed to list aliases: %w", err)
	}

	var certs []Certificate
	for _, alias := range aliases {
		cert, err := ResolveCertificate(store, alias)
		if err != nil {
			return nil, fmt.Errorf("trust: failed to resolve alias %q: %w", alias, err)
		}
		if cert != nil && cert.BasicConstraints() >= 0 {
			certs = append(certs, cert)
		}
	}

	return certs, nil
}
