// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package trust

// AcceptedIssuers returns the CA-capable certificates of store, in alias order.
//
// Each alias resolves as in [ResolveCertificate]; a certificate is kept when
// its basic constraints are non-negative. Issuer enumeration is advisory, so
// any store error yields an empty result instead of an error. The returned
// slice is never nil and is not shared with the store.
func AcceptedIssuers(store TrustStore) []Certificate {
	issuers := []Certificate{}
	if store == nil {
		return issuers
	}

	aliases, err := store.Aliases()
	if err != nil {
		return []Certificate{}
	}

	for _, alias := range aliases {
		cert, err := ResolveCertificate(store, alias)
		if err != nil {
			return []Certificate{}
		}
		if cert == nil {
			continue
		}
		if cert.BasicConstraints() >= 0 {
			issuers = append(issuers, cert)
		}
	}

	return issuers
}
