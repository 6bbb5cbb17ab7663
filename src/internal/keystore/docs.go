// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package keystore provides an in-memory trust store with deterministic alias
// order, together with loaders for the common on-disk formats:
//
//   - PEM and DER certificates and bundles (.pem, .crt, .cer, .der)
//   - PKCS#7 certificate bundles (.p7b, .p7c) via [cfssl]
//   - PKCS#12 trust stores and key stores (.p12, .pfx) via [go-pkcs12]
//   - directories containing any of the above
//
// [KeyStore] implements [trust.TrustStore] and is safe for concurrent use.
//
// [cfssl]: https://github.com/cloudflare/cfssl
// [go-pkcs12]: https://pkg.go.dev/software.sslmate.com/src/go-pkcs12
// [trust.TrustStore]: https://pkg.go.dev/github.com/H0llyW00dzZ/x509-trust-manager/src/internal/trust#TrustStore
package keystore
