// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package trustmanager decides whether a peer certificate chain presented
// during a TLS handshake is trusted by a caller-supplied trust store.
//
// A chain is ordered leaf first. Trust is extended one certificate at a
// time: starting from the certificate closest to the trust store, each
// intermediate must verify against what is already trusted before it
// becomes trusted itself, and the leaf is verified last. No alternative
// paths are built and revocation is not checked.
//
// Example usage:
//
//	store, err := keystore.Load(password, "/etc/ssl/private-ca.pem")
//	if err != nil {
//		return err
//	}
//
//	tm := trustmanager.New(store)
//	if err := tm.CheckServerTrusted(chain, "ECDHE_RSA"); err != nil {
//		var verr *trust.VerificationError
//		if errors.As(err, &verr) {
//			log.Printf("rejected at index %d: %s", verr.Index, verr.Kind)
//		}
//	}
//
// The same decision can be wired into crypto/tls with [TrustManager.TLSConfig].
package trustmanager
