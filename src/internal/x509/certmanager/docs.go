// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package certmanager provides the verification engine used by the trust
// manager to walk a peer chain.
//
// A [CertManager] holds an ephemeral trust set indexed by subject. It is
// seeded with the CA entries of a trust store, verifies a certificate by
// checking its signature against a trusted certificate whose subject matches
// the certificate's issuer, and grows only through [CertManager.LoadCA].
//
// Example usage:
//
//	verifier := &trust.Verifier{NewEngine: certmanager.Factory()}
//	err := verifier.VerifyChain(chain, store, trust.RoleServer)
//
// Validity periods are not checked unless [WithValidityCheck] is given.
package certmanager
