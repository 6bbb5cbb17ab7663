// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package trust

// Engine is a single-use trust evaluation handle. It holds the set of
// certificates trusted so far during one chain walk.
//
// An Engine is owned by exactly one verification call and is never shared
// between goroutines.
type Engine interface {
	// LoadTrustedCAs seeds the trust set with the CA certificates of store.
	LoadTrustedCAs(store TrustStore) error
	// Verify checks the DER encoded certificate against the current trust set.
	Verify(der []byte) error
	// LoadCA adds the DER encoded certificate to the trust set.
	LoadCA(der []byte) error
	// Release frees all resources held by the engine. It is idempotent.
	Release()
}

// EngineFactory creates a fresh Engine.
type EngineFactory func() (Engine, error)
