// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package keystore

import (
	"crypto"
	"crypto/x509"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/trust"
	x509certs "github.com/H0llyW00dzZ/x509-trust-manager/src/internal/x509/certs"
)

var (
	// ErrEmptyAlias indicates that an entry was stored without an alias.
	ErrEmptyAlias = errors.New("keystore: alias must not be empty")

	// ErrNilCertificate indicates that a certificate entry was stored without a certificate.
	ErrNilCertificate = errors.New("keystore: certificate must not be nil")

	// ErrNilKey indicates that a key entry was stored without a private key.
	ErrNilKey = errors.New("keystore: private key must not be nil")
)

// entry is either a trusted certificate entry or a key entry.
type entry struct {
	cert  *x509certs.Cert
	key   crypto.PrivateKey
	chain []*x509certs.Cert
}

func (e *entry) isKey() bool { return e.key != nil }

// KeyStore is an in-memory collection of trusted certificate entries and key
// entries addressed by alias.
//
// Aliases are reported in insertion order. Replacing an existing alias keeps
// its position.
type KeyStore struct {
	mu      sync.RWMutex
	aliases []string
	entries map[string]*entry
}

// New creates an empty KeyStore.
func New() *KeyStore {
	return &KeyStore{entries: make(map[string]*entry)}
}

// SetCertificateEntry stores cert as a trusted certificate under alias.
//
// Parameters:
//   - alias: Entry name; an existing entry with the same alias is replaced
//   - cert: Trusted certificate
//
// Returns:
//   - error: [ErrEmptyAlias] or [ErrNilCertificate]
//
// Thread Safety: Safe for concurrent use.
func (ks *KeyStore) SetCertificateEntry(alias string, cert *x509.Certificate) error {
	if alias == "" {
		return ErrEmptyAlias
	}
	if cert == nil {
		return ErrNilCertificate
	}

	ks.put(alias, &entry{cert: x509certs.Wrap(cert)})
	return nil
}

// SetKeyEntry stores key together with its certificate chain under alias.
// chain[0] is the certificate of key; the chain may be empty.
//
// Thread Safety: Safe for concurrent use.
func (ks *KeyStore) SetKeyEntry(alias string, key crypto.PrivateKey, chain []*x509.Certificate) error {
	if alias == "" {
		return ErrEmptyAlias
	}
	if key == nil {
		return ErrNilKey
	}

	wrapped := make([]*x509certs.Cert, 0, len(chain))
	for i, c := range chain {
		if c == nil {
			return fmt.Errorf("keystore: chain certificate %d of %q is nil", i, alias)
		}
		wrapped = append(wrapped, x509certs.Wrap(c))
	}

	ks.put(alias, &entry{key: key, chain: wrapped})
	return nil
}

func (ks *KeyStore) put(alias string, e *entry) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	if _, ok := ks.entries[alias]; !ok {
		ks.aliases = append(ks.aliases, alias)
	}
	ks.entries[alias] = e
}

// DeleteEntry removes alias and reports whether it existed.
func (ks *KeyStore) DeleteEntry(alias string) bool {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	if _, ok := ks.entries[alias]; !ok {
		return false
	}
	delete(ks.entries, alias)
	ks.aliases = slices.DeleteFunc(ks.aliases, func(a string) bool { return a == alias })
	return true
}

// ContainsAlias reports whether alias names an entry.
func (ks *KeyStore) ContainsAlias(alias string) bool {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	_, ok := ks.entries[alias]
	return ok
}

// Size returns the number of entries.
func (ks *KeyStore) Size() int {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	return len(ks.entries)
}

// Key returns the private key of a key entry.
func (ks *KeyStore) Key(alias string) (crypto.PrivateKey, bool) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	e, ok := ks.entries[alias]
	if !ok || !e.isKey() {
		return nil, false
	}
	return e.key, true
}

// Aliases returns a copy of every alias in insertion order.
func (ks *KeyStore) Aliases() ([]string, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	return slices.Clone(ks.aliases), nil
}

// IsKeyEntry reports whether alias names a key entry. Unknown aliases are
// not key entries.
func (ks *KeyStore) IsKeyEntry(alias string) (bool, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	e, ok := ks.entries[alias]
	return ok && e.isKey(), nil
}

// CertificateChain returns the chain of a key entry, or nil for any other alias.
func (ks *KeyStore) CertificateChain(alias string) ([]trust.Certificate, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	e, ok := ks.entries[alias]
	if !ok || !e.isKey() || len(e.chain) == 0 {
		return nil, nil
	}

	chain := make([]trust.Certificate, len(e.chain))
	for i, c := range e.chain {
		chain[i] = c
	}
	return chain, nil
}

// Certificate returns the certificate of a trusted certificate entry, or the
// first chain certificate of a key entry. It returns nil for unknown aliases.
func (ks *KeyStore) Certificate(alias string) (trust.Certificate, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	e, ok := ks.entries[alias]
	if !ok {
		return nil, nil
	}

	if e.isKey() {
		if len(e.chain) == 0 {
			return nil, nil
		}
		return e.chain[0], nil
	}

	return e.cert, nil
}

var _ trust.TrustStore = (*KeyStore)(nil)
