// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package trust_test

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/trust"
)

var errUnknownIssuer = errors.New("fake: unknown issuer")

// fakeCert issues by name: der is the name, issuer names the signing cert.
type fakeCert struct {
	name   string
	issuer string
	bc     int
	noDER  bool
}

func (c *fakeCert) Encoded() []byte {
	if c.noDER {
		return nil
	}
	return []byte(c.name)
}

func (c *fakeCert) SubjectName() string { return "CN=" + c.name }

func (c *fakeCert) BasicConstraints() int { return c.bc }

// entry is either a trusted certificate or a key entry.
type entry struct {
	cert  trust.Certificate
	chain []trust.Certificate
	key   bool
}

type fakeStore struct {
	aliases    []string
	entries    map[string]entry
	aliasesErr error
	entryErr   map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: map[string]entry{}, entryErr: map[string]error{}}
}

func (s *fakeStore) addCert(alias string, c trust.Certificate) *fakeStore {
	s.aliases = append(s.aliases, alias)
	s.entries[alias] = entry{cert: c}
	return s
}

func (s *fakeStore) addKey(alias string, chain ...trust.Certificate) *fakeStore {
	s.aliases = append(s.aliases, alias)
	s.entries[alias] = entry{chain: chain, key: true}
	return s
}

func (s *fakeStore) Aliases() ([]string, error) {
	if s.aliasesErr != nil {
		return nil, s.aliasesErr
	}
	return append([]string(nil), s.aliases...), nil
}

func (s *fakeStore) IsKeyEntry(alias string) (bool, error) {
	if err := s.entryErr[alias]; err != nil {
		return false, err
	}
	return s.entries[alias].key, nil
}

func (s *fakeStore) CertificateChain(alias string) ([]trust.Certificate, error) {
	e := s.entries[alias]
	if !e.key {
		return nil, nil
	}
	return e.chain, nil
}

func (s *fakeStore) Certificate(alias string) (trust.Certificate, error) {
	e := s.entries[alias]
	if e.key {
		if len(e.chain) == 0 {
			return nil, nil
		}
		return e.chain[0], nil
	}
	return e.cert, nil
}

// fakeEngine trusts certificates by name and knows every issuer relation
// through the registry it was created with.
type fakeEngine struct {
	registry map[string]string
	trusted  map[string]bool
	calls    *[]string
	mu       *sync.Mutex
	released *atomic.Int32

	loadErr   error
	loadCAErr error
}

func (e *fakeEngine) record(call string) {
	e.mu.Lock()
	*e.calls = append(*e.calls, call)
	e.mu.Unlock()
}

func (e *fakeEngine) LoadTrustedCAs(store trust.TrustStore) error {
	e.record("LoadTrustedCAs")
	if e.loadErr != nil {
		return e.loadErr
	}
	aliases, err := store.Aliases()
	if err != nil {
		return err
	}
	for _, alias := range aliases {
		cert, err := trust.ResolveCertificate(store, alias)
		if err != nil {
			return err
		}
		if cert != nil && cert.BasicConstraints() >= 0 {
			e.trusted[string(cert.Encoded())] = true
		}
	}
	return nil
}

func (e *fakeEngine) Verify(der []byte) error {
	e.record("Verify:" + string(der))
	if !e.trusted[e.registry[string(der)]] {
		return errUnknownIssuer
	}
	return nil
}

func (e *fakeEngine) LoadCA(der []byte) error {
	e.record("LoadCA:" + string(der))
	if e.loadCAErr != nil {
		return e.loadCAErr
	}
	e.trusted[string(der)] = true
	return nil
}

func (e *fakeEngine) Release() { e.released.Add(1) }

// engineHarness counts engines created and released across calls.
type engineHarness struct {
	registry  map[string]string
	created   atomic.Int32
	released  atomic.Int32
	mu        sync.Mutex
	calls     []string
	createErr error
	loadErr   error
	loadCAErr error
}

func newHarness(certs ...*fakeCert) *engineHarness {
	h := &engineHarness{registry: map[string]string{}}
	for _, c := range certs {
		h.registry[c.name] = c.issuer
	}
	return h
}

func (h *engineHarness) factory() trust.EngineFactory {
	return func() (trust.Engine, error) {
		if h.createErr != nil {
			return nil, h.createErr
		}
		h.created.Add(1)
		return &fakeEngine{
			registry:  h.registry,
			trusted:   map[string]bool{},
			calls:     &h.calls,
			mu:        &h.mu,
			released:  &h.released,
			loadErr:   h.loadErr,
			loadCAErr: h.loadCAErr,
		}, nil
	}
}

func (h *engineHarness) recorded() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.calls...)
}
