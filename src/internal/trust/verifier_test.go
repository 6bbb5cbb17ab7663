// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package trust_test

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/trust"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pki struct {
	root, inter, leaf, direct, bogus, orphan *fakeCert
}

func newPKI() pki {
	return pki{
		root:   &fakeCert{name: "root", issuer: "root", bc: 1},
		inter:  &fakeCert{name: "inter", issuer: "root", bc: 0},
		leaf:   &fakeCert{name: "leaf", issuer: "inter", bc: -1},
		direct: &fakeCert{name: "direct", issuer: "root", bc: -1},
		bogus:  &fakeCert{name: "bogus", issuer: "nobody", bc: 0},
		orphan: &fakeCert{name: "orphan", issuer: "inter", bc: -1},
	}
}

func (p pki) harness() *engineHarness {
	return newHarness(p.root, p.inter, p.leaf, p.direct, p.bogus, p.orphan)
}

func (p pki) store() *fakeStore {
	return newFakeStore().addCert("root", p.root)
}

func requireKind(t *testing.T, err error, kind trust.Kind) *trust.VerificationError {
	t.Helper()
	require.Error(t, err)
	var verr *trust.VerificationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, kind, verr.Kind, "unexpected kind: %v", err)
	return verr
}

func TestVerifyChain(t *testing.T) {
	p := newPKI()

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Full Chain Including Root",
			testFunc: func(t *testing.T) {
				h := p.harness()
				v := &trust.Verifier{NewEngine: h.factory()}

				err := v.VerifyChain([]trust.Certificate{p.leaf, p.inter, p.root}, p.store(), trust.RoleServer)
				require.NoError(t, err)

				assert.Equal(t, []string{
					"LoadTrustedCAs",
					"Verify:root", "LoadCA:root",
					"Verify:inter", "LoadCA:inter",
					"Verify:leaf",
				}, h.recorded())
				assert.EqualValues(t, 1, h.created.Load())
				assert.EqualValues(t, 1, h.released.Load())
			},
		},
		{
			name: "Chain Without Root",
			testFunc: func(t *testing.T) {
				h := p.harness()
				v := &trust.Verifier{NewEngine: h.factory()}

				err := v.VerifyChain([]trust.Certificate{p.leaf, p.inter}, p.store(), trust.RoleClient)
				assert.NoError(t, err)
			},
		},
		{
			name: "Leaf Issued By Store CA",
			testFunc: func(t *testing.T) {
				h := p.harness()
				v := &trust.Verifier{NewEngine: h.factory()}

				err := v.VerifyChain([]trust.Certificate{p.direct}, p.store(), trust.RoleServer)
				require.NoError(t, err)
				assert.Equal(t, []string{"LoadTrustedCAs", "Verify:direct"}, h.recorded())
			},
		},
		{
			name: "Bogus Intermediate Stops Walk",
			testFunc: func(t *testing.T) {
				h := p.harness()
				v := &trust.Verifier{NewEngine: h.factory()}

				err := v.VerifyChain([]trust.Certificate{p.leaf, p.bogus}, p.store(), trust.RoleServer)
				verr := requireKind(t, err, trust.KindIntermediateVerificationFailed)

				assert.Equal(t, 1, verr.Index)
				assert.Equal(t, "CN=bogus", verr.Subject)
				assert.ErrorIs(t, err, trust.ErrIntermediateVerificationFailed)
				assert.ErrorIs(t, err, errUnknownIssuer)
				assert.NotContains(t, h.recorded(), "Verify:leaf")
				assert.EqualValues(t, 1, h.released.Load())
			},
		},
		{
			name: "Outermost Failure Reported First",
			testFunc: func(t *testing.T) {
				h := p.harness()
				v := &trust.Verifier{NewEngine: h.factory()}

				// index 2 fails before the (otherwise valid) index 1 is looked at.
				err := v.VerifyChain([]trust.Certificate{p.leaf, p.inter, p.bogus}, newFakeStore(), trust.RoleServer)
				verr := requireKind(t, err, trust.KindIntermediateVerificationFailed)
				assert.Equal(t, 2, verr.Index)
				assert.NotContains(t, h.recorded(), "Verify:inter")
			},
		},
		{
			name: "Untrusted Leaf",
			testFunc: func(t *testing.T) {
				h := p.harness()
				v := &trust.Verifier{NewEngine: h.factory()}

				err := v.VerifyChain([]trust.Certificate{p.orphan}, p.store(), trust.RoleClient)
				verr := requireKind(t, err, trust.KindLeafVerificationFailed)
				assert.Equal(t, 0, verr.Index)
				assert.Equal(t, "CN=orphan", verr.Subject)
				assert.Equal(t, trust.RoleClient, verr.Role)
				assert.EqualValues(t, 1, h.released.Load())
			},
		},
		{
			name: "Empty Chain",
			testFunc: func(t *testing.T) {
				h := p.harness()
				v := &trust.Verifier{NewEngine: h.factory()}

				err := v.VerifyChain(nil, p.store(), trust.RoleServer)
				requireKind(t, err, trust.KindInvalidInput)
				assert.ErrorIs(t, err, trust.ErrInvalidInput)
				assert.EqualValues(t, 0, h.created.Load(), "no engine may be created for invalid input")
			},
		},
		{
			name: "Nil Store",
			testFunc: func(t *testing.T) {
				h := p.harness()
				v := &trust.Verifier{NewEngine: h.factory()}

				err := v.VerifyChain([]trust.Certificate{p.leaf}, nil, trust.RoleServer)
				requireKind(t, err, trust.KindInvalidInput)
				assert.EqualValues(t, 0, h.created.Load())
			},
		},
		{
			name: "Nil Factory",
			testFunc: func(t *testing.T) {
				v := &trust.Verifier{}
				err := v.VerifyChain([]trust.Certificate{p.leaf}, p.store(), trust.RoleServer)
				requireKind(t, err, trust.KindEngineUnavailable)
			},
		},
		{
			name: "Factory Error",
			testFunc: func(t *testing.T) {
				h := p.harness()
				h.createErr = errors.New("out of handles")
				v := &trust.Verifier{NewEngine: h.factory()}

				err := v.VerifyChain([]trust.Certificate{p.leaf}, p.store(), trust.RoleServer)
				requireKind(t, err, trust.KindEngineUnavailable)
				assert.ErrorIs(t, err, h.createErr)
				assert.EqualValues(t, 0, h.released.Load())
			},
		},
		{
			name: "Trust Store Load Failure",
			testFunc: func(t *testing.T) {
				h := p.harness()
				h.loadErr = errors.New("corrupt store")
				v := &trust.Verifier{NewEngine: h.factory()}

				err := v.VerifyChain([]trust.Certificate{p.leaf, p.inter}, p.store(), trust.RoleServer)
				verr := requireKind(t, err, trust.KindTrustStoreLoadFailed)
				assert.Equal(t, -1, verr.Index)
				assert.Equal(t, []string{"LoadTrustedCAs"}, h.recorded())
				assert.EqualValues(t, 1, h.released.Load())
			},
		},
		{
			name: "Intermediate Load Failure",
			testFunc: func(t *testing.T) {
				h := p.harness()
				h.loadCAErr = errors.New("not a CA")
				v := &trust.Verifier{NewEngine: h.factory()}

				err := v.VerifyChain([]trust.Certificate{p.leaf, p.inter}, p.store(), trust.RoleServer)
				verr := requireKind(t, err, trust.KindIntermediateLoadFailed)
				assert.Equal(t, 1, verr.Index)
				assert.ErrorIs(t, err, h.loadCAErr)
				assert.NotContains(t, h.recorded(), "Verify:leaf")
				assert.EqualValues(t, 1, h.released.Load())
			},
		},
		{
			name: "Intermediate Without Encoding",
			testFunc: func(t *testing.T) {
				h := p.harness()
				v := &trust.Verifier{NewEngine: h.factory()}
				broken := &fakeCert{name: "inter", issuer: "root", bc: 0, noDER: true}

				err := v.VerifyChain([]trust.Certificate{p.leaf, broken}, p.store(), trust.RoleServer)
				verr := requireKind(t, err, trust.KindIntermediateVerificationFailed)
				assert.Equal(t, 1, verr.Index)
				assert.ErrorIs(t, err, trust.ErrNoEncoding)
			},
		},
		{
			name: "Nil Leaf Element",
			testFunc: func(t *testing.T) {
				h := p.harness()
				v := &trust.Verifier{NewEngine: h.factory()}

				err := v.VerifyChain([]trust.Certificate{nil, p.inter}, p.store(), trust.RoleServer)
				verr := requireKind(t, err, trust.KindLeafVerificationFailed)
				assert.Equal(t, 0, verr.Index)
				assert.ErrorIs(t, err, trust.ErrNoEncoding)
				assert.EqualValues(t, 1, h.released.Load())
			},
		},
		{
			name: "Progress Logging",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				h := p.harness()
				v := &trust.Verifier{NewEngine: h.factory(), Logger: logger.NewJSONLogger(&buf, false)}

				require.NoError(t, v.VerifyChain([]trust.Certificate{p.leaf, p.inter}, p.store(), trust.RoleServer))

				out := buf.String()
				assert.Contains(t, out, "Verifying intermediate chain cert: CN=inter")
				assert.Contains(t, out, "Loaded intermediate CA: CN=inter")
				assert.Contains(t, out, "Verified peer certificate: CN=leaf")
			},
		},
		{
			name: "Concurrent Calls Agree",
			testFunc: func(t *testing.T) {
				h := p.harness()
				v := &trust.Verifier{NewEngine: h.factory()}
				store := p.store()

				const n = 16
				var wg sync.WaitGroup
				results := make([]error, 2*n)
				for i := range n {
					wg.Add(2)
					go func(i int) {
						defer wg.Done()
						results[i] = v.VerifyChain([]trust.Certificate{p.leaf, p.inter, p.root}, store, trust.RoleServer)
					}(i)
					go func(i int) {
						defer wg.Done()
						results[n+i] = v.VerifyChain([]trust.Certificate{p.leaf, p.bogus}, store, trust.RoleClient)
					}(i)
				}
				wg.Wait()

				for i := range n {
					assert.NoError(t, results[i])
					assert.Equal(t, trust.KindIntermediateVerificationFailed, trust.KindOf(results[n+i]))
				}
				assert.EqualValues(t, 2*n, h.created.Load())
				assert.Equal(t, h.created.Load(), h.released.Load())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}

func TestVerificationError(t *testing.T) {
	cause := errors.New("signature mismatch")

	tests := []struct {
		name    string
		err     *trust.VerificationError
		message string
		is      error
	}{
		{
			name:    "Without Index",
			err:     &trust.VerificationError{Kind: trust.KindInvalidInput, Index: -1},
			message: "trust: invalid input",
			is:      trust.ErrInvalidInput,
		},
		{
			name:    "Index And Subject",
			err:     &trust.VerificationError{Kind: trust.KindIntermediateVerificationFailed, Index: 1, Subject: "CN=Intermediate", Err: cause},
			message: "trust: failed to verify intermediate chain cert (index 1, subject CN=Intermediate): signature mismatch",
			is:      trust.ErrIntermediateVerificationFailed,
		},
		{
			name:    "Index Only",
			err:     &trust.VerificationError{Kind: trust.KindIntermediateLoadFailed, Index: 2},
			message: "trust: failed to load intermediate CA certificate as trusted root (index 2)",
			is:      trust.ErrIntermediateLoadFailed,
		},
		{
			name:    "Leaf",
			err:     &trust.VerificationError{Kind: trust.KindLeafVerificationFailed, Index: 0, Subject: "CN=leaf"},
			message: "trust: failed to verify peer certificate (index 0, subject CN=leaf)",
			is:      trust.ErrLeafVerificationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			assert.ErrorIs(t, tt.err, tt.is)
			assert.NotErrorIs(t, tt.err, trust.ErrEngineUnavailable)
			assert.Equal(t, tt.err.Kind, trust.KindOf(tt.err))
		})
	}

	t.Run("KindOf Foreign Error", func(t *testing.T) {
		assert.Equal(t, trust.Kind(0), trust.KindOf(cause))
		assert.Equal(t, trust.Kind(0), trust.KindOf(nil))
	})

	t.Run("Kind String", func(t *testing.T) {
		assert.Equal(t, "IntermediateVerificationFailed", trust.KindIntermediateVerificationFailed.String())
		assert.Equal(t, "EngineUnavailable", trust.KindEngineUnavailable.String())
		assert.Equal(t, "Kind(42)", trust.Kind(42).String())
	})
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    trust.Role
		wantErr bool
	}{
		{in: "server", want: trust.RoleServer},
		{in: "Client", want: trust.RoleClient},
		{in: " CLIENT ", want: trust.RoleClient},
		{in: "peer", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := trust.ParseRole(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.ToLower(strings.TrimSpace(tt.in)), got.String())
		})
	}
}
