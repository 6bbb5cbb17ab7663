// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report_test

import (
	"crypto/x509"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/report"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/testutil"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/trust"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatuses(t *testing.T) {
	tests := []struct {
		name string
		n    int
		err  error
		want []string
	}{
		{
			name: "Trusted",
			n:    3,
			want: []string{report.StatusTrusted, report.StatusTrusted, report.StatusTrusted},
		},
		{
			name: "Intermediate Rejected",
			n:    3,
			err:  &trust.VerificationError{Kind: trust.KindIntermediateVerificationFailed, Index: 1},
			want: []string{report.StatusNotEvaluated, report.StatusRejected, report.StatusTrusted},
		},
		{
			name: "Leaf Rejected",
			n:    2,
			err:  &trust.VerificationError{Kind: trust.KindLeafVerificationFailed, Index: 0},
			want: []string{report.StatusRejected, report.StatusTrusted},
		},
		{
			name: "Store Failure",
			n:    2,
			err:  &trust.VerificationError{Kind: trust.KindTrustStoreLoadFailed, Index: -1},
			want: []string{report.StatusNotEvaluated, report.StatusNotEvaluated},
		},
		{
			name: "Foreign Error",
			n:    1,
			err:  errors.New("boom"),
			want: []string{report.StatusNotEvaluated},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, report.Statuses(tt.n, tt.err))
		})
	}
}

func TestRender(t *testing.T) {
	root := testutil.NewRoot(t, "Report Root CA")
	inter := root.Intermediate(t, "Report Intermediate CA")
	leaf := inter.Leaf(t, "report.example.com")
	chain := []*x509.Certificate{leaf, inter.Cert, root.Cert}
	rejected := &trust.VerificationError{Kind: trust.KindIntermediateVerificationFailed, Index: 1, Subject: inter.Cert.Subject.String()}

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "ASCII Tree",
			testFunc: func(t *testing.T) {
				tree := report.ChainTree(chain, nil)
				lines := strings.Split(strings.TrimSpace(tree), "\n")
				require.Len(t, lines, 3)
				assert.Equal(t, "[✓] Report Root CA (Root CA Certificate)", lines[0])
				assert.Equal(t, "└── [✓] Report Intermediate CA (Intermediate CA Certificate)", lines[1])
				assert.Equal(t, "    └── [✓] report.example.com (End-Entity Certificate)", lines[2])
			},
		},
		{
			name: "ASCII Tree Rejected",
			testFunc: func(t *testing.T) {
				tree := report.ChainTree(chain, rejected)
				assert.Contains(t, tree, "[✗] Report Intermediate CA")
				assert.Contains(t, tree, "[·] report.example.com")
			},
		},
		{
			name: "Summary",
			testFunc: func(t *testing.T) {
				trusted := report.Summary(chain, trust.RoleServer, nil)
				assert.True(t, strings.HasPrefix(trusted, report.ChainTree(chain, nil)))
				assert.True(t, strings.HasSuffix(trusted, "\nChain trusted (server, 3 certificates)\n"))

				untrusted := report.Summary(chain, trust.RoleClient, rejected)
				assert.Contains(t, untrusted, "[✗] Report Intermediate CA")
				assert.Contains(t, untrusted, "Chain not trusted: "+rejected.Error())
			},
		},
		{
			name: "Empty Chain",
			testFunc: func(t *testing.T) {
				assert.Equal(t, "No certificates in chain", report.ChainTree(nil, nil))
				assert.Equal(t, "No certificates to display", report.ChainTable(nil, nil))
				assert.Equal(t, "No accepted issuers", report.IssuersTable(nil))
			},
		},
		{
			name: "Chain Table",
			testFunc: func(t *testing.T) {
				table := report.ChainTable(chain, rejected)
				assert.Contains(t, strings.ToLower(table), "subject")
				assert.Contains(t, table, "report.example.com")
				assert.Contains(t, table, "256-bit ECDSA")
				assert.Contains(t, table, report.StatusRejected)
				assert.Contains(t, table, report.StatusNotEvaluated)
			},
		},
		{
			name: "Issuers Table",
			testFunc: func(t *testing.T) {
				table := report.IssuersTable([]*x509.Certificate{root.Cert})
				assert.Contains(t, strings.ToLower(table), "path length")
				assert.Contains(t, table, "Report Root CA")
				assert.Contains(t, table, "unlimited")
			},
		},
		{
			name: "Result JSON",
			testFunc: func(t *testing.T) {
				data, err := report.NewResult(chain, trust.RoleClient, "ECDSA", rejected).JSON()
				require.NoError(t, err)

				var got report.Result
				require.NoError(t, json.Unmarshal(data, &got))
				assert.False(t, got.Trusted)
				assert.Equal(t, "client", got.Role)
				assert.Equal(t, "ECDSA", got.AuthType)
				assert.Equal(t, 3, got.ChainLength)
				require.NotNil(t, got.Failure)
				assert.Equal(t, "IntermediateVerificationFailed", got.Failure.Kind)
				require.NotNil(t, got.Failure.Index)
				assert.Equal(t, 1, *got.Failure.Index)
				require.Len(t, got.Certificates, 3)
				assert.Equal(t, report.StatusRejected, got.Certificates[1].Status)
				assert.Equal(t, "ECDSA", got.Certificates[0].PublicKeyAlgorithm)
				assert.Len(t, got.Relationships, 2)
			},
		},
		{
			name: "Result JSON Trusted",
			testFunc: func(t *testing.T) {
				data, err := report.NewResult(chain[:1], trust.RoleServer, "", nil).JSON()
				require.NoError(t, err)
				assert.NotContains(t, string(data), `"failure"`)
				assert.Contains(t, string(data), `"relationships": []`)
			},
		},
		{
			name: "Issuers JSON",
			testFunc: func(t *testing.T) {
				data, err := report.IssuersJSON([]*x509.Certificate{root.Cert, inter.Cert})
				require.NoError(t, err)

				var got []report.IssuerData
				require.NoError(t, json.Unmarshal(data, &got))
				require.Len(t, got, 2)
				assert.Equal(t, root.Cert.Subject.String(), got[0].Subject)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}
