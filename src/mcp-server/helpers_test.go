// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"crypto/tls"
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/config"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/bootstrap"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/testutil"
	x509certs "github.com/H0llyW00dzZ/x509-trust-manager/src/internal/x509/certs"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

// testPKI is a small hierarchy trusted by the runtime returned from newTestRuntime.
type testPKI struct {
	root     *testutil.Authority
	inter    *testutil.Authority
	leaf     *testutil.Authority
	stranger *testutil.Authority
}

// chainPEM returns the PEM encoding of certs.
func chainPEM(certs ...*x509.Certificate) string {
	return string(x509certs.New().EncodeMultiplePEM(certs))
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// newTestRuntime builds a runtime whose trust store holds a single root CA.
func newTestRuntime(t *testing.T) (*bootstrap.Runtime, testPKI) {
	t.Helper()

	root := testutil.NewRoot(t, "MCP Root CA")
	inter := root.Intermediate(t, "MCP Intermediate CA")
	pki := testPKI{
		root:     root,
		inter:    inter,
		leaf:     inter.ServerLeaf(t, "mcp.example.com"),
		stranger: testutil.NewRoot(t, "MCP Other Root CA").ServerLeaf(t, "stranger.example.com"),
	}

	cfg := config.Default()
	cfg.TrustStore.Paths = []string{writeFile(t, "truststore.pem", []byte(chainPEM(root.Cert)))}

	rt, err := bootstrap.New(cfg, nil)
	require.NoError(t, err)
	return rt, pki
}

// callRequest builds a tool call request for name with args.
func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
}

// resultText returns the text of a single-content tool result.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

// serveTLS serves leaf followed by chain on a loopback listener.
func serveTLS(t *testing.T, leaf *testutil.Authority, chain ...*x509.Certificate) string {
	t.Helper()

	cert := tls.Certificate{Certificate: [][]byte{leaf.Cert.Raw}, PrivateKey: leaf.Key}
	for _, c := range chain {
		cert.Certificate = append(cert.Certificate, c.Raw)
	}

	ln, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{
		Certificates:           []tls.Certificate{cert},
		SessionTicketsDisabled: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				_ = conn.(*tls.Conn).Handshake()
			}()
		}
	}()

	return ln.Addr().String()
}
