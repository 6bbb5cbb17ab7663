// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/trust"
	x509certs "github.com/H0llyW00dzZ/x509-trust-manager/src/internal/x509/certs"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Status of a chain position after a verification.
const (
	StatusTrusted      = "trusted"
	StatusRejected     = "rejected"
	StatusNotEvaluated = "not evaluated"
)

// Statuses returns the status of each position of a chain of length n given
// the result err of verifying it.
func Statuses(n int, err error) []string {
	statuses := make([]string, n)

	failed := -2
	if err != nil {
		failed = -1
		var verr *trust.VerificationError
		if errors.As(err, &verr) {
			failed = verr.Index
		}
	}

	for i := range statuses {
		switch {
		case failed == -2 || i > failed && failed >= 0:
			statuses[i] = StatusTrusted
		case i == failed:
			statuses[i] = StatusRejected
		default:
			statuses[i] = StatusNotEvaluated
		}
	}

	return statuses
}

// certificateRole describes the position of a certificate in a peer chain.
func certificateRole(chain []*x509.Certificate, index int) string {
	cert := chain[index]
	switch {
	case index == 0:
		return "End-Entity Certificate"
	case index == len(chain)-1 && bytes.Equal(cert.RawIssuer, cert.RawSubject):
		return "Root CA Certificate"
	default:
		return "Intermediate CA Certificate"
	}
}

// keyDescription returns the public key size and algorithm of cert.
func keyDescription(cert *x509.Certificate) (int, string) {
	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return pub.Size() * 8, "RSA"
	case *ecdsa.PublicKey:
		return pub.Curve.Params().BitSize, "ECDSA"
	case ed25519.PublicKey:
		return 256, "Ed25519"
	default:
		return 0, "unknown"
	}
}

func keySize(cert *x509.Certificate) string {
	size, algo := keyDescription(cert)
	if size == 0 {
		return algo
	}
	return fmt.Sprintf("%d-bit %s", size, algo)
}

func pathLen(cert *x509.Certificate) string {
	switch bc := x509certs.BasicConstraints(cert); {
	case bc == x509certs.UnlimitedPathLen:
		return "unlimited"
	case bc < 0:
		return "not a CA"
	default:
		return strconv.Itoa(bc)
	}
}

func statusIcon(status string) string {
	switch status {
	case StatusTrusted:
		return "✓"
	case StatusRejected:
		return "✗"
	default:
		return "·"
	}
}

// ChainTree renders chain as an ASCII tree annotated with the per-position
// status derived from err.
func ChainTree(chain []*x509.Certificate, err error) string {
	if len(chain) == 0 {
		return "No certificates in chain"
	}

	statuses := Statuses(len(chain), err)

	var result strings.Builder
	// Root first, so the tree reads in the order trust is extended.
	for i := len(chain) - 1; i >= 0; i-- {
		depth := len(chain) - 1 - i
		connector := "└── "
		if depth == 0 {
			connector = ""
		}
		fmt.Fprintf(&result, "%s%s[%s] %s (%s)\n",
			strings.Repeat("    ", max(depth-1, 0)), connector,
			statusIcon(statuses[i]), chain[i].Subject.CommonName, certificateRole(chain, i))
	}

	return result.String()
}

// Summary renders chain as a tree followed by the verification verdict.
func Summary(chain []*x509.Certificate, role trust.Role, err error) string {
	var b strings.Builder
	b.WriteString(ChainTree(chain, err))
	if err != nil {
		fmt.Fprintf(&b, "\nChain not trusted: %v\n", err)
	} else {
		fmt.Fprintf(&b, "\nChain trusted (%s, %d certificates)\n", role, len(chain))
	}
	return b.String()
}

// ChainTable renders chain as a markdown table with one row per position.
func ChainTable(chain []*x509.Certificate, err error) string {
	if len(chain) == 0 {
		return "No certificates to display"
	}

	statuses := Statuses(len(chain), err)

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"🔢 #", "🏷️ Role", "📛 Subject", "🏢 Issuer", "📅 Valid Until", "🔐 Key Size", "✅ Status"})

	rows := make([][]string, 0, len(chain))
	for i, cert := range chain {
		rows = append(rows, []string{
			strconv.Itoa(i),
			certificateRole(chain, i),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.NotAfter.Format("2006-01-02"),
			keySize(cert),
			statuses[i],
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// IssuersTable renders accepted issuers as a markdown table.
func IssuersTable(issuers []*x509.Certificate) string {
	if len(issuers) == 0 {
		return "No accepted issuers"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"🔢 #", "📛 Subject", "📏 Path Length", "📅 Valid Until", "🔐 Key Size"})

	rows := make([][]string, 0, len(issuers))
	for i, cert := range issuers {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			cert.Subject.String(),
			pathLen(cert),
			cert.NotAfter.Format("2006-01-02"),
			keySize(cert),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}
