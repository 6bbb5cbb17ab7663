// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/bootstrap"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/report"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/trust"
	x509certs "github.com/H0llyW00dzZ/x509-trust-manager/src/internal/x509/certs"
	x509remote "github.com/H0llyW00dzZ/x509-trust-manager/src/internal/x509/remote"
	"github.com/mark3labs/mcp-go/mcp"
)

// errChainInput indicates chain input that is neither PEM, a readable file nor base64.
var errChainInput = errors.New("not PEM data, a valid file path or base64 data")

// readChainInput returns the raw chain bytes for input.
//
// Input is tried as PEM text, then as a file path, then as base64.
func readChainInput(input string) ([]byte, error) {
	if x509certs.New().IsPEM([]byte(input)) {
		return []byte(input), nil
	}
	if data, err := os.ReadFile(input); err == nil {
		return data, nil
	}
	if decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(input)); err == nil {
		return decoded, nil
	}
	return nil, errChainInput
}

// chainResult formats the verification result of chain as a tool result.
// An untrusted chain is a successful tool call whose text reports the failure.
func chainResult(chain []*x509.Certificate, role trust.Role, authType string, verr error, format string) (*mcp.CallToolResult, error) {
	if format == "json" {
		data, err := report.NewResult(chain, role, authType, verr).JSON()
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}
	return mcp.NewToolResultText(report.Summary(chain, role, verr)), nil
}

// handleVerifyChain verifies a chain, leaf first, against the trust store.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: MCP tool call request containing the chain and verification options
//   - rt: Trust manager runtime
//
// Returns:
//   - The tool execution result with the per-certificate status and verdict
//   - An error only if the result cannot be encoded
//
// Malformed input is reported as a tool error result. A chain that is not
// trusted is reported in the result text, including the failure kind.
func handleVerifyChain(_ context.Context, request mcp.CallToolRequest, rt *bootstrap.Runtime) (*mcp.CallToolResult, error) {
	chainInput, err := request.RequireString("chain")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chain parameter required: %v", err)), nil
	}

	roleName := request.GetString("role", rt.Config.Defaults.Role)
	authType := request.GetString("auth_type", rt.Config.Defaults.AuthType)
	format := request.GetString("format", "text")

	data, err := readChainInput(chainInput)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read chain: %v", err)), nil
	}

	chain, err := x509certs.New().DecodeMultiple(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to decode chain: %v", err)), nil
	}

	role, err := trust.ParseRole(roleName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	verr := rt.Manager.CheckTrusted(chain, authType, role)
	return chainResult(chain, role, authType, verr, format)
}

// handleAcceptedIssuers lists the accepted issuers of the trust store.
func handleAcceptedIssuers(_ context.Context, request mcp.CallToolRequest, rt *bootstrap.Runtime) (*mcp.CallToolResult, error) {
	format := request.GetString("format", "table")
	issuers := rt.Manager.AcceptedIssuers()

	switch format {
	case "pem":
		if len(issuers) == 0 {
			return mcp.NewToolResultText(""), nil
		}
		return mcp.NewToolResultText(string(x509certs.New().EncodeMultiplePEM(issuers))), nil
	case "json":
		data, err := report.IssuersJSON(issuers)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal issuers: %w", err)
		}
		return mcp.NewToolResultText(string(data)), nil
	case "table":
		return mcp.NewToolResultText(report.IssuersTable(issuers)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q: use 'table', 'pem' or 'json'", format)), nil
	}
}

// handleProbeServer performs a TLS handshake with a remote server and
// verifies the chain it presents as a server chain.
//
// The handshake timeout is taken from the configuration. The host name is
// not matched against the leaf certificate.
func handleProbeServer(ctx context.Context, request mcp.CallToolRequest, rt *bootstrap.Runtime) (*mcp.CallToolResult, error) {
	hostname, err := request.RequireString("hostname")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("hostname parameter required: %v", err)), nil
	}
	port := request.GetInt("port", 443)
	format := request.GetString("format", "text")

	ctx, cancel := context.WithTimeout(ctx, rt.Config.Timeout())
	defer cancel()

	address := net.JoinHostPort(hostname, strconv.Itoa(port))
	res, err := x509remote.Probe(ctx, address, rt.Manager.TLSConfig(trust.RoleServer))
	if len(res.Chain) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("failed to probe %s: %v", address, err)), nil
	}

	authType := res.Chain[0].PublicKeyAlgorithm.String()
	return chainResult(res.Chain, trust.RoleServer, authType, err, format)
}
