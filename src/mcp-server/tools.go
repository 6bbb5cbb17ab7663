// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createTools creates and returns all MCP tool definitions with their handlers.
//
// The function defines the following tools:
//   - verify_chain: Verifies a chain, leaf first, against the trust store
//   - accepted_issuers: Lists the trust store entries accepted as issuers
//   - probe_server: Performs a TLS handshake and verifies the server chain
//
// Defaults for role, auth_type and timeouts come from the server configuration.
func createTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Tool: mcp.NewTool("verify_chain",
				mcp.WithDescription("Verify an X509 certificate chain (leaf first) against the configured trust store"),
				mcp.WithString("chain",
					mcp.Required(),
					mcp.Description("Chain as a file path, PEM text, or base64-encoded PEM/DER/PKCS#7 data"),
				),
				mcp.WithString("role",
					mcp.Description("Peer role: 'server' or 'client' (default from configuration)"),
					mcp.Enum("server", "client"),
				),
				mcp.WithString("auth_type",
					mcp.Description("Authentication type of the handshake, must not be empty (default from configuration)"),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'text' or 'json' (default: text)"),
					mcp.DefaultString("text"),
				),
			),
			Handler: handleVerifyChain,
			Role:    "chainVerifier",
		},
		{
			Tool: mcp.NewTool("accepted_issuers",
				mcp.WithDescription("List the CA certificates of the trust store that are accepted as issuers"),
				mcp.WithString("format",
					mcp.Description("Output format: 'table', 'pem' or 'json' (default: table)"),
					mcp.DefaultString("table"),
				),
			),
			Handler: handleAcceptedIssuers,
			Role:    "issuerLister",
		},
		{
			Tool: mcp.NewTool("probe_server",
				mcp.WithDescription("Connect to a TLS server and verify the chain it presents against the trust store"),
				mcp.WithString("hostname",
					mcp.Required(),
					mcp.Description("Remote hostname to connect to"),
				),
				mcp.WithNumber("port",
					mcp.Description("Port number (default: 443)"),
					mcp.DefaultNumber(443),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'text' or 'json' (default: text)"),
					mcp.DefaultString("text"),
				),
			),
			Handler: handleProbeServer,
			Role:    "remoteProber",
		},
	}
}
