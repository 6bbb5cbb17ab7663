// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Resource URIs served by the server.
const (
	versionResourceURI = "info://version"
	issuersResourceURI = "truststore://accepted-issuers"
)

// createResources creates the static and trust store backed MCP resources.
func createResources() []ResourceDefinition {
	return []ResourceDefinition{
		{
			Resource: mcp.NewResource(versionResourceURI, "Version Information",
				mcp.WithResourceDescription("Server name, version and available tools"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: handleVersionResource,
		},
		{
			Resource: mcp.NewResource(issuersResourceURI, "Accepted Issuers",
				mcp.WithResourceDescription("CA certificates of the configured trust store accepted as issuers"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: handleIssuersResource,
		},
	}
}
