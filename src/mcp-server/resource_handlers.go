// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/bootstrap"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/report"
	"github.com/mark3labs/mcp-go/mcp"
)

// handleVersionResource handles requests for version information resource.
// It provides server metadata including version, trust store size and tools.
func handleVersionResource(_ context.Context, _ mcp.ReadResourceRequest, rt *bootstrap.Runtime) ([]mcp.ResourceContents, error) {
	tools := createTools()
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Tool.Name)
	}

	versionInfo := map[string]any{
		"name":              serverName,
		"version":           GetVersion(),
		"trustStoreEntries": rt.Store.Size(),
		"tools":             names,
	}

	jsonData, err := json.MarshalIndent(versionInfo, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal version info: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      versionResourceURI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleIssuersResource handles requests for the accepted issuers resource.
func handleIssuersResource(_ context.Context, _ mcp.ReadResourceRequest, rt *bootstrap.Runtime) ([]mcp.ResourceContents, error) {
	jsonData, err := report.IssuersJSON(rt.Manager.AcceptedIssuers())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal issuers: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      issuersResourceURI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
