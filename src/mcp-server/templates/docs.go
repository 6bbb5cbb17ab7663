// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package templates provides embedded filesystem access for MCP server template files.
//
// The package provides thread-safe access to embedded files through the [EmbedFS] interface,
// with [MagicEmbed] serving as the default implementation. The MCP server renders its
// client instructions from instructions.md.
//
// Example usage:
//
//	import "github.com/H0llyW00dzZ/x509-trust-manager/src/mcp-server/templates"
//
//	content, err := templates.MagicEmbed.ReadFile("instructions.md")
//	if err != nil {
//		return fmt.Errorf("failed to read instructions: %w", err)
//	}
package templates
