// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver provides the [MCP] server for the [X509] trust manager.
// It exposes chain verification, accepted issuer enumeration and remote probing
// as [MCP] tools over stdio, backed by the trust store named in the configuration.
// The package uses a builder pattern for server construction so the same tool set
// can be served over stdio or exercised in tests.
//
// [X509]: https://grokipedia.com/page/X.509
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
