// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package bootstrap assembles a ready-to-use trust manager from a [config.Config].
//
// It loads the trust store, selects the verification engine options, creates
// a private Prometheus registry and picks the logger, so the CLI and the
// [MCP] server share the same wiring.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package bootstrap
