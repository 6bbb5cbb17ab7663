// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the X.509 trust manager.
// It implements a Cobra-based CLI with three commands: verify checks a chain
// file against a trust store, issuers lists the accepted issuers, and probe
// performs a TLS handshake and verifies the chain the server presents.
// Results can be printed as an ASCII tree, a markdown table or JSON.
// The package loads the shared configuration, honors context cancellation
// and integrates with the logger package for diagnostics.
package cli
