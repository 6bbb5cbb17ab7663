// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// mcp-server serves the X.509 trust manager over the Model Context Protocol
// on stdin and stdout.
//
// # Usage
//
//	mcp-server [--config FILE] [--instructions]
//
// The configuration file names the trust store; see the config package for
// its format. Without --config the X509_TRUST_CONFIG_FILE environment
// variable is consulted.
package main
