// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-trust-manager is a command-line tool for verifying X.509 certificate
// chains against a trust store by linear extension of trust.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/x509-trust-manager/cmd/x509-trust-manager@latest
//
// # Usage
//
//	x509-trust-manager verify -t TRUSTSTORE -c CHAIN [FLAGS]
//	x509-trust-manager issuers -t TRUSTSTORE [FLAGS]
//	x509-trust-manager probe HOST[:PORT] -t TRUSTSTORE [FLAGS]
//
// # Flags
//
//	    --config      Configuration file (JSON or YAML)
//	-t, --truststore  Trust store file or directory (PEM, DER, PKCS#7, PKCS#12), repeatable
//	-p, --password    PKCS#12 trust store password
//	-c, --chain       Chain to verify, leaf first (verify)
//	-r, --role        Peer role: server or client (verify)
//	-a, --auth-type   Handshake authentication type (verify)
//	-f, --format      Output format: text, table, json or pem
//	    --timeout     Handshake timeout (probe)
//
// # Exit Status
//
// The command exits with 0 when the chain is trusted, 2 when it is not and 1
// on any other error.
//
// # Examples
//
// Verify a server chain:
//
//	x509-trust-manager verify -t roots.pem -c chain.pem
//
// Verify a client chain with JSON output:
//
//	x509-trust-manager verify -t roots.p12 -p changeit -c client.pem -r client -f json
//
// List accepted issuers as a table:
//
//	x509-trust-manager issuers -t /etc/ssl/certs
//
// Check the chain a server presents:
//
//	x509-trust-manager probe example.com -t roots.pem
package main
