// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package trust

import (
	"fmt"
	"strings"
)

// Role is the side of the handshake whose chain is being verified.
// It does not change the verification algorithm.
type Role int

const (
	// RoleServer verifies a chain presented by a server.
	RoleServer Role = iota
	// RoleClient verifies a chain presented by a client.
	RoleClient
)

// String returns "server" or "client".
func (r Role) String() string {
	switch r {
	case RoleServer:
		return "server"
	case RoleClient:
		return "client"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole parses "server" or "client", case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "server":
		return RoleServer, nil
	case "client":
		return RoleClient, nil
	default:
		return 0, fmt.Errorf("trust: unknown role %q", s)
	}
}
