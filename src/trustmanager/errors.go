// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package trustmanager

import (
	"errors"
	"fmt"
)

// ErrCertificateVerification matches every error returned by the trust checks.
var ErrCertificateVerification = errors.New("trustmanager: certificate verification failed")

// CertificateError reports a rejected peer chain.
//
// It matches [ErrCertificateVerification] with [errors.Is] and unwraps to the
// *trust.VerificationError describing the failure.
type CertificateError struct {
	// Role is the handshake side whose chain was rejected.
	Role Role
	// AuthType is the authentication type passed to the check.
	AuthType string
	// Err is the underlying verification error.
	Err error
}

// Error implements the error interface.
func (e *CertificateError) Error() string {
	return fmt.Sprintf("trustmanager: %s certificate not trusted: %v", e.Role, e.Err)
}

// Unwrap returns the underlying verification error.
func (e *CertificateError) Unwrap() error { return e.Err }

// Is reports whether target is [ErrCertificateVerification].
func (e *CertificateError) Is(target error) bool { return target == ErrCertificateVerification }
