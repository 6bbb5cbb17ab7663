// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package trust

import (
	"errors"
	"fmt"
)

// Kind classifies why a chain was rejected.
type Kind int

const (
	// KindInvalidInput reports an empty chain, a missing trust store or an empty auth type.
	KindInvalidInput Kind = iota + 1
	// KindEngineUnavailable reports that no verification engine could be created.
	KindEngineUnavailable
	// KindTrustStoreLoadFailed reports that the trust store CAs could not be loaded.
	KindTrustStoreLoadFailed
	// KindIntermediateVerificationFailed reports an intermediate that did not verify.
	KindIntermediateVerificationFailed
	// KindIntermediateLoadFailed reports a verified intermediate that could not be trusted.
	KindIntermediateLoadFailed
	// KindLeafVerificationFailed reports a leaf that did not verify.
	KindLeafVerificationFailed
)

// Sentinel errors matching each [Kind] with [errors.Is].
var (
	ErrInvalidInput                   = errors.New("trust: invalid input")
	ErrEngineUnavailable              = errors.New("trust: verification engine unavailable")
	ErrTrustStoreLoadFailed           = errors.New("trust: failed to load trusted certs into verification engine")
	ErrIntermediateVerificationFailed = errors.New("trust: failed to verify intermediate chain cert")
	ErrIntermediateLoadFailed         = errors.New("trust: failed to load intermediate CA certificate as trusted root")
	ErrLeafVerificationFailed         = errors.New("trust: failed to verify peer certificate")
)

// ErrNoEncoding is the cause recorded when a certificate has no DER encoding.
var ErrNoEncoding = errors.New("trust: certificate has no encoding")

var kindNames = map[Kind]string{
	KindInvalidInput:                   "InvalidInput",
	KindEngineUnavailable:              "EngineUnavailable",
	KindTrustStoreLoadFailed:           "TrustStoreLoadFailed",
	KindIntermediateVerificationFailed: "IntermediateVerificationFailed",
	KindIntermediateLoadFailed:         "IntermediateLoadFailed",
	KindLeafVerificationFailed:         "LeafVerificationFailed",
}

var kindErrors = map[Kind]error{
	KindInvalidInput:                   ErrInvalidInput,
	KindEngineUnavailable:              ErrEngineUnavailable,
	KindTrustStoreLoadFailed:           ErrTrustStoreLoadFailed,
	KindIntermediateVerificationFailed: ErrIntermediateVerificationFailed,
	KindIntermediateLoadFailed:         ErrIntermediateLoadFailed,
	KindLeafVerificationFailed:         ErrLeafVerificationFailed,
}

// String returns the name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// VerificationError describes a rejected chain.
type VerificationError struct {
	Kind Kind
	// Role is the handshake direction being verified.
	Role Role
	// Index is the chain position that failed, or -1 when the failure is
	// not tied to a certificate.
	Index int
	// Subject is the subject name of the failing certificate, when known.
	Subject string
	// Err is the underlying cause reported by the engine or store.
	Err error
}

// Error implements the error interface.
func (e *VerificationError) Error() string {
	msg := e.Kind.String()
	if sentinel, ok := kindErrors[e.Kind]; ok {
		msg = sentinel.Error()
	}
	if e.Index >= 0 {
		msg = fmt.Sprintf("%s (index %d", msg, e.Index)
		if e.Subject != "" {
			msg += ", subject " + e.Subject
		}
		msg += ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *VerificationError) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of the error's kind.
func (e *VerificationError) Is(target error) bool {
	sentinel, ok := kindErrors[e.Kind]
	return ok && target == sentinel
}

// KindOf returns the kind of err, or zero when err is not a [VerificationError].
func KindOf(err error) Kind {
	var verr *VerificationError
	if errors.As(err, &verr) {
		return verr.Kind
	}
	return 0
}
