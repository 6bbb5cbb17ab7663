// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package trust

import (
	"github.com/H0llyW00dzZ/x509-trust-manager/src/logger"
)

// silent is used when a Verifier has no logger.
var silent = logger.NewJSONLogger(nil, true)

// Verifier walks peer chains with a fresh [Engine] per call.
//
// A Verifier holds no per-call state and is safe for concurrent use.
type Verifier struct {
	// NewEngine creates the engine used by each call.
	NewEngine EngineFactory
	// Logger receives per-certificate progress messages. Optional.
	Logger logger.Logger
}

func (v *Verifier) log() logger.Logger {
	if v.Logger == nil {
		return silent
	}
	return v.Logger
}

// VerifyChain verifies chain against store by linear trust extension.
//
// chain[0] is the leaf and each following certificate is expected to have
// issued the one before it. Intermediates are verified from the outermost
// inwards, and each one is trusted only after it verifies. The leaf is
// verified last against the extended trust set. The first failure aborts the
// walk; no alternative ordering is attempted.
//
// Failures are returned as *[VerificationError]. The engine is released on
// every path.
//
// Thread Safety: Safe for concurrent use.
func (v *Verifier) VerifyChain(chain []Certificate, store TrustStore, role Role) error {
	if len(chain) == 0 || store == nil {
		return &VerificationError{Kind: KindInvalidInput, Role: role, Index: -1}
	}

	if v.NewEngine == nil {
		return &VerificationError{Kind: KindEngineUnavailable, Role: role, Index: -1}
	}

	engine, err := v.NewEngine()
	if err != nil || engine == nil {
		return &VerificationError{Kind: KindEngineUnavailable, Role: role, Index: -1, Err: err}
	}
	defer engine.Release()

	if err := engine.LoadTrustedCAs(store); err != nil {
		return &VerificationError{Kind: KindTrustStoreLoadFailed, Role: role, Index: -1, Err: err}
	}

	log := v.log()

	for i := len(chain) - 1; i > 0; i-- {
		subject := subjectOf(chain[i])
		log.Printf("Verifying intermediate chain cert: %s", subject)

		der := encodedOf(chain[i])
		if der == nil {
			return &VerificationError{Kind: KindIntermediateVerificationFailed, Role: role, Index: i, Subject: subject, Err: ErrNoEncoding}
		}

		if err := engine.Verify(der); err != nil {
			return &VerificationError{Kind: KindIntermediateVerificationFailed, Role: role, Index: i, Subject: subject, Err: err}
		}

		if err := engine.LoadCA(der); err != nil {
			return &VerificationError{Kind: KindIntermediateLoadFailed, Role: role, Index: i, Subject: subject, Err: err}
		}

		log.Printf("Loaded intermediate CA: %s", subject)
	}

	subject := subjectOf(chain[0])
	log.Printf("Verifying peer certificate: %s", subject)

	peer := encodedOf(chain[0])
	if peer == nil {
		return &VerificationError{Kind: KindLeafVerificationFailed, Role: role, Index: 0, Subject: subject, Err: ErrNoEncoding}
	}

	if err := engine.Verify(peer); err != nil {
		log.Printf("Failed to verify peer certificate: %s", subject)
		return &VerificationError{Kind: KindLeafVerificationFailed, Role: role, Index: 0, Subject: subject, Err: err}
	}

	log.Printf("Verified peer certificate: %s", subject)
	return nil
}

// encodedOf tolerates nil chain elements.
func encodedOf(c Certificate) []byte {
	if c == nil {
		return nil
	}
	return c.Encoded()
}

func subjectOf(c Certificate) string {
	if c == nil {
		return ""
	}
	return c.SubjectName()
}
