// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package trustmanager

import (
	"crypto/x509"
	"errors"
	"time"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/trust"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/x509/certmanager"
	x509certs "github.com/H0llyW00dzZ/x509-trust-manager/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/x509-trust-manager/src/logger"
)

type (
	// TrustStore is the read-only collection of trusted entries consulted by
	// the checks.
	TrustStore = trust.TrustStore
	// Certificate is the certificate view exposed by a [TrustStore].
	Certificate = trust.Certificate
	// Role is the handshake side whose chain is verified.
	Role = trust.Role
	// EngineFactory creates the verification engine used by one check.
	EngineFactory = trust.EngineFactory
)

// Handshake sides.
const (
	RoleServer = trust.RoleServer
	RoleClient = trust.RoleClient
)

var errEmptyAuthType = errors.New("trustmanager: authType must not be empty")

// Observer receives the outcome of each check.
type Observer interface {
	ObserveVerification(role Role, err error, elapsed time.Duration)
	SetAcceptedIssuers(n int)
}

// Option configures a [TrustManager].
type Option func(*TrustManager)

// WithEngineFactory sets the engine factory. The default creates a
// certmanager engine without validity checks.
func WithEngineFactory(f EngineFactory) Option {
	return func(tm *TrustManager) { tm.verifier.NewEngine = f }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l logger.Logger) Option {
	return func(tm *TrustManager) {
		if l != nil {
			tm.log = l
			tm.verifier.Logger = l
		}
	}
}

// WithMetrics sets the observer notified of every decision.
func WithMetrics(o Observer) Option {
	return func(tm *TrustManager) { tm.metrics = o }
}

// TrustManager checks peer chains against a trust store.
//
// A TrustManager holds no per-call state and is safe for concurrent use as
// long as the trust store is not modified during a check.
type TrustManager struct {
	store    TrustStore
	verifier *trust.Verifier
	log      logger.Logger
	metrics  Observer
}

// New creates a TrustManager over store.
//
// Parameters:
//   - store: Trust store holding the trusted CA entries
//   - opts: Optional configuration
//
// Returns:
//   - *TrustManager: Ready to use trust manager
func New(store TrustStore, opts ...Option) *TrustManager {
	silent := logger.NewJSONLogger(nil, true)
	tm := &TrustManager{
		store:    store,
		verifier: &trust.Verifier{NewEngine: certmanager.Factory(), Logger: silent},
		log:      silent,
	}
	for _, opt := range opts {
		opt(tm)
	}

	tm.log.Println("created new trust manager")
	return tm
}

// CheckClientTrusted verifies a chain presented by a client.
//
// Parameters:
//   - chain: Peer chain, leaf first
//   - authType: Authentication type negotiated for the handshake; must not be empty
//
// Returns:
//   - error: *[CertificateError] if the chain is not trusted
//
// Thread Safety: Safe for concurrent use.
func (tm *TrustManager) CheckClientTrusted(chain []*x509.Certificate, authType string) error {
	tm.log.Println("entered checkClientTrusted()")
	return tm.check(chain, authType, RoleClient)
}

// CheckServerTrusted verifies a chain presented by a server.
// See [TrustManager.CheckClientTrusted].
func (tm *TrustManager) CheckServerTrusted(chain []*x509.Certificate, authType string) error {
	tm.log.Println("entered checkServerTrusted()")
	return tm.check(chain, authType, RoleServer)
}

// CheckTrusted verifies chain for role.
func (tm *TrustManager) CheckTrusted(chain []*x509.Certificate, authType string, role Role) error {
	return tm.check(chain, authType, role)
}

func (tm *TrustManager) check(chain []*x509.Certificate, authType string, role Role) error {
	start := time.Now()

	var err error
	if authType == "" {
		err = &trust.VerificationError{Kind: trust.KindInvalidInput, Role: role, Index: -1, Err: errEmptyAuthType}
	} else {
		err = tm.verifier.VerifyChain(wrap(chain), tm.store, role)
	}

	if tm.metrics != nil {
		tm.metrics.ObserveVerification(role, err, time.Since(start))
	}

	if err != nil {
		return &CertificateError{Role: role, AuthType: authType, Err: err}
	}
	return nil
}

// AcceptedIssuers returns the CA certificates of the trust store, in alias
// order. Store errors yield an empty result. The slice is never nil.
//
// Thread Safety: Safe for concurrent use.
func (tm *TrustManager) AcceptedIssuers() []*x509.Certificate {
	tm.log.Println("entered getAcceptedIssuers()")

	issuers := trust.AcceptedIssuers(tm.store)
	certs := make([]*x509.Certificate, 0, len(issuers))
	for _, c := range issuers {
		if cert := unwrap(c); cert != nil {
			certs = append(certs, cert)
		}
	}

	if tm.metrics != nil {
		tm.metrics.SetAcceptedIssuers(len(certs))
	}
	return certs
}

func wrap(chain []*x509.Certificate) []trust.Certificate {
	if len(chain) == 0 {
		return nil
	}
	wrapped := make([]trust.Certificate, len(chain))
	for i, c := range chain {
		wrapped[i] = x509certs.Wrap(c)
	}
	return wrapped
}

// unwrap returns the parsed form of c, parsing its encoding when the store
// uses another certificate view.
func unwrap(c Certificate) *x509.Certificate {
	if view, ok := c.(*x509certs.Cert); ok {
		return view.X509()
	}
	der := c.Encoded()
	if der == nil {
		return nil
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil
	}
	return cert
}
