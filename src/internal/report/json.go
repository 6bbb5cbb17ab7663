// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"crypto/x509"
	"encoding/json"
	"errors"
	"time"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/trust"
	x509certs "github.com/H0llyW00dzZ/x509-trust-manager/src/internal/x509/certs"
)

// CertificateData describes one chain position.
type CertificateData struct {
	Index              int       `json:"index"`
	Role               string    `json:"role"`
	Subject            string    `json:"subject"`
	Issuer             string    `json:"issuer"`
	SerialNumber       string    `json:"serialNumber"`
	SignatureAlgorithm string    `json:"signatureAlgorithm"`
	PublicKeyAlgorithm string    `json:"publicKeyAlgorithm"`
	KeySize            int       `json:"keySize"`
	NotBefore          time.Time `json:"notBefore"`
	NotAfter           time.Time `json:"notAfter"`
	IsCA               bool      `json:"isCA"`
	Status             string    `json:"status"`
}

// RelationshipData links a certificate to the one expected to have issued it.
type RelationshipData struct {
	FromIndex int    `json:"fromIndex"`
	ToIndex   int    `json:"toIndex"`
	Type      string `json:"type"`
}

// Failure describes why a chain was rejected.
type Failure struct {
	Kind    string `json:"kind"`
	Index   *int   `json:"index,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Result is the structured form of one verification.
type Result struct {
	Timestamp     string             `json:"timestamp"`
	Role          string             `json:"role"`
	AuthType      string             `json:"authType,omitempty"`
	Trusted       bool               `json:"trusted"`
	ChainLength   int                `json:"chainLength"`
	Failure       *Failure           `json:"failure,omitempty"`
	Certificates  []CertificateData  `json:"certificates"`
	Relationships []RelationshipData `json:"relationships"`
}

// NewResult builds the result of verifying chain for role with authType.
func NewResult(chain []*x509.Certificate, role trust.Role, authType string, err error) *Result {
	statuses := Statuses(len(chain), err)

	r := &Result{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Role:          role.String(),
		AuthType:      authType,
		Trusted:       err == nil,
		ChainLength:   len(chain),
		Certificates:  make([]CertificateData, len(chain)),
		Relationships: make([]RelationshipData, 0, max(len(chain)-1, 0)),
	}

	for i, cert := range chain {
		size, algo := keyDescription(cert)
		r.Certificates[i] = CertificateData{
			Index:              i,
			Role:               certificateRole(chain, i),
			Subject:            cert.Subject.String(),
			Issuer:             cert.Issuer.String(),
			SerialNumber:       cert.SerialNumber.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
			PublicKeyAlgorithm: algo,
			KeySize:            size,
			NotBefore:          cert.NotBefore,
			NotAfter:           cert.NotAfter,
			IsCA:               cert.IsCA,
			Status:             statuses[i],
		}
	}

	// Each certificate is expected to be signed by the next one in the chain.
	for i := 0; i < len(chain)-1; i++ {
		r.Relationships = append(r.Relationships, RelationshipData{FromIndex: i, ToIndex: i + 1, Type: "signed_by"})
	}

	if err != nil {
		r.Failure = &Failure{Kind: "Unknown", Message: err.Error()}
		var verr *trust.VerificationError
		if errors.As(err, &verr) {
			r.Failure.Kind = verr.Kind.String()
			r.Failure.Subject = verr.Subject
			if verr.Index >= 0 {
				idx := verr.Index
				r.Failure.Index = &idx
			}
		}
	}

	return r
}

// JSON returns the indented JSON encoding of r.
func (r *Result) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// IssuerData describes one accepted issuer.
type IssuerData struct {
	Subject          string    `json:"subject"`
	SerialNumber     string    `json:"serialNumber"`
	BasicConstraints int       `json:"basicConstraints"`
	NotAfter         time.Time `json:"notAfter"`
}

// IssuersJSON returns the indented JSON encoding of issuers.
func IssuersJSON(issuers []*x509.Certificate) ([]byte, error) {
	data := make([]IssuerData, 0, len(issuers))
	for _, cert := range issuers {
		data = append(data, IssuerData{
			Subject:          cert.Subject.String(),
			SerialNumber:     cert.SerialNumber.String(),
			BasicConstraints: x509certs.BasicConstraints(cert),
			NotAfter:         cert.NotAfter,
		})
	}
	return json.MarshalIndent(data, "", "  ")
}
