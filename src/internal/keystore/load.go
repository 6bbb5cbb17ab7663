// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package keystore

import (
	"crypto/x509"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/x509-trust-manager/src/internal/x509/certs"
	"software.sslmate.com/src/go-pkcs12"
)

// ErrIncorrectPassword indicates that a PKCS#12 file could not be opened
// with the supplied password.
var ErrIncorrectPassword = errors.New("keystore: incorrect PKCS#12 password")

// certificateExtensions lists the file extensions picked up when a
// directory is loaded.
var certificateExtensions = map[string]bool{
	".pem": true,
	".crt": true,
	".cer": true,
	".der": true,
	".p7b": true,
	".p7c": true,
	".p12": true,
	".pfx": true,
}

func isPKCS12(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".p12" || ext == ".pfx"
}

// Load creates a KeyStore from one or more files or directories.
//
// Parameters:
//   - password: PKCS#12 password; ignored for other formats
//   - paths: Files or directories to load
//
// Returns:
//   - *KeyStore: Store holding every loaded entry
//   - error: Error if any path cannot be read or decoded
func Load(password string, paths ...string) (*KeyStore, error) {
	ks := New()
	for _, path := range paths {
		if _, err := ks.LoadPath(path, password); err != nil {
			return nil, err
		}
	}
	return ks, nil
}

// LoadPath adds the entries found at path, which may be a file or a
// directory. Directories are walked recursively and only files with a known
// certificate extension are loaded.
//
// Returns:
//   - int: Number of entries added
//   - error: Error if reading or decoding fails
func (ks *KeyStore) LoadPath(path, password string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read truststore: %w", err)
	}

	if !info.IsDir() {
		return ks.loadFile(path, password)
	}

	total := 0
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !certificateExtensions[strings.ToLower(filepath.Ext(p))] {
			return nil
		}
		n, err := ks.loadFile(p, password)
		total += n
		return err
	})
	if err != nil {
		return total, err
	}

	return total, nil
}

func (ks *KeyStore) loadFile(path, password string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read truststore: %w", err)
	}
	defer f.Close()

	data, err := gc.ReadAll(f)
	if err != nil {
		return 0, fmt.Errorf("failed to read truststore %s: %w", path, err)
	}

	return ks.LoadBytes(filepath.Base(path), data, password)
}

// LoadBytes adds the entries decoded from data. name selects the decoder by
// extension and provides the alias prefix.
//
// PKCS#12 data is first read as a trust store of certificate entries and,
// failing that, as a key store holding one key entry. Anything else is
// decoded as PEM, DER or PKCS#7 certificates.
//
// Returns:
//   - int: Number of entries added
//   - error: Error if decoding fails
func (ks *KeyStore) LoadBytes(name string, data []byte, password string) (int, error) {
	prefix := aliasPrefix(name)

	if isPKCS12(name) {
		return ks.loadPKCS12(prefix, name, data, password)
	}

	certs, err := x509certs.New().DecodeMultiple(data)
	if err != nil {
		return 0, fmt.Errorf("failed to decode certificates from %s: %w", name, err)
	}

	return ks.addCertificates(prefix, certs), nil
}

func (ks *KeyStore) loadPKCS12(prefix, name string, data []byte, password string) (int, error) {
	certs, err := pkcs12.DecodeTrustStore(data, password)
	if err == nil {
		return ks.addCertificates(prefix, certs), nil
	}
	if errors.Is(err, pkcs12.ErrIncorrectPassword) {
		return 0, fmt.Errorf("%w: %s", ErrIncorrectPassword, name)
	}

	key, cert, caCerts, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		if errors.Is(err, pkcs12.ErrIncorrectPassword) {
			return 0, fmt.Errorf("%w: %s", ErrIncorrectPassword, name)
		}
		return 0, fmt.Errorf("failed to decode PKCS#12 %s: %w", name, err)
	}

	chain := append([]*x509.Certificate{cert}, caCerts...)
	if err := ks.SetKeyEntry(ks.uniqueAlias(prefix), key, chain); err != nil {
		return 0, err
	}

	return 1, nil
}

// addCertificates stores certs as trusted certificate entries named prefix,
// or prefix-N when there is more than one.
func (ks *KeyStore) addCertificates(prefix string, certs []*x509.Certificate) int {
	added := 0
	for i, cert := range certs {
		alias := prefix
		if len(certs) > 1 {
			alias = fmt.Sprintf("%s-%d", prefix, i)
		}
		if ks.SetCertificateEntry(ks.uniqueAlias(alias), cert) == nil {
			added++
		}
	}
	return added
}

// uniqueAlias returns alias, or alias with a numeric suffix when it is taken.
func (ks *KeyStore) uniqueAlias(alias string) string {
	if !ks.ContainsAlias(alias) {
		return alias
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s.%d", alias, n)
		if !ks.ContainsAlias(candidate) {
			return candidate
		}
	}
}

func aliasPrefix(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ToLower(strings.TrimSpace(base))
	if base == "" || base == "." {
		return "cert"
	}
	return base
}
