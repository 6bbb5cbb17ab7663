// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs provides decoding and encoding for [X.509] certificates
// in [PEM], DER and [PKCS7] form, and the [Cert] view that exposes a
// certificate to the trust core as an encoded blob plus the attributes the
// core consumes (subject name and basic constraints).
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
