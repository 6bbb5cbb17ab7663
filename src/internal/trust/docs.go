// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package trust implements the trust decision core of the trust manager.
//
// It provides:
//   - [Verifier.VerifyChain], which walks an ordered peer chain from the
//     outermost intermediate down to the leaf, extending trust one verified
//     certificate at a time.
//   - [AcceptedIssuers], which lists the CA-capable entries of a trust store.
//
// Certificate parsing, signature checks and trust store storage are supplied
// by collaborators through the [Certificate], [Engine] and [TrustStore]
// interfaces.
package trust
