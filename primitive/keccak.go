// Package primitive implements the leaf-level cryptographic building
// blocks the gate library and the accumulator are built from: Keccak
// and SHA-256 hashing, AES-128-CTR, the fixed-width arithmetic gates,
// and the randomised commitment scheme.
package primitive

import (
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Keccak256 hashes data with Keccak-256 (not NIST SHA3-256), the hash
// the accumulator and commitment scheme are built on.
func Keccak256(data ...[]byte) []byte {
	return gethcrypto.Keccak256(data...)
}
