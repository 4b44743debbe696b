package primitive

import (
	"bytes"
	"crypto/rand"

	"github.com/filebazaar/dispute-core/types"
)

const blindingLen = 16

// Commitment is a randomised Keccak-256 binding commitment: c is the
// public hash, o is the opening value (data || 16 bytes of blinding).
type Commitment struct {
	C HexC
	O []byte
}

// HexC is the 32-byte commitment hash.
type HexC = types.HexBytes

// Commit samples 16 bytes of fresh randomness r and returns
// {c: Keccak256(data||r), o: data||r}.
func Commit(data []byte) (*Commitment, error) {
	r := make([]byte, blindingLen)
	if _, err := rand.Read(r); err != nil {
		return nil, types.WrapError(types.KindInputShape, err, "failed to sample commitment blinding")
	}

	o := make([]byte, 0, len(data)+blindingLen)
	o = append(o, data...)
	o = append(o, r...)

	return &Commitment{C: Keccak256(o), O: o}, nil
}

// Open recomputes Keccak256(o) and compares it to c. On success it
// returns the committed data (o with the trailing blinding stripped).
func Open(c, o []byte) ([]byte, error) {
	if !bytes.Equal(Keccak256(o), c) {
		return nil, types.NewError(types.KindCommitmentMismatch, "opening value does not hash to the stored commitment")
	}
	if len(o) < blindingLen {
		return nil, types.NewError(types.KindCommitmentMismatch, "opening value shorter than the blinding factor")
	}
	return o[:len(o)-blindingLen], nil
}

// CommitHashes commits to the concatenation of two 32-byte hashes.
func CommitHashes(h1, h2 []byte) (*Commitment, error) {
	if len(h1) != 32 || len(h2) != 32 {
		return nil, types.NewError(types.KindInputShape, "commit_hashes requires two 32-byte hashes, got %d and %d", len(h1), len(h2))
	}
	data := make([]byte, 0, 64)
	data = append(data, h1...)
	data = append(data, h2...)
	return Commit(data)
}
