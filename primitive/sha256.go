package primitive

import (
	"encoding/binary"
	"math/bits"

	sha256simd "github.com/minio/sha256-simd"

	"github.com/filebazaar/dispute-core/types"
)

// Sha256 hashes data with plain SHA-256, used for the file/description
// commitments outside the gate circuit. sha256-simd is a drop-in,
// API-compatible accelerated implementation of crypto/sha256.
func Sha256(data []byte) []byte {
	sum := sha256simd.Sum256(data)
	return sum[:]
}

var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

func sha256InitialState() [8]uint32 {
	return [8]uint32{
		0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
		0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
	}
}

// sha256CompressBlock runs one round of the SHA-256 compression
// function over a single 64-byte block, chaining from state.
func sha256CompressBlock(state [8]uint32, block []byte) [8]uint32 {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 64; i++ {
		s0 := bits.RotateLeft32(w[i-15], -7) ^ bits.RotateLeft32(w[i-15], -18) ^ (w[i-15] >> 3)
		s1 := bits.RotateLeft32(w[i-2], -17) ^ bits.RotateLeft32(w[i-2], -19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, d, e, f, g, h := state[0], state[1], state[2], state[3], state[4], state[5], state[6], state[7]
	for i := 0; i < 64; i++ {
		s1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		ch := (e & f) ^ (^e & g)
		temp1 := h + s1 + ch + sha256K[i] + w[i]
		s0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		temp2 := s0 + maj

		h, g, f, e = g, f, e, d+temp1
		d, c, b, a = c, b, a, temp1+temp2
	}

	return [8]uint32{
		state[0] + a, state[1] + b, state[2] + c, state[3] + d,
		state[4] + e, state[5] + f, state[6] + g, state[7] + h,
	}
}

func stateToBytes(state [8]uint32) []byte {
	out := make([]byte, 32)
	for i, w := range state {
		binary.BigEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func stateFromBytes(data []byte) ([8]uint32, error) {
	if len(data) != 32 {
		return [8]uint32{}, types.NewError(types.KindInputShape, "sha256 chaining value must be 32 bytes, got %d", len(data))
	}
	var state [8]uint32
	for i := range state {
		state[i] = binary.BigEndian.Uint32(data[i*4:])
	}
	return state, nil
}

// Sha256Compress implements gate opcode 0: one or two inputs,
// (prev_state?, 64-byte block); with one input the SHA-256 IV is used.
func Sha256Compress(inputs [][]byte) ([]byte, error) {
	var prev [8]uint32
	var block []byte

	switch len(inputs) {
	case 1:
		prev = sha256InitialState()
		block = inputs[0]
	case 2:
		st, err := stateFromBytes(inputs[0])
		if err != nil {
			return nil, err
		}
		prev = st
		block = inputs[1]
	default:
		return nil, types.NewError(types.KindInputShape, "sha256_compress expects 1 or 2 inputs, got %d", len(inputs))
	}

	if len(block) != 64 {
		return nil, types.NewError(types.KindInputShape, "sha256_compress block must be 64 bytes, got %d", len(block))
	}

	return stateToBytes(sha256CompressBlock(prev, block)), nil
}

// sha256Pad implements the original prototype's length-padding for the
// final message block: append 0x80 right after the data, zero-pad, and
// end with the 8-byte big-endian bit-length, spilling into a second
// block when the data already used up 56 or more bytes of the block.
func sha256Pad(lastBlock []byte, dataLen uint64) []byte {
	paddedLen := len(lastBlock) + 9
	switch {
	case paddedLen < 64:
		paddedLen = 64
	case paddedLen > 64:
		paddedLen = 128
	}

	padded := make([]byte, paddedLen)
	copy(padded, lastBlock)
	padded[len(lastBlock)] = 0x80
	binary.BigEndian.PutUint64(padded[paddedLen-8:], dataLen*8)

	return padded
}

// Sha256CompressFinal implements gate opcode 7: (prev_state?,
// last_block, data_len_be_u64); applies SHA-256 length padding to
// last_block and compresses the one or two resulting blocks.
func Sha256CompressFinal(inputs [][]byte) ([]byte, error) {
	var prev [8]uint32
	var block, lenBytes []byte

	switch len(inputs) {
	case 2:
		prev = sha256InitialState()
		block, lenBytes = inputs[0], inputs[1]
	case 3:
		st, err := stateFromBytes(inputs[0])
		if err != nil {
			return nil, err
		}
		prev = st
		block, lenBytes = inputs[1], inputs[2]
	default:
		return nil, types.NewError(types.KindInputShape, "sha256_compress_final expects 2 or 3 inputs, got %d", len(inputs))
	}

	if len(lenBytes) != 8 {
		return nil, types.NewError(types.KindInputShape, "sha256_compress_final data_len must be 8 bytes, got %d", len(lenBytes))
	}
	dataLen := binary.BigEndian.Uint64(lenBytes)

	padded := sha256Pad(block, dataLen)
	state := sha256CompressBlock(prev, padded[:64])
	if len(padded) > 64 {
		state = sha256CompressBlock(state, padded[64:128])
	}

	return stateToBytes(state), nil
}
