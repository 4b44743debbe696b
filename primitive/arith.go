package primitive

import (
	"bytes"

	"github.com/holiman/uint256"

	"github.com/filebazaar/dispute-core/types"
)

// Equal implements gate opcode 5: returns 0x01 iff all inputs are
// bytewise identical (length included), else 0x00. Requires at least
// two inputs.
func Equal(inputs [][]byte) ([]byte, error) {
	if len(inputs) < 2 {
		return nil, types.NewError(types.KindInputShape, "equal needs at least two inputs, got %d", len(inputs))
	}
	for _, in := range inputs[1:] {
		if !bytes.Equal(inputs[0], in) {
			return []byte{0x00}, nil
		}
	}
	return []byte{0x01}, nil
}

// ConcatBytes implements gate opcode 6: left-to-right concatenation of
// all inputs.
func ConcatBytes(inputs [][]byte) ([]byte, error) {
	total := 0
	for _, in := range inputs {
		total += len(in)
	}
	out := make([]byte, 0, total)
	for _, in := range inputs {
		out = append(out, in...)
	}
	return out, nil
}

// pad16 right-aligns src into a 16-byte big-endian buffer. If src is
// longer than 16 bytes only its leading 16 bytes participate, matching
// the wrapping-truncate behaviour of the reference prototype's
// fixed-width copy.
func pad16(src []byte) [16]byte {
	var dst [16]byte
	n := len(src)
	if n > 16 {
		n = 16
	}
	copy(dst[16-n:], src[:n])
	return dst
}

// BinaryAdd implements gate opcode 3: 128-bit big-endian addition of
// two byte strings padded to 16 bytes, wrapping modulo 2^128.
func BinaryAdd(inputs [][]byte) ([]byte, error) {
	if len(inputs) != 2 {
		return nil, types.NewError(types.KindInputShape, "binary_add needs exactly two inputs, got %d", len(inputs))
	}
	left := pad16(inputs[0])
	right := pad16(inputs[1])

	a := new(uint256.Int).SetBytes(left[:])
	b := new(uint256.Int).SetBytes(right[:])
	sum := new(uint256.Int).Add(a, b)

	out := sum.Bytes32()
	return out[16:], nil
}

// BinaryMult implements gate opcode 4: 128-bit big-endian
// multiplication, wrapping modulo 2^128.
func BinaryMult(inputs [][]byte) ([]byte, error) {
	if len(inputs) != 2 {
		return nil, types.NewError(types.KindInputShape, "binary_mult needs exactly two inputs, got %d", len(inputs))
	}
	left := pad16(inputs[0])
	right := pad16(inputs[1])

	a := new(uint256.Int).SetBytes(left[:])
	b := new(uint256.Int).SetBytes(right[:])
	product := new(uint256.Int).Mul(a, b)

	out := product.Bytes32()
	return out[16:], nil
}
