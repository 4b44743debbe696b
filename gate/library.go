// Package gate maps a circuit's version number and per-gate opcode to
// the concrete primitive that implements it, under the uniform
// calling convention every gate shares: a sequence of byte-string
// inputs in, a single byte-string output.
package gate

import (
	"github.com/filebazaar/dispute-core/primitive"
	"github.com/filebazaar/dispute-core/types"
)

// Primitive is the uniform calling convention every gate opcode
// implements.
type Primitive func(inputs [][]byte) ([]byte, error)

// Opcodes, version 0.
const (
	OpSha256Compress      uint32 = 0
	OpAesEncryptBlock     uint32 = 1
	OpAesDecryptBlock     uint32 = 2
	OpBinaryAdd           uint32 = 3
	OpBinaryMult          uint32 = 4
	OpEqual               uint32 = 5
	OpConcatBytes         uint32 = 6
	OpSha256CompressFinal uint32 = 7
)

func aesEncrypt(inputs [][]byte) ([]byte, error) {
	if len(inputs) != 3 {
		return nil, types.NewError(types.KindInputShape, "aes_encrypt_block needs exactly 3 inputs, got %d", len(inputs))
	}
	return primitive.AesEncryptBlock(inputs[0], inputs[1], inputs[2])
}

func aesDecrypt(inputs [][]byte) ([]byte, error) {
	if len(inputs) != 3 {
		return nil, types.NewError(types.KindInputShape, "aes_decrypt_block needs exactly 3 inputs, got %d", len(inputs))
	}
	return primitive.AesDecryptBlock(inputs[0], inputs[1], inputs[2])
}

// versionZero is the version-0 opcode table, ordered by opcode value.
var versionZero = []Primitive{
	OpSha256Compress:      primitive.Sha256Compress,
	OpAesEncryptBlock:     aesEncrypt,
	OpAesDecryptBlock:     aesDecrypt,
	OpBinaryAdd:           primitive.BinaryAdd,
	OpBinaryMult:          primitive.BinaryMult,
	OpEqual:               primitive.Equal,
	OpConcatBytes:         primitive.ConcatBytes,
	OpSha256CompressFinal: primitive.Sha256CompressFinal,
}

// Lookup returns the primitive implementing opcode under the given
// circuit version.
func Lookup(version uint32, opcode uint32) (Primitive, error) {
	if version != 0 {
		return nil, types.NewError(types.KindInputShape, "unsupported circuit version %d", version)
	}
	if int(opcode) >= len(versionZero) {
		return nil, types.NewError(types.KindInputShape, "unknown opcode %d for version %d", opcode, version)
	}
	return versionZero[opcode], nil
}
