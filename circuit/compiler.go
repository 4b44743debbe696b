// Package circuit compiles and evaluates the fixed decrypt-hash-compare
// gate DAG: AES-128-CTR decryption of a ciphertext, followed by a
// SHA-256 hash of the result, followed by an equality check against an
// advertised plaintext-description hash.
package circuit

import (
	"encoding/binary"

	"github.com/filebazaar/dispute-core/types"
)

const blockSize uint32 = 64

func beUint16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func beUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// Compile builds the decrypt-hash-compare circuit for a ciphertext of
// ctSize bytes (including its 16-byte IV) advertised against
// description (the expected plaintext hash). Fails with ct-too-small
// if ctSize leaves fewer than one plaintext block.
func Compile(ctSize uint32, description []byte) (*types.CompiledCircuit, error) {
	if ctSize < 16 {
		return nil, types.NewError(types.KindCtTooSmall, "ciphertext of %d bytes is shorter than the IV", ctSize)
	}

	ptSize := ctSize - 16
	m := 1 + ptSize/blockSize
	if ptSize%blockSize != 0 {
		m++
	}
	if m < 2 {
		return nil, types.NewError(types.KindCtTooSmall, "ciphertext's length should be at least 17 bytes (incl. IV), got %d", ctSize)
	}

	if m == 2 {
		return compileOneBlock(ctSize, description), nil
	}
	return compileMultiBlock(m, ptSize, description), nil
}

func compileOneBlock(ctSize uint32, description []byte) *types.CompiledCircuit {
	gates := []types.Gate{
		types.Dummy(),
		types.Dummy(),
		{Opcode: 2, Sons: []uint32{types.ArrayIdxToConstantIdx(3), 1, 0}},
		{Opcode: 7, Sons: []uint32{2, types.ArrayIdxToConstantIdx(2)}},
		{Opcode: 5, Sons: []uint32{3, types.ArrayIdxToConstantIdx(1)}},
	}

	constants := []types.ConstantSlot{
		types.FixedSlot(beUint16(4)),
		types.FixedSlot(description),
		types.FixedSlot(beUint64(uint64(ctSize - 16))),
		types.UnboundSlot(),
	}

	return &types.CompiledCircuit{
		Gates:     gates,
		Constants: constants,
		Version:   0,
		BlockSize: blockSize,
		NumBlocks: 2,
	}
}

// compileMultiBlock lays out 4m-3 gates in four contiguous strips:
// dummies, counter-increment adds, AES decrypts, and a SHA-256 chain
// ending in the padded final compression and the comparison gate.
func compileMultiBlock(m, ptSize uint32, description []byte) *types.CompiledCircuit {
	gates := make([]types.Gate, 0, 4*m-3)

	for i := uint32(0); i < m; i++ {
		gates = append(gates, types.Dummy())
	}

	// counter increment gates: first reads the IV (gate 0), each
	// subsequent one reads the previous counter-increment gate.
	gates = append(gates, types.Gate{Opcode: 3, Sons: []uint32{0, types.ArrayIdxToConstantIdx(0)}})
	for i := m; i < 2*m-3; i++ {
		gates = append(gates, types.Gate{Opcode: 3, Sons: []uint32{i, types.ArrayIdxToConstantIdx(0)}})
	}

	// AES decryption gates: first uses the IV as counter directly.
	gates = append(gates, types.Gate{Opcode: 2, Sons: []uint32{types.ArrayIdxToConstantIdx(3), 1, 0}})
	for i := uint32(2); i < m; i++ {
		gates = append(gates, types.Gate{Opcode: 2, Sons: []uint32{types.ArrayIdxToConstantIdx(3), i, i + m - 2}})
	}

	// SHA-256 chain: first compression has no previous chaining value.
	gates = append(gates, types.Gate{Opcode: 0, Sons: []uint32{2*m - 2}})
	for i := 3*m - 2; i < 4*m-5; i++ {
		gates = append(gates, types.Gate{Opcode: 0, Sons: []uint32{i - 1, i - m + 1}})
	}
	// final compression applies the length padding.
	gates = append(gates, types.Gate{Opcode: 7, Sons: []uint32{4*m - 6, 3*m - 4, types.ArrayIdxToConstantIdx(2)}})

	// final comparison against the advertised description.
	gates = append(gates, types.Gate{Opcode: 5, Sons: []uint32{4*m - 5, types.ArrayIdxToConstantIdx(1)}})

	constants := []types.ConstantSlot{
		types.FixedSlot(beUint16(4)),
		types.FixedSlot(description),
		types.FixedSlot(beUint64(uint64(ptSize))),
		types.UnboundSlot(),
	}

	return &types.CompiledCircuit{
		Gates:     gates,
		Constants: constants,
		Version:   0,
		BlockSize: blockSize,
		NumBlocks: m,
	}
}
