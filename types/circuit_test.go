package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBindMissingConstants(t *testing.T) {
	c := &CompiledCircuit{
		Constants: []ConstantSlot{
			FixedSlot([]byte{0x01}),
			UnboundSlot(),
			FixedSlot([]byte{0x02}),
			UnboundSlot(),
		},
	}

	bound := c.BindMissingConstants([][]byte{{0xaa}, {0xbb}})
	require.Equal(t, []byte{0x01}, bound[0].Fixed)
	require.Equal(t, []byte{0xaa}, bound[1].Fixed)
	require.Equal(t, []byte{0x02}, bound[2].Fixed)
	require.Equal(t, []byte{0xbb}, bound[3].Fixed)
}

func TestCompiledCircuitMarshalRoundTrip(t *testing.T) {
	c := &CompiledCircuit{
		Gates: []Gate{
			Dummy(),
			{Opcode: 5, Sons: []uint32{0, ArrayIdxToConstantIdx(0)}},
		},
		Constants: []ConstantSlot{FixedSlot([]byte{0x01, 0x02})},
		Version:   0,
		BlockSize: 64,
		NumBlocks: 1,
	}

	buf, err := c.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalCompiledCircuit(buf)
	require.NoError(t, err)
	require.Equal(t, c.Gates, decoded.Gates)
	require.Equal(t, c.Constants, decoded.Constants)
	require.Equal(t, c.NumBlocks, decoded.NumBlocks)
}

func TestToBytesArrayLength(t *testing.T) {
	c := &CompiledCircuit{
		Gates:     []Gate{Dummy(), {Opcode: 5, Sons: []uint32{0, 0}}},
		Constants: []ConstantSlot{FixedSlot([]byte{0x01})},
		Version:   0,
	}

	arr, err := c.ToBytesArray()
	require.NoError(t, err)
	require.Len(t, arr, 1+len(c.Gates)+len(c.Constants))
}
