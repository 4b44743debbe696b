package gate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupKnownOpcodes(t *testing.T) {
	for op := uint32(0); op <= OpSha256CompressFinal; op++ {
		prim, err := Lookup(0, op)
		require.NoError(t, err)
		require.NotNil(t, prim)
	}
}

func TestLookupRejectsUnknownOpcodeOrVersion(t *testing.T) {
	_, err := Lookup(0, 8)
	require.Error(t, err)

	_, err = Lookup(1, 0)
	require.Error(t, err)
}

func TestEqualGateDispatch(t *testing.T) {
	prim, err := Lookup(0, OpEqual)
	require.NoError(t, err)

	out, err := prim([][]byte{{1, 2}, {1, 2}})
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, out)
}
