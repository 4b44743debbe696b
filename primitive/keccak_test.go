package primitive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeccak256OfEmptyInputHasKnownLength(t *testing.T) {
	got := Keccak256([]byte{})
	require.Len(t, got, 32)
	require.NotEqual(t, make([]byte, 32), got)
}

func TestKeccak256IsDeterministicAndVariadic(t *testing.T) {
	a := Keccak256([]byte("hello"))
	b := Keccak256([]byte("hello"))
	require.Equal(t, a, b)

	c := Keccak256([]byte("hel"), []byte("lo"))
	require.Equal(t, a, c)

	d := Keccak256([]byte("world"))
	require.NotEqual(t, a, d)
}
