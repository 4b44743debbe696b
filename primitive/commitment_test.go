package primitive

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommitOpenRoundTrip(t *testing.T) {
	data := []byte("the file's advertised description hash goes here")

	c, err := Commit(data)
	require.NoError(t, err)

	opened, err := Open(c.C, c.O)
	require.NoError(t, err)
	require.Equal(t, data, opened)
}

func TestCommitIsRandomised(t *testing.T) {
	data := []byte("same data, different commitments")

	c1, err := Commit(data)
	require.NoError(t, err)
	c2, err := Commit(data)
	require.NoError(t, err)

	require.NotEqual(t, c1.C, c2.C)
	require.NotEqual(t, c1.O, c2.O)
}

func TestOpenRejectsFlippedOpeningBit(t *testing.T) {
	data := make([]byte, 40)
	_, err := rand.Read(data)
	require.NoError(t, err)

	c, err := Commit(data)
	require.NoError(t, err)

	tampered := append([]byte(nil), c.O...)
	tampered[0] ^= 0x01

	_, err = Open(c.C, tampered)
	require.Error(t, err)
}

func TestCommitHashes(t *testing.T) {
	h1 := make([]byte, 32)
	h2 := make([]byte, 32)
	_, err := rand.Read(h1)
	require.NoError(t, err)
	_, err = rand.Read(h2)
	require.NoError(t, err)

	c, err := CommitHashes(h1, h2)
	require.NoError(t, err)

	opened, err := Open(c.C, c.O)
	require.NoError(t, err)
	require.Equal(t, append(append([]byte{}, h1...), h2...), opened)
}

func TestCommitHashesRejectsWrongLength(t *testing.T) {
	_, err := CommitHashes(make([]byte, 31), make([]byte, 32))
	require.Error(t, err)
}
