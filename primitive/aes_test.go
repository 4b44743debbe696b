package primitive

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAesCtrInvolution(t *testing.T) {
	for i := 0; i < 200; i++ {
		msgLen := i % 300
		msg := make([]byte, msgLen)
		key := make([]byte, aesKeyLen)
		_, err := rand.Read(msg)
		require.NoError(t, err)
		_, err = rand.Read(key)
		require.NoError(t, err)

		ct, err := EncryptAndPrependIV(msg, key)
		require.NoError(t, err)
		require.Len(t, ct, msgLen+aesCtrLen)

		pt, err := Decrypt(ct, key)
		require.NoError(t, err)
		require.Equal(t, msg, pt)
	}
}

func TestAesEncryptBlockRejectsOversizeData(t *testing.T) {
	key := make([]byte, aesKeyLen)
	ctr := make([]byte, aesCtrLen)
	data := make([]byte, aesMaxBlock+1)

	_, err := AesEncryptBlock(key, data, ctr)
	require.Error(t, err)
}

func TestAesEncryptBlockRejectsBadKeyLength(t *testing.T) {
	_, err := AesEncryptBlock(make([]byte, 15), make([]byte, 4), make([]byte, aesCtrLen))
	require.Error(t, err)
}

func TestAesEncryptDecryptBlockAreIdentical(t *testing.T) {
	key := make([]byte, aesKeyLen)
	ctr := make([]byte, aesCtrLen)
	data := []byte("sixteen byte msg")

	enc, err := AesEncryptBlock(key, data, ctr)
	require.NoError(t, err)
	dec, err := AesDecryptBlock(key, enc, ctr)
	require.NoError(t, err)
	require.Equal(t, data, dec)
}

func TestDecryptRejectsShortCiphertext(t *testing.T) {
	_, err := Decrypt(make([]byte, 8), make([]byte, aesKeyLen))
	require.Error(t, err)
}
