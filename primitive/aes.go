package primitive

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"github.com/filebazaar/dispute-core/types"
)

const (
	aesKeyLen   = 16
	aesCtrLen   = 16
	aesMaxBlock = 112
)

// ctrKeystream runs AES-128 in CTR-128-BE mode over data with the
// given 16-byte initial counter block, returning a fresh copy (CTR is
// its own inverse, so this serves both encryption and decryption).
func ctrKeystream(key, data, ctr []byte) ([]byte, error) {
	if len(key) != aesKeyLen {
		return nil, types.NewError(types.KindInputShape, "AES key must be %d bytes, got %d", aesKeyLen, len(key))
	}
	if len(ctr) != aesCtrLen {
		return nil, types.NewError(types.KindInputShape, "AES counter must be %d bytes, got %d", aesCtrLen, len(ctr))
	}
	if len(data) > aesMaxBlock {
		return nil, types.NewError(types.KindInputShape, "AES block data must be at most %d bytes, got %d", aesMaxBlock, len(data))
	}
	if len(data) == 0 {
		return []byte{}, nil
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, types.WrapError(types.KindInputShape, err, "failed to initialise AES-128 cipher")
	}

	out := make([]byte, len(data))
	stream := cipher.NewCTR(block, ctr)
	stream.XORKeyStream(out, data)
	return out, nil
}

// AesEncryptBlock implements gate opcode 1: (key[16], data[<=112], ctr[16]).
func AesEncryptBlock(key, data, ctr []byte) ([]byte, error) {
	return ctrKeystream(key, data, ctr)
}

// AesDecryptBlock implements gate opcode 2. CTR mode is symmetric, so
// this is identical to AesEncryptBlock.
func AesDecryptBlock(key, data, ctr []byte) ([]byte, error) {
	return ctrKeystream(key, data, ctr)
}

// EncryptAndPrependIV samples a fresh random 16-byte IV, encrypts data
// under key in CTR mode, and returns iv || ciphertext. Unlike the
// gate-level AesEncryptBlock, this runs a single CTR stream over the
// whole plaintext: the 112-byte cap only bounds what one circuit gate
// may process per call, not this module-level helper.
func EncryptAndPrependIV(data, key []byte) ([]byte, error) {
	iv := make([]byte, aesCtrLen)
	if _, err := rand.Read(iv); err != nil {
		return nil, types.WrapError(types.KindInputShape, err, "failed to sample IV")
	}

	full, err := encryptFullStream(data, key, iv)
	if err != nil {
		return nil, err
	}

	ct := make([]byte, 0, len(iv)+len(full))
	ct = append(ct, iv...)
	ct = append(ct, full...)
	return ct, nil
}

func encryptFullStream(data, key, iv []byte) ([]byte, error) {
	if len(key) != aesKeyLen {
		return nil, types.NewError(types.KindInputShape, "AES key must be %d bytes, got %d", aesKeyLen, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, types.WrapError(types.KindInputShape, err, "failed to initialise AES-128 cipher")
	}
	out := make([]byte, len(data))
	stream := cipher.NewCTR(block, iv)
	stream.XORKeyStream(out, data)
	return out, nil
}

// Decrypt reverses EncryptAndPrependIV: ct is iv || ciphertext.
func Decrypt(ct, key []byte) ([]byte, error) {
	if len(ct) < aesCtrLen {
		return nil, types.NewError(types.KindInputShape, "ciphertext must be at least %d bytes (IV), got %d", aesCtrLen, len(ct))
	}
	iv := ct[:aesCtrLen]
	return encryptFullStream(ct[aesCtrLen:], key, iv)
}
