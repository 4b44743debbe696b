package primitive

import "github.com/filebazaar/dispute-core/types"

// SplitCtBlocks splits ct into its IV (always the first 16 bytes)
// followed by consecutive blockSize-byte plaintext blocks, the final
// block possibly shorter. Fails with input-shape if ct is shorter
// than the IV.
func SplitCtBlocks(ct []byte, blockSize int) ([][]byte, error) {
	const ivLen = 16
	if len(ct) < ivLen {
		return nil, types.NewError(types.KindInputShape, "ciphertext must be at least %d bytes (IV), got %d", ivLen, len(ct))
	}

	blocks := [][]byte{ct[:ivLen]}
	rest := ct[ivLen:]
	for len(rest) > 0 {
		n := blockSize
		if n > len(rest) {
			n = len(rest)
		}
		blocks = append(blocks, rest[:n])
		rest = rest[n:]
	}

	return blocks, nil
}
