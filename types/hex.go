// Package types holds the value objects that flow through the dispute
// pipeline: gates, compiled circuits and witnesses, plus the hex
// helpers and the error type shared by the other packages.
package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexToBytes decodes a 0x-prefixed (or bare) lower-case hex string.
func HexToBytes(hexStr string) ([]byte, error) {
	if strings.HasPrefix(hexStr, "0x") {
		hexStr = hexStr[2:]
	}
	return hex.DecodeString(hexStr)
}

// BytesToHex encodes data as a 0x-prefixed lower-case hex string.
func BytesToHex(data []byte) string {
	return "0x" + hex.EncodeToString(data)
}

// HexBytes is a byte string that marshals as a 0x-prefixed hex string.
type HexBytes []byte

func (b HexBytes) String() string {
	return BytesToHex(b)
}

func (b HexBytes) MarshalJSON() ([]byte, error) {
	s := BytesToHex(b)
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	out = append(out, s...)
	out = append(out, '"')
	return out, nil
}

func (b *HexBytes) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid hex string: %s", data)
	}
	bz, err := HexToBytes(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*b = bz
	return nil
}
