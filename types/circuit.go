package types

import (
	"github.com/fxamacker/cbor/v2"
)

// ConstantSlot keeps the fixed-vs-unbound distinction of a constants
// table entry explicit, rather than collapsing it into a nil-able byte
// slice: a slot is either Fixed (supplied at compile time, e.g. the
// description) or left Unbound (supplied at evaluation time, e.g. the
// shared key).
type ConstantSlot struct {
	Fixed   []byte `cbor:"fixed"`
	Unbound bool   `cbor:"unbound"`
}

// FixedSlot builds a compile-time-known constants-table entry.
func FixedSlot(value []byte) ConstantSlot {
	return ConstantSlot{Fixed: value}
}

// UnboundSlot builds a constants-table entry to be supplied later, at
// evaluation time.
func UnboundSlot() ConstantSlot {
	return ConstantSlot{Unbound: true}
}

// CompiledCircuit is the output of the circuit compiler: a gate DAG, a
// parallel constants table, and the sizing metadata needed to split a
// ciphertext and evaluate the circuit against it.
type CompiledCircuit struct {
	Gates     []Gate         `cbor:"gates"`
	Constants []ConstantSlot `cbor:"constants"`
	Version   uint32         `cbor:"version"`
	BlockSize uint32         `cbor:"block_size"`
	NumBlocks uint32         `cbor:"num_blocks"`
}

// NumGates returns the number of gates in the circuit.
func (c *CompiledCircuit) NumGates() int {
	return len(c.Gates)
}

// BindConstants supplies a full flat table of constant values,
// positionally, ignoring which slots were already fixed. Used when a
// caller already holds every constant value (e.g. a recompiling buyer
// who also knows the key).
func (c *CompiledCircuit) BindConstants(constants [][]byte) []ConstantSlot {
	bound := make([]ConstantSlot, len(constants))
	for i, v := range constants {
		bound[i] = FixedSlot(v)
	}
	return bound
}

// BindMissingConstants fills in only the Unbound slots, in order, from
// constants, leaving already-Fixed slots untouched. This lets a party
// bind the shared key at evaluation time without re-specifying the
// description or other compile-time constants.
func (c *CompiledCircuit) BindMissingConstants(constants [][]byte) []ConstantSlot {
	bound := make([]ConstantSlot, len(c.Constants))
	i := 0
	for slotIdx, slot := range c.Constants {
		if !slot.Unbound {
			bound[slotIdx] = slot
			continue
		}
		bound[slotIdx] = FixedSlot(constants[i])
		i++
	}
	return bound
}

// ToBytesArray reproduces the reference prototype's
// to_bytes_array: a leading big-endian version tag, followed by one
// CBOR-encoded byte string per gate, then one CBOR-encoded byte string
// per constant slot. It is not what h_circuit hashes over: h_circuit
// accumulates ToAbiEncoded.
func (c *CompiledCircuit) ToBytesArray() ([][]byte, error) {
	res := make([][]byte, 0, 1+len(c.Gates)+len(c.Constants))

	versionTag := []byte{
		byte(c.Version >> 24), byte(c.Version >> 16), byte(c.Version >> 8), byte(c.Version),
	}
	res = append(res, versionTag)

	for _, g := range c.Gates {
		buf, err := cbor.Marshal(g)
		if err != nil {
			return nil, WrapError(KindDecodeError, err, "failed to encode gate")
		}
		res = append(res, buf)
	}

	for _, slot := range c.Constants {
		buf, err := cbor.Marshal(slot)
		if err != nil {
			return nil, WrapError(KindDecodeError, err, "failed to encode constant slot")
		}
		res = append(res, buf)
	}

	return res, nil
}

// ToAbiEncoded returns the per-gate Ethereum-ABI encoding of every
// gate in the circuit, in order — the sequence prove()/verify() open
// against for h_circuit.
func (c *CompiledCircuit) ToAbiEncoded() ([][]byte, error) {
	res := make([][]byte, len(c.Gates))
	for i, g := range c.Gates {
		enc, err := g.AbiEncoded()
		if err != nil {
			return nil, WrapError(KindDecodeError, err, "failed to ABI-encode gate %d", i)
		}
		res[i] = enc
	}
	return res, nil
}

// Marshal serialises the circuit with the module's self-describing
// wire schema (CBOR).
func (c *CompiledCircuit) Marshal() ([]byte, error) {
	buf, err := cbor.Marshal(c)
	if err != nil {
		return nil, WrapError(KindDecodeError, err, "failed to encode compiled circuit")
	}
	return buf, nil
}

// UnmarshalCompiledCircuit reverses Marshal.
func UnmarshalCompiledCircuit(data []byte) (*CompiledCircuit, error) {
	var c CompiledCircuit
	if err := cbor.Unmarshal(data, &c); err != nil {
		return nil, WrapError(KindDecodeError, err, "failed to decode compiled circuit")
	}
	return &c, nil
}
