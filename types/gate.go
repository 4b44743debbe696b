package types

import (
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ConstantFlag marks the high bit of a gate son reference as a
// constant-table index rather than a witness index.
const ConstantFlag uint32 = 1 << 31

// DummyOpcode marks a gate as an input-slot placeholder.
const DummyOpcode uint32 = math.MaxUint32

// Gate is one node of the computation DAG: an opcode plus an ordered
// list of sons, each either a witness reference (index strictly less
// than this gate's own index) or a constant reference (high bit set).
type Gate struct {
	Opcode uint32   `cbor:"opcode"`
	Sons   []uint32 `cbor:"sons"`
}

// Dummy returns an input-slot placeholder gate.
func Dummy() Gate {
	return Gate{Opcode: DummyOpcode, Sons: nil}
}

// IsDummy reports whether g is an input-slot placeholder.
func (g Gate) IsDummy() bool {
	return g.Opcode == DummyOpcode
}

// Flatten returns [opcode, sons...], the layout AbiEncoded packs.
func (g Gate) Flatten() []uint32 {
	res := make([]uint32, 0, 1+len(g.Sons))
	res = append(res, g.Opcode)
	res = append(res, g.Sons...)
	return res
}

var gateArrayABI abi.Arguments

func init() {
	uint256Arr, err := abi.NewType("uint256[]", "", nil)
	if err != nil {
		panic(err)
	}
	gateArrayABI = abi.Arguments{{Type: uint256Arr}}
}

// AbiEncoded packs [opcode, sons...] as the Ethereum-ABI encoding of a
// dynamic uint256[]. This exact byte layout is contract-visible (it is
// what h_circuit hashes over) and must never be replaced by a
// hand-rolled encoding.
func (g Gate) AbiEncoded() ([]byte, error) {
	flat := g.Flatten()
	vals := make([]*big.Int, len(flat))
	for i, x := range flat {
		vals[i] = new(big.Int).SetUint64(uint64(x))
	}
	return gateArrayABI.Pack(vals)
}

// ArrayIdxToConstantIdx tags a plain constants-table index as a
// constant reference suitable for use as a gate son.
func ArrayIdxToConstantIdx(arrayIdx uint32) uint32 {
	return ConstantFlag | arrayIdx
}

// ConstantIdxToArrayIdx strips the constant-flag high bit, returning
// the underlying constants-table index.
func ConstantIdxToArrayIdx(constantIdx uint32) uint32 {
	return ConstantFlag ^ constantIdx
}

// IsConstantIdx reports whether a gate-son reference points into the
// constants table rather than at another witness position.
func IsConstantIdx(idx uint32) bool {
	return ConstantFlag&idx != 0
}
