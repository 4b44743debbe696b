package circuit

import (
	"github.com/filebazaar/dispute-core/gate"
	"github.com/filebazaar/dispute-core/types"
)

// Evaluate runs circuit against a prefix of input values (the IV and
// ciphertext blocks) and a concrete, fully-bound constants table,
// producing the complete witness vector.
func Evaluate(circ *types.CompiledCircuit, inputs [][]byte, constants [][]byte) (*types.EvaluatedCircuit, error) {
	witness := make(types.Witness, 0, len(circ.Gates))

	for i, in := range inputs {
		if i >= len(circ.Gates) {
			return nil, types.NewError(types.KindCtTooLarge, "circuit has only %d gates but got %d input blocks", len(circ.Gates), len(inputs))
		}
		if !circ.Gates[i].IsDummy() {
			return nil, types.NewError(types.KindCtTooLarge, "gate %d is not an input slot but an input block was supplied for it", i)
		}
		witness = append(witness, in)
	}

	for i := len(inputs); i < len(circ.Gates); i++ {
		g := circ.Gates[i]
		if g.IsDummy() {
			return nil, types.NewError(types.KindCtTooSmall, "gate %d expects an input block that was not supplied", i)
		}

		resolved := make([][]byte, len(g.Sons))
		for j, son := range g.Sons {
			if types.IsConstantIdx(son) {
				idx := types.ConstantIdxToArrayIdx(son)
				if int(idx) >= len(constants) {
					return nil, types.NewError(types.KindInputShape, "gate %d references constant %d out of range", i, idx)
				}
				resolved[j] = constants[idx]
			} else {
				if int(son) >= len(witness) {
					return nil, types.NewError(types.KindInputShape, "gate %d references witness %d out of range", i, son)
				}
				resolved[j] = witness[son]
			}
		}

		prim, err := gate.Lookup(circ.Version, g.Opcode)
		if err != nil {
			return nil, err
		}
		out, err := prim(resolved)
		if err != nil {
			return nil, err
		}
		witness = append(witness, out)
	}

	return &types.EvaluatedCircuit{Values: witness, Constants: constants}, nil
}
