package protocol

import (
	"bytes"

	"github.com/filebazaar/dispute-core/accumulator"
	"github.com/filebazaar/dispute-core/circuit"
	"github.com/filebazaar/dispute-core/primitive"
	"github.com/filebazaar/dispute-core/types"
)

const ctBlockSize = 64

// hCircuit accumulates a compiled circuit's gates under their exact
// contract-visible ABI encoding — the construction Gate.AbiEncoded is
// defined for, and the one h_circuit must hash over (spec §6).
func hCircuit(circ *types.CompiledCircuit) ([]byte, [][]byte, error) {
	abiGates, err := circ.ToAbiEncoded()
	if err != nil {
		return nil, nil, err
	}
	return accumulator.Acc(abiGates), abiGates, nil
}

// ComputePrecontractValues runs the vendor's side of precontract
// setup: encrypts file under key, compiles the circuit the buyer will
// later be able to recompile, and commits to both accumulator roots.
func ComputePrecontractValues(file, key []byte) (*Precontract, error) {
	description := primitive.Sha256(file)

	ct, err := primitive.EncryptAndPrependIV(file, key)
	if err != nil {
		return nil, err
	}

	circ, err := circuit.Compile(uint32(len(ct)), description)
	if err != nil {
		return nil, err
	}

	hCt, err := accumulator.AccCt(ct, ctBlockSize)
	if err != nil {
		return nil, err
	}

	hCirc, _, err := hCircuit(circ)
	if err != nil {
		return nil, err
	}

	commitment, err := primitive.CommitHashes(hCirc, hCt)
	if err != nil {
		return nil, err
	}

	circuitBytes, err := circ.Marshal()
	if err != nil {
		return nil, err
	}

	return &Precontract{
		Ct:           ct,
		CircuitBytes: circuitBytes,
		Description:  description,
		HCt:          hCt,
		HCircuit:     hCirc,
		Commitment:   commitment,
		NumBlocks:    circ.NumBlocks,
		NumGates:     circ.NumGates(),
	}, nil
}

// CheckPrecontract is the buyer's side: recompile the circuit from
// the public (len(ct), description) pair, recompute both accumulator
// roots, and verify the vendor's commitment opens to their
// concatenation.
func CheckPrecontract(pre *Precontract) CheckResult {
	circ, err := circuit.Compile(uint32(len(pre.Ct)), pre.Description)
	if err != nil {
		return CheckResult{Error: err}
	}

	hCt, err := accumulator.AccCt(pre.Ct, ctBlockSize)
	if err != nil {
		return CheckResult{Error: err}
	}

	hCirc, _, err := hCircuit(circ)
	if err != nil {
		return CheckResult{Error: err}
	}

	opened, err := primitive.Open(pre.Commitment.C, pre.Commitment.O)
	if err != nil {
		return CheckResult{IsValid: false}
	}

	expected := make([]byte, 0, 64)
	expected = append(expected, hCirc...)
	expected = append(expected, hCt...)

	if len(opened) != 64 || !bytes.Equal(opened, expected) {
		return CheckResult{IsValid: false}
	}
	return CheckResult{IsValid: true}
}

// CheckReceivedCtKey is the buyer's sanity check on a received key,
// independent of the dispute game: decrypt and compare against the
// advertised description hash.
func CheckReceivedCtKey(ct, key, description []byte) CheckResult {
	pt, err := primitive.Decrypt(ct, key)
	if err != nil {
		return CheckResult{IsValid: false, Error: err}
	}
	if !bytes.Equal(primitive.Sha256(pt), description) {
		return CheckResult{IsValid: false}
	}
	return CheckResult{IsValid: true}
}

// MakeArgument bundles the pieces a disputant submits to the
// arbitrator.
func MakeArgument(circ *types.CompiledCircuit, ct, openingValue []byte) *DisputeArgument {
	return &DisputeArgument{Circuit: circ, Ct: ct, OpeningValue: openingValue}
}

// CheckArgument recomputes both accumulator roots from the bundled
// circuit and ciphertext, verifies they're what the stored commitment
// c opens to, then decrypts with key and reports whether the result
// supports the buyer's dispute.
func CheckArgument(arg *DisputeArgument, c, key, description []byte) CheckResult {
	hCt, err := accumulator.AccCt(arg.Ct, ctBlockSize)
	if err != nil {
		return CheckResult{Error: err}
	}

	hCirc, _, err := hCircuit(arg.Circuit)
	if err != nil {
		return CheckResult{Error: err}
	}

	opened, err := primitive.Open(c, arg.OpeningValue)
	if err != nil {
		return CheckResult{IsValid: false}
	}

	expected := make([]byte, 0, 64)
	expected = append(expected, hCirc...)
	expected = append(expected, hCt...)

	if len(opened) != 64 || !bytes.Equal(opened, expected) {
		return CheckResult{IsValid: false}
	}

	pt, err := primitive.Decrypt(arg.Ct, key)
	if err != nil {
		return CheckResult{IsValid: false, Error: err}
	}

	supportsBuyer := !bytes.Equal(primitive.Sha256(pt), description)
	return CheckResult{IsValid: true, SupportsBuyer: supportsBuyer}
}

// Hpre is the mid-game bisection answer: a succinct commitment to the
// slice of the witness between the input strip and the current
// challenge point, inclusive.
func Hpre(ev *types.EvaluatedCircuit, numBlocks, challenge uint32) []byte {
	return accumulator.Acc(ev.Values[numBlocks : challenge+1])
}

// resolveSons resolves a gate's sons to their concrete byte values,
// following witness references into ev.Values and constant references
// into ev.Constants.
func resolveSons(ev *types.EvaluatedCircuit, sons []uint32) [][]byte {
	values := make([][]byte, len(sons))
	for i, son := range sons {
		if types.IsConstantIdx(son) {
			values[i] = ev.Constants[types.ConstantIdxToArrayIdx(son)]
		} else {
			values[i] = ev.Values[son]
		}
	}
	return values
}

// splitSonIndices partitions a gate's non-constant sons into those
// that land in the input strip (< numBlocks, opened against h_ct) and
// those that land beyond it (opened against the current mid-game
// accumulator, rebased to that slice's own indexing).
func splitSonIndices(sons []uint32, numBlocks uint32) (inInputs, beyond []int) {
	for _, son := range sons {
		if types.IsConstantIdx(son) {
			continue
		}
		if son < numBlocks {
			inInputs = append(inInputs, int(son))
		} else {
			beyond = append(beyond, int(son-numBlocks))
		}
	}
	return inInputs, beyond
}

// ComputeProofs builds the final-step bundle for case 8a: the
// challenged gate is a generic gate strictly between the input strip
// and the terminal gate.
func ComputeProofs(circ *types.CompiledCircuit, ev *types.EvaluatedCircuit, ctBlocks [][]byte, numBlocks, challenge uint32) (*FinalStep, error) {
	g := circ.Gates[challenge]
	values := resolveSons(ev, g.Sons)

	strip := ev.Values[numBlocks : challenge+1]
	currAcc := accumulator.Acc(strip)

	_, abiGates, err := hCircuit(circ)
	if err != nil {
		return nil, err
	}
	proof1, err := accumulator.Prove(abiGates, []int{int(challenge)})
	if err != nil {
		return nil, err
	}

	inInputs, beyond := splitSonIndices(g.Sons, numBlocks)

	proof2, err := accumulator.Prove(ctBlocks, inInputs)
	if err != nil {
		return nil, err
	}

	proof3, err := accumulator.Prove(strip, beyond)
	if err != nil {
		return nil, err
	}

	proofExt, err := accumulator.ProveExt(strip)
	if err != nil {
		return nil, err
	}

	return &FinalStep{
		Kind:     CaseGeneric,
		Gate:     &g,
		Values:   values,
		CurrAcc:  currAcc,
		Proof1:   proof1,
		Proof2:   proof2,
		Proof3:   proof3,
		ProofExt: proofExt,
	}, nil
}

// ComputeProofsLeft builds the final-step bundle for case 8b: the
// challenged gate is the first non-input gate, so every non-constant
// son lives in the input strip.
func ComputeProofsLeft(circ *types.CompiledCircuit, ev *types.EvaluatedCircuit, ctBlocks [][]byte, numBlocks uint32) (*FinalStep, error) {
	g := circ.Gates[numBlocks]
	values := resolveSons(ev, g.Sons)

	strip := ev.Values[numBlocks : numBlocks+1]
	currAcc := accumulator.Acc(strip)

	_, abiGates, err := hCircuit(circ)
	if err != nil {
		return nil, err
	}
	proof1, err := accumulator.Prove(abiGates, []int{int(numBlocks)})
	if err != nil {
		return nil, err
	}

	inInputs, _ := splitSonIndices(g.Sons, numBlocks)
	proof2, err := accumulator.Prove(ctBlocks, inInputs)
	if err != nil {
		return nil, err
	}

	proofExt, err := accumulator.ProveExt(strip)
	if err != nil {
		return nil, err
	}

	return &FinalStep{
		Kind:     CaseLeftBoundary,
		Gate:     &g,
		Values:   values,
		CurrAcc:  currAcc,
		Proof1:   proof1,
		Proof2:   proof2,
		Proof3:   nil,
		ProofExt: proofExt,
	}, nil
}

// ComputeProofRight builds the final-step bundle for case 8c: the
// challenged gate is the terminal equality-check gate, the last
// element of the witness.
func ComputeProofRight(circ *types.CompiledCircuit, ev *types.EvaluatedCircuit, numBlocks uint32) (*FinalStep, error) {
	numGates := uint32(len(circ.Gates))
	tail := ev.Values[numBlocks:]
	lastIdx := int(numGates - numBlocks - 1)

	proof1, err := accumulator.Prove(tail, []int{lastIdx})
	if err != nil {
		return nil, err
	}

	return &FinalStep{
		Kind:   CaseRightBoundary,
		Proof1: proof1,
	}, nil
}
