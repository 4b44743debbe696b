// Package protocol composes the accumulator, commitment, and circuit
// packages into the messages exchanged during the interactive dispute
// game: the vendor's precontract, the buyer's checks, the dispute
// argument, and the three final-step proof bundles.
package protocol

import (
	"github.com/filebazaar/dispute-core/accumulator"
	"github.com/filebazaar/dispute-core/primitive"
	"github.com/filebazaar/dispute-core/types"
)

// Precontract is the vendor's pre-dispute commitment bundle, produced
// once and never mutated afterwards.
type Precontract struct {
	Ct           []byte
	CircuitBytes []byte
	Description  []byte
	HCt          []byte
	HCircuit     []byte
	Commitment   *primitive.Commitment
	NumBlocks    uint32
	NumGates     int
}

// DisputeArgument is the bundle a disputant submits to the arbitrator.
type DisputeArgument struct {
	Circuit      *types.CompiledCircuit
	Ct           []byte
	OpeningValue []byte
}

// CheckResult is the structured outcome every arbitrator-facing
// protocol builder returns instead of throwing: callers use it to
// decide the dispute without branching on error types.
type CheckResult struct {
	IsValid       bool
	SupportsBuyer bool
	Error         error
}

// FinalStepKind distinguishes the three shapes a dispute's last
// message can take, specialised by where the challenged gate sits in
// the circuit.
type FinalStepKind string

const (
	// CaseGeneric is compute_proofs: the challenged gate is a
	// generic gate in the middle of the circuit.
	CaseGeneric FinalStepKind = "generic"
	// CaseLeftBoundary is compute_proofs_left: the challenged gate
	// is the first non-input gate.
	CaseLeftBoundary FinalStepKind = "left-boundary"
	// CaseRightBoundary is compute_proof_right: the challenged gate
	// is the terminal equality-check gate.
	CaseRightBoundary FinalStepKind = "right-boundary"
)

// FinalStep is the last message sent in the interactive bisection
// dispute. Which proof fields are populated depends on Kind.
type FinalStep struct {
	Kind FinalStepKind

	// Gate and Values are populated for CaseGeneric and
	// CaseLeftBoundary: the challenged gate and its resolved son
	// inputs (both witness- and constant-referenced).
	Gate   *types.Gate
	Values [][]byte

	// CurrAcc is the accumulator of the witness strip
	// values[num_blocks..=challenge], populated for CaseGeneric and
	// CaseLeftBoundary.
	CurrAcc []byte

	// Proof1 opens the challenged gate's encoding against h_circuit
	// (CaseGeneric, CaseLeftBoundary), or opens the terminal witness
	// output against CurrAcc's slice (CaseRightBoundary).
	Proof1 accumulator.Proof
	// Proof2 opens the challenged gate's input-strip sons against
	// h_ct. Populated for CaseGeneric and CaseLeftBoundary.
	Proof2 accumulator.Proof
	// Proof3 opens the challenged gate's non-input sons against
	// CurrAcc. Empty for CaseLeftBoundary (no such sons exist) and
	// CaseRightBoundary.
	Proof3 accumulator.Proof
	// ProofExt ties CurrAcc to the previous mid-game accumulator.
	// Empty for CaseRightBoundary.
	ProofExt accumulator.Proof
}
