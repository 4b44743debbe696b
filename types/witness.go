package types

// Witness is the ordered sequence of byte strings produced by
// evaluating a circuit: positions 0..num_blocks are the input blocks
// (IV first, then ciphertext blocks); positions at or beyond
// num_blocks are computed gate outputs, one per non-dummy gate.
type Witness [][]byte

// EvaluatedCircuit snapshots a circuit evaluation for later proof
// construction: the full witness vector plus the flat constants table
// it was evaluated against (so a proof builder can re-resolve
// constant-referenced sons without re-running the evaluator).
type EvaluatedCircuit struct {
	Values    Witness
	Constants [][]byte
}
