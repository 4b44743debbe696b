package protocol

import (
	"crypto/rand"
	"testing"

	"github.com/filebazaar/dispute-core/accumulator"
	"github.com/filebazaar/dispute-core/circuit"
	"github.com/filebazaar/dispute-core/primitive"
	"github.com/stretchr/testify/require"
)

func honestPrecontract(t *testing.T, fileLen int) ([]byte, []byte, *Precontract) {
	t.Helper()

	file := make([]byte, fileLen)
	key := make([]byte, 16)
	_, err := rand.Read(file)
	require.NoError(t, err)
	_, err = rand.Read(key)
	require.NoError(t, err)

	pre, err := ComputePrecontractValues(file, key)
	require.NoError(t, err)

	return file, key, pre
}

func TestDisputePathHonest(t *testing.T) {
	_, key, pre := honestPrecontract(t, 200)

	checkResult := CheckPrecontract(pre)
	require.NoError(t, checkResult.Error)
	require.True(t, checkResult.IsValid)

	circ, err := circuit.Compile(uint32(len(pre.Ct)), pre.Description)
	require.NoError(t, err)

	arg := MakeArgument(circ, pre.Ct, pre.Commitment.O)
	argResult := CheckArgument(arg, pre.Commitment.C, key, pre.Description)
	require.NoError(t, argResult.Error)
	require.True(t, argResult.IsValid)
	require.False(t, argResult.SupportsBuyer)
}

func TestDisputePathWrongDescriptionSupportsBuyer(t *testing.T) {
	_, key, pre := honestPrecontract(t, 200)

	circ, err := circuit.Compile(uint32(len(pre.Ct)), pre.Description)
	require.NoError(t, err)

	arg := MakeArgument(circ, pre.Ct, pre.Commitment.O)

	wrongDescription := make([]byte, 32)
	copy(wrongDescription, pre.Description)
	wrongDescription[0] ^= 0xff

	argResult := CheckArgument(arg, pre.Commitment.C, key, wrongDescription)
	require.NoError(t, argResult.Error)
	require.True(t, argResult.IsValid)
	require.True(t, argResult.SupportsBuyer)
}

func TestCheckPrecontractFailsWithTamperedCiphertext(t *testing.T) {
	_, _, pre := honestPrecontract(t, 200)
	pre.Ct[0] ^= 0xff

	require.False(t, CheckPrecontract(pre).IsValid)
}

func TestCheckReceivedCtKey(t *testing.T) {
	file, key, pre := honestPrecontract(t, 80)

	result := CheckReceivedCtKey(pre.Ct, key, pre.Description)
	require.True(t, result.IsValid)

	badKey := append([]byte(nil), key...)
	badKey[0] ^= 0xff
	result = CheckReceivedCtKey(pre.Ct, badKey, pre.Description)
	require.False(t, result.IsValid)

	_ = file
}

func evaluatedAndCompiled(t *testing.T, fileLen int) (*Precontract, []byte, []byte) {
	t.Helper()
	file, key, pre := honestPrecontract(t, fileLen)
	_ = file
	return pre, key, pre.Description
}

func TestComputeProofsE5(t *testing.T) {
	pre, key, description := evaluatedAndCompiled(t, 200)

	circ, err := circuit.Compile(uint32(len(pre.Ct)), description)
	require.NoError(t, err)
	require.Equal(t, 17, circ.NumGates())

	ctBlocks, err := primitive.SplitCtBlocks(pre.Ct, int(circ.BlockSize))
	require.NoError(t, err)

	constants := circ.BindMissingConstants([][]byte{key})
	flat := make([][]byte, len(constants))
	for i, c := range constants {
		flat[i] = c.Fixed
	}

	ev, err := circuit.Evaluate(circ, ctBlocks, flat)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, ev.Values[len(ev.Values)-1])

	challenge := uint32(circ.NumGates() - 1)
	step, err := ComputeProofs(circ, ev, ctBlocks, circ.NumBlocks, challenge)
	require.NoError(t, err)

	abiGates, err := circ.ToAbiEncoded()
	require.NoError(t, err)
	hCirc := accumulator.Acc(abiGates)
	require.True(t, accumulator.Verify(hCirc, []int{int(challenge)}, [][]byte{abiGates[challenge]}, step.Proof1))

	hCt, err := accumulator.AccCt(pre.Ct, int(circ.BlockSize))
	require.NoError(t, err)
	_ = hCt

	require.Equal(t, step.CurrAcc, Hpre(ev, circ.NumBlocks, challenge))
}

func TestComputeProofRightOpensTerminalGate(t *testing.T) {
	pre, key, description := evaluatedAndCompiled(t, 48)

	circ, err := circuit.Compile(uint32(len(pre.Ct)), description)
	require.NoError(t, err)

	ctBlocks, err := primitive.SplitCtBlocks(pre.Ct, int(circ.BlockSize))
	require.NoError(t, err)

	constants := circ.BindMissingConstants([][]byte{key})
	flat := make([][]byte, len(constants))
	for i, c := range constants {
		flat[i] = c.Fixed
	}

	ev, err := circuit.Evaluate(circ, ctBlocks, flat)
	require.NoError(t, err)

	step, err := ComputeProofRight(circ, ev, circ.NumBlocks)
	require.NoError(t, err)
	require.Equal(t, CaseRightBoundary, step.Kind)

	tail := ev.Values[circ.NumBlocks:]
	lastIdx := len(tail) - 1
	tailAcc := accumulator.Acc(tail)
	require.True(t, accumulator.Verify(tailAcc, []int{lastIdx}, [][]byte{tail[lastIdx]}, step.Proof1))
}

func TestComputeProofsLeftBoundary(t *testing.T) {
	pre, key, description := evaluatedAndCompiled(t, 200)

	circ, err := circuit.Compile(uint32(len(pre.Ct)), description)
	require.NoError(t, err)

	ctBlocks, err := primitive.SplitCtBlocks(pre.Ct, int(circ.BlockSize))
	require.NoError(t, err)

	constants := circ.BindMissingConstants([][]byte{key})
	flat := make([][]byte, len(constants))
	for i, c := range constants {
		flat[i] = c.Fixed
	}

	ev, err := circuit.Evaluate(circ, ctBlocks, flat)
	require.NoError(t, err)

	step, err := ComputeProofsLeft(circ, ev, ctBlocks, circ.NumBlocks)
	require.NoError(t, err)
	require.Equal(t, CaseLeftBoundary, step.Kind)
	require.Empty(t, step.Proof3)

	abiGates, err := circ.ToAbiEncoded()
	require.NoError(t, err)
	hCirc := accumulator.Acc(abiGates)
	require.True(t, accumulator.Verify(hCirc, []int{int(circ.NumBlocks)}, [][]byte{abiGates[circ.NumBlocks]}, step.Proof1))

	require.True(t, accumulator.VerifyPrevious(accumulator.Acc([][]byte{}), step.ProofExt))
}

func TestHpreMatchesSingleValueAtFirstChallenge(t *testing.T) {
	pre, key, description := evaluatedAndCompiled(t, 200)

	circ, err := circuit.Compile(uint32(len(pre.Ct)), description)
	require.NoError(t, err)

	ctBlocks, err := primitive.SplitCtBlocks(pre.Ct, int(circ.BlockSize))
	require.NoError(t, err)

	constants := circ.BindMissingConstants([][]byte{key})
	flat := make([][]byte, len(constants))
	for i, c := range constants {
		flat[i] = c.Fixed
	}

	ev, err := circuit.Evaluate(circ, ctBlocks, flat)
	require.NoError(t, err)

	got := Hpre(ev, circ.NumBlocks, circ.NumBlocks)
	require.Equal(t, accumulator.Acc([][]byte{ev.Values[circ.NumBlocks]}), got)
}
