// Package accumulator implements a Merkle accumulator with multi-index
// compressed multi-proofs and extension proofs, after Ozdemir & Boneh
// (2020), §III. It commits succinctly to an ordered sequence of byte
// strings and opens a chosen subset of positions against a single
// 32-byte root.
package accumulator

import (
	"bytes"
	"runtime"
	"sort"
	"sync"

	"github.com/filebazaar/dispute-core/primitive"
	"github.com/filebazaar/dispute-core/types"
)

// Proof is one opening: layer l holds the sibling hashes at tree
// depth l needed to recompute the root, in reverse index order
// (consumption is stack-like, pop from the back). The root's own
// layer is never included.
type Proof [][][]byte

// parallelThreshold is the leaf count above which the per-layer pair
// collapse in Acc is handed to a worker pool; below it a serial loop
// is faster since goroutine dispatch dominates the work.
const parallelThreshold = 1024

// leafHash hashes one input value into a tree leaf. Values shorter
// than 32 bytes are zero-padded on the right before hashing, matching
// the reference accumulator's leaf encoding; values of 32 bytes or
// more are hashed as-is.
func leafHash(data []byte) []byte {
	if len(data) >= 32 {
		return primitive.Keccak256(data)
	}
	padded := make([]byte, 32)
	copy(padded, data)
	return primitive.Keccak256(padded)
}

func concatAndHash(left, right []byte) []byte {
	buf := make([]byte, 0, 64)
	buf = append(buf, to32(left)...)
	buf = append(buf, to32(right)...)
	return primitive.Keccak256(buf)
}

func to32(data []byte) []byte {
	if len(data) == 32 {
		return data
	}
	if len(data) > 32 {
		return data[:32]
	}
	padded := make([]byte, 32)
	copy(padded, data)
	return padded
}

// Acc builds the Merkle root over values. Empty input yields the
// empty byte string; a singleton yields its leaf hash directly;
// otherwise layer 0 is the leaf hashes and each subsequent layer
// pairwise concatenates and hashes, carrying forward any unpaired
// trailing element, until one element (the root) remains.
func Acc(values [][]byte) []byte {
	if len(values) == 0 {
		return []byte{}
	}
	if len(values) == 1 {
		return leafHash(values[0])
	}

	layer := make([][]byte, len(values))
	for i, v := range values {
		layer[i] = leafHash(v)
	}

	for len(layer) > 1 {
		layer = collapseLayer(layer)
	}
	return layer[0]
}

func collapseLayer(layer [][]byte) [][]byte {
	outLen := (len(layer) + 1) / 2
	next := make([][]byte, outLen)

	combine := func(outIdx int) {
		i := outIdx * 2
		if i < len(layer)-1 {
			next[outIdx] = concatAndHash(layer[i], layer[i+1])
		} else {
			next[outIdx] = layer[i]
		}
	}

	if len(layer) < parallelThreshold {
		for outIdx := 0; outIdx < outLen; outIdx++ {
			combine(outIdx)
		}
		return next
	}

	workers := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	chunk := (outLen + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= outLen {
			break
		}
		if end > outLen {
			end = outLen
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for outIdx := start; outIdx < end; outIdx++ {
				combine(outIdx)
			}
		}(start, end)
	}
	wg.Wait()
	return next
}

// buildTree returns every layer of the tree, leaves first, including
// the root as the final single-element layer.
func buildTree(values [][]byte) [][][]byte {
	if len(values) == 0 {
		return [][][]byte{{}}
	}
	if len(values) == 1 {
		return [][][]byte{{leafHash(values[0])}}
	}

	layer := make([][]byte, len(values))
	for i, v := range values {
		layer[i] = leafHash(v)
	}

	tree := [][][]byte{layer}
	for len(layer) > 1 {
		layer = collapseLayer(layer)
		tree = append(tree, layer)
	}
	return tree
}

func neighborIdx(i int) int {
	return i ^ 1
}

// Prove builds a multi-proof opening values at indices against
// Acc(values). indices need not be pre-sorted. Fails with
// indices-overflow if there are more indices than values.
func Prove(values [][]byte, indices []int) (Proof, error) {
	if len(indices) > len(values) {
		return nil, types.NewError(types.KindIndicesOverflow, "prove got %d indices for %d values", len(indices), len(values))
	}

	tree := buildTree(values)
	treeNoRoot := tree[:len(tree)-1]

	a := append([]int(nil), indices...)
	sort.Ints(a)

	proof := make(Proof, 0, len(treeNoRoot))

	for _, layer := range treeNoRoot {
		type pair struct{ lo, hi int }
		var bPruned []pair
		var diff []int

		contains := func(xs []int, x int) bool {
			for _, v := range xs {
				if v == x {
					return true
				}
			}
			return false
		}

		i := 0
		for i < len(a) {
			idx := a[i]
			neighbor := neighborIdx(idx)
			if idx < neighbor {
				bPruned = append(bPruned, pair{idx, neighbor})
			} else {
				bPruned = append(bPruned, pair{neighbor, idx})
			}

			if i < len(a)-1 && neighbor == a[i+1] {
				i++
			}

			if !contains(a, neighbor) && neighbor < len(layer) {
				diff = append(diff, neighbor)
			}
			i++
		}

		newLayer := make([][]byte, len(diff))
		for j, idx := range diff {
			newLayer[j] = layer[idx]
		}
		for l, r := 0, len(newLayer)-1; l < r; l, r = l+1, r-1 {
			newLayer[l], newLayer[r] = newLayer[r], newLayer[l]
		}
		proof = append(proof, newLayer)

		next := make([]int, len(bPruned))
		for j, p := range bPruned {
			chosen := p.lo
			if p.lo%2 != 0 {
				chosen = p.hi
			}
			next[j] = chosen >> 1
		}
		a = next
	}

	return proof, nil
}

// ProveExt is shorthand for Prove(values, [len(values)-1]): it proves
// membership of the newly appended last element and, via the
// accumulated sibling hashes, lets a verifier also recompute the
// previous root (without the last element) with VerifyPrevious.
func ProveExt(values [][]byte) (Proof, error) {
	return Prove(values, []int{len(values) - 1})
}

// Verify checks that values at the given indices are consistent with
// root under proof.
func Verify(root []byte, indices []int, values [][]byte, proof Proof) bool {
	if len(indices) != len(values) {
		return false
	}

	proofCopy := make(Proof, len(proof))
	for i, l := range proof {
		proofCopy[i] = append([][]byte(nil), l...)
	}
	idxCopy := append([]int(nil), indices...)

	hashes := make([][]byte, len(values))
	for i, v := range values {
		hashes[i] = leafHash(v)
	}

	for _, layer := range proofCopy {
		type pair struct{ lo, hi int }
		b := make([]pair, len(idxCopy))
		for i, idx := range idxCopy {
			neighbor := neighborIdx(idx)
			if neighbor < idx {
				b[i] = pair{neighbor, idx}
			} else {
				b[i] = pair{idx, neighbor}
			}
		}

		var nextIndices []int
		var nextValues [][]byte

		remaining := layer
		i := 0
		for i < len(b) {
			if i < len(b)-1 && b[i].lo == b[i+1].lo {
				nextValues = append(nextValues, concatAndHash(hashes[i], hashes[i+1]))
				i++
			} else if len(remaining) > 0 {
				corresponding := idxCopy[i]
				neighbor := neighborIdx(corresponding)

				last := remaining[len(remaining)-1]
				remaining = remaining[:len(remaining)-1]

				if neighbor < corresponding {
					nextValues = append(nextValues, concatAndHash(last, hashes[i]))
				} else {
					nextValues = append(nextValues, concatAndHash(hashes[i], last))
				}
			} else {
				nextValues = append(nextValues, hashes[i])
			}

			nextIndices = append(nextIndices, idxCopy[i]>>1)
			i++
		}

		hashes = nextValues
		idxCopy = nextIndices
	}

	if len(hashes) == 0 {
		return false
	}
	return bytes.Equal(hashes[0], root)
}

// VerifyPrevious recomputes the root of the sequence one element
// shorter than the one an extension proof was built over, by popping
// every sibling across all layers in layer-major order and chaining
// them: each newly popped sibling is the left operand, the
// accumulator-so-far the right.
func VerifyPrevious(prevRoot []byte, proof Proof) bool {
	var computed []byte
	firstFound := false

	for _, layer := range proof {
		l := append([][]byte(nil), layer...)
		for len(l) > 0 {
			popped := l[len(l)-1]
			l = l[:len(l)-1]
			if !firstFound {
				computed = popped
				firstFound = true
			} else {
				computed = concatAndHash(popped, computed)
			}
		}
	}

	_ = firstFound
	return bytes.Equal(computed, prevRoot)
}

// AccCt accumulates the ciphertext blocks of ct, split at block_size.
func AccCt(ct []byte, blockSize int) ([]byte, error) {
	blocks, err := primitive.SplitCtBlocks(ct, blockSize)
	if err != nil {
		return nil, err
	}
	return Acc(blocks), nil
}
