package trie

import (
	"math/bits"

	"github.com/prysmaticlabs/eraauth/crypto/hash"
)

// FoldBranch recomputes a root from a leaf, its index at the bottom of the tree
// and its siblings ordered leaf to root. Bit i of index selects whether the node
// at level i is a right child.
func FoldBranch(leaf [32]byte, index uint64, branch [][32]byte) [32]byte {
	node := leaf
	for i, sibling := range branch {
		if (index>>uint(i))&1 == 1 {
			node = hash.Pair(sibling, node)
		} else {
			node = hash.Pair(node, sibling)
		}
	}
	return node
}

// VerifyMerkleProofWithDepth verifies a Merkle branch against a root of a trie.
func VerifyMerkleProofWithDepth(root, item [32]byte, merkleIndex uint64, proof [][32]byte, depth uint64) bool {
	if uint64(len(proof)) != depth {
		return false
	}
	if depth > MaxDepth || merkleIndex >= uint64(1)<<depth {
		return false
	}
	return FoldBranch(item, merkleIndex, proof) == root
}

// VerifyMerkleProof given a trie root, a leaf, the generalized merkle index
// of the leaf in the trie, and the proof itself.
func VerifyMerkleProof(root, item [32]byte, generalizedIndex uint64, proof [][32]byte) bool {
	if generalizedIndex == 0 {
		return false
	}
	depth := GeneralizedIndexDepth(generalizedIndex)
	if uint64(len(proof)) != depth {
		return false
	}
	return FoldBranch(item, generalizedIndex-uint64(1)<<depth, proof) == root
}

// GeneralizedIndex returns the generalized index of the leaf at index in a tree
// of the given depth.
func GeneralizedIndex(depth, index uint64) uint64 {
	return uint64(1)<<depth | index
}

// GeneralizedIndexDepth returns the depth of a generalized index, floor(log2(gindex)).
func GeneralizedIndexDepth(generalizedIndex uint64) uint64 {
	return uint64(bits.Len64(generalizedIndex) - 1)
}

// ConcatGeneralizedIndices composes the generalized indices of nested subtrees
// into the index of the innermost node counted from the outermost root.
func ConcatGeneralizedIndices(indices ...uint64) uint64 {
	o := uint64(1)
	for _, i := range indices {
		depth := GeneralizedIndexDepth(i)
		o = o<<depth | (i - uint64(1)<<depth)
	}
	return o
}
