package ssz

import (
	"math/bits"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/container/trie"
	"github.com/prysmaticlabs/eraauth/crypto/hash/htr"
)

var errTooManyChunks = errors.New("more chunks than the tree can hold")

// Depth is the number of layers above the leaves of a tree holding size
// chunks. Sizes that are not a power of two round up; 0 and 1 are depth 0.
func Depth(size uint64) uint8 {
	if size <= 1 {
		return 0
	}
	return uint8(bits.Len64(size - 1))
}

// MerkleizeVector returns the root of a tree sized for capacity chunks whose
// leading leaves are chunks. The caller's slice is left untouched.
func MerkleizeVector(chunks [][32]byte, capacity uint64) ([32]byte, error) {
	if uint64(len(chunks)) > capacity {
		return [32]byte{}, errors.Wrapf(errTooManyChunks, "%d chunks, capacity %d", len(chunks), capacity)
	}
	height := Depth(capacity)
	if len(chunks) == 0 {
		return trie.ZeroHashes[height], nil
	}
	nodes := append(make([][32]byte, 0, len(chunks)+1), chunks...)
	for level := uint8(0); level < height; level++ {
		// Odd layers borrow the zero subtree root of this level as the right sibling.
		if len(nodes)&1 == 1 {
			nodes = append(nodes, trie.ZeroHashes[level])
		}
		parents, err := htr.VectorizedSha256(nodes)
		if err != nil {
			return [32]byte{}, err
		}
		nodes = parents
	}
	return nodes[0], nil
}

// Rooter is anything with an ssz hash tree root, such as a header record or an
// epoch accumulator.
type Rooter interface {
	HashTreeRoot() ([32]byte, error)
}

// MerkleizeListSSZ roots each item, merkleizes the roots against limit and
// mixes in the item count.
func MerkleizeListSSZ[T Rooter](items []T, limit uint64) ([32]byte, error) {
	roots := make([][32]byte, len(items))
	for i := range items {
		r, err := items[i].HashTreeRoot()
		if err != nil {
			return [32]byte{}, errors.Wrapf(err, "item %d", i)
		}
		roots[i] = r
	}
	body, err := MerkleizeVector(roots, limit)
	if err != nil {
		return [32]byte{}, err
	}
	return MixInLength(body, uint64(len(items))), nil
}

// ContainerRoot merkleizes the roots of a container's fields in declaration order.
func ContainerRoot(fieldRoots [][32]byte) ([32]byte, error) {
	return MerkleizeVector(fieldRoots, uint64(len(fieldRoots)))
}
