// Package trie defines fixed depth binary Merkle tries used to commit to
// header records and beacon block roots.
package trie

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/crypto/hash"
	"github.com/prysmaticlabs/eraauth/crypto/hash/htr"
	"github.com/prysmaticlabs/eraauth/encoding/bytesutil"
)

// MaxDepth bounds the depth of a trie. Generalized indices of deeper trees would
// overflow a uint64.
const MaxDepth = 63

// SparseMerkleTrie is an immutable binary Merkle trie of fixed depth. Leaves past
// the last provided item are zero hashes of the matching level.
type SparseMerkleTrie struct {
	depth    uint
	branches [][][32]byte
}

// GenerateTrieFromItems constructs a Merkle trie from a sequence of 32 byte leaves.
// The items are copied.
func GenerateTrieFromItems(items [][32]byte, depth uint64) (*SparseMerkleTrie, error) {
	if len(items) == 0 {
		return nil, errors.New("no items provided to generate Merkle trie")
	}
	if depth > MaxDepth {
		return nil, fmt.Errorf("depth %d exceeds %d", depth, MaxDepth)
	}
	if uint64(len(items)) > uint64(1)<<depth {
		return nil, fmt.Errorf("%d items do not fit in a trie of depth %d", len(items), depth)
	}
	layers := make([][][32]byte, depth+1)
	layers[0] = bytesutil.SafeCopyRoots(items)
	for i := uint64(0); i < depth; i++ {
		layer := layers[i]
		if len(layer)%2 == 1 {
			layer = append(layer, ZeroHashes[i])
		}
		parents, err := htr.VectorizedSha256(layer)
		if err != nil {
			return nil, errors.Wrapf(err, "could not hash layer %d", i)
		}
		layers[i+1] = parents
	}
	return &SparseMerkleTrie{
		branches: layers,
		depth:    uint(depth),
	}, nil
}

// Depth of the trie, the number of siblings in each of its proofs.
func (m *SparseMerkleTrie) Depth() uint64 {
	return uint64(m.depth)
}

// Items returns a copy of the leaves passed in when creating the Merkle trie.
func (m *SparseMerkleTrie) Items() [][32]byte {
	return bytesutil.SafeCopyRoots(m.branches[0])
}

// NumOfItems returns the number of leaves the trie was built from.
func (m *SparseMerkleTrie) NumOfItems() int {
	return len(m.branches[0])
}

// Root returns the root of the trie, without any length mixed in.
func (m *SparseMerkleTrie) Root() [32]byte {
	return m.branches[len(m.branches)-1][0]
}

// HashTreeRoot of the trie read as an SSZ list: the root mixed in with the
// number of items.
//
//	hash(root + uint_to_bytes_le(len(items), 32))
func (m *SparseMerkleTrie) HashTreeRoot() ([32]byte, error) {
	return MixInLength(m.Root(), uint64(m.NumOfItems())), nil
}

// MerkleProof returns the sibling hashes of the leaf at index, ordered from the
// leaf level up to the child of the root.
func (m *SparseMerkleTrie) MerkleProof(index int) ([][32]byte, error) {
	if index < 0 {
		return nil, fmt.Errorf("merkle index is negative: %d", index)
	}
	leaves := m.branches[0]
	if index >= len(leaves) {
		return nil, fmt.Errorf("merkle index out of range in trie, max range: %d, received: %d", len(leaves), index)
	}
	merkleIndex := uint(index)
	proof := make([][32]byte, m.depth)
	for i := uint(0); i < m.depth; i++ {
		subIndex := (merkleIndex >> i) ^ 1
		if subIndex < uint(len(m.branches[i])) {
			proof[i] = m.branches[i][subIndex]
		} else {
			proof[i] = ZeroHashes[i]
		}
	}
	return proof, nil
}

// MixInLength hashes a root together with a little endian length chunk.
func MixInLength(root [32]byte, length uint64) [32]byte {
	var enc [32]byte
	binary.LittleEndian.PutUint64(enc[:8], length)
	return hash.Pair(root, enc)
}
