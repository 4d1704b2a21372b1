package ssz

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/container/trie"
)

// Uint64Root returns the ssz hash tree root of a uint64: the value little
// endian in a zero padded chunk.
func Uint64Root(val uint64) [32]byte {
	var root [32]byte
	binary.LittleEndian.PutUint64(root[:8], val)
	return root
}

// ByteArrayRootWithLimit computes the ssz hash tree root of a list of
// [32]byte roots with the given limit.
func ByteArrayRootWithLimit(roots [][32]byte, limit uint64) ([32]byte, error) {
	result, err := MerkleizeVector(roots, limit)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not compute byte array merkleization")
	}
	// We need to mix in the length of the slice.
	return MixInLength(result, uint64(len(roots))), nil
}

// MixInLength takes a root and a length and returns the hash of the root
// concatenated with the length serialized as a little endian 32 byte chunk.
func MixInLength(root [32]byte, length uint64) [32]byte {
	return trie.MixInLength(root, length)
}
