package ssz_test

import (
	"testing"

	"github.com/prysmaticlabs/eraauth/container/trie"
	"github.com/prysmaticlabs/eraauth/crypto/hash"
	"github.com/prysmaticlabs/eraauth/encoding/ssz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint64Root(t *testing.T) {
	uintVal := uint64(1234567890)
	expected := [32]byte{210, 2, 150, 73, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	result := ssz.Uint64Root(uintVal)
	assert.Equal(t, expected, result)
}

func TestByteArrayRootWithLimit(t *testing.T) {
	roots := [][32]byte{{123}, {234}}
	result, err := ssz.ByteArrayRootWithLimit(roots, 16777216)
	require.NoError(t, err)

	body := hash.Pair(roots[0], roots[1])
	for i := 1; i < 24; i++ {
		body = hash.Pair(body, trie.ZeroHashes[i])
	}
	assert.Equal(t, ssz.MixInLength(body, 2), result)
}

func TestByteArrayRootWithLimit_Empty(t *testing.T) {
	result, err := ssz.ByteArrayRootWithLimit(nil, 131072)
	require.NoError(t, err)
	assert.Equal(t, ssz.MixInLength(trie.ZeroHashes[17], 0), result)
}

func TestDepth(t *testing.T) {
	tests := []struct {
		in  uint64
		out uint8
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {8192, 13}, {432000, 19}, {131072, 17},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, ssz.Depth(tt.in), "depth of %d", tt.in)
	}
}

func TestMerkleizeVector(t *testing.T) {
	chunks := [][32]byte{{1}, {2}, {3}}
	got, err := ssz.MerkleizeVector(chunks, 4)
	require.NoError(t, err)
	assert.Equal(t, hash.Pair(hash.Pair(chunks[0], chunks[1]), hash.Pair(chunks[2], [32]byte{})), got)
	assert.Equal(t, [][32]byte{{1}, {2}, {3}}, chunks, "input was modified")

	_, err = ssz.MerkleizeVector(chunks, 2)
	require.ErrorContains(t, err, "3 chunks, capacity 2: more chunks than the tree can hold")
}

func TestContainerRoot_MatchesTrie(t *testing.T) {
	fields := [][32]byte{{1}, {2}, {3}, {4}, {5}}
	got, err := ssz.ContainerRoot(fields)
	require.NoError(t, err)
	m, err := trie.GenerateTrieFromItems(fields, 3)
	require.NoError(t, err)
	assert.Equal(t, m.Root(), got)
}

type chunk [32]byte

func (c chunk) HashTreeRoot() ([32]byte, error) {
	return hash.Hash(c[:]), nil
}

func TestMerkleizeListSSZ(t *testing.T) {
	elements := []chunk{{1}, {2}}
	got, err := ssz.MerkleizeListSSZ(elements, 2)
	require.NoError(t, err)
	a, _ := elements[0].HashTreeRoot()
	b, _ := elements[1].HashTreeRoot()
	assert.Equal(t, ssz.MixInLength(hash.Pair(a, b), 2), got)
}
