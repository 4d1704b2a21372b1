package trie_test

import (
	"testing"

	ssz "github.com/ferranbt/fastssz"
	"github.com/prysmaticlabs/eraauth/container/trie"
	"github.com/prysmaticlabs/eraauth/crypto/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(n int) [][32]byte {
	items := make([][32]byte, n)
	for i := range items {
		items[i] = hash.Hash([]byte{byte(i), byte(i >> 8)})
	}
	return items
}

func TestGenerateTrieFromItems_Validation(t *testing.T) {
	tests := []struct {
		name      string
		items     [][32]byte
		depth     uint64
		errString string
	}{
		{
			name:      "no items",
			depth:     4,
			errString: "no items provided",
		},
		{
			name:      "too many items",
			items:     testItems(5),
			depth:     2,
			errString: "do not fit in a trie of depth 2",
		},
		{
			name:      "depth too large",
			items:     testItems(1),
			depth:     64,
			errString: "depth 64 exceeds 63",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := trie.GenerateTrieFromItems(tt.items, tt.depth)
			require.ErrorContains(t, err, tt.errString)
		})
	}
}

func TestGenerateTrieFromItems_FullTree(t *testing.T) {
	items := testItems(4)
	m, err := trie.GenerateTrieFromItems(items, 2)
	require.NoError(t, err)
	want := hash.Pair(hash.Pair(items[0], items[1]), hash.Pair(items[2], items[3]))
	assert.Equal(t, want, m.Root())
	assert.Equal(t, 4, m.NumOfItems())
	assert.Equal(t, uint64(2), m.Depth())
}

func TestGenerateTrieFromItems_PadsWithZeroHashes(t *testing.T) {
	items := testItems(3)
	m, err := trie.GenerateTrieFromItems(items, 3)
	require.NoError(t, err)
	left := hash.Pair(hash.Pair(items[0], items[1]), hash.Pair(items[2], trie.ZeroHashes[0]))
	assert.Equal(t, hash.Pair(left, trie.ZeroHashes[2]), m.Root())
}

func TestGenerateTrieFromItems_DoesNotAliasInput(t *testing.T) {
	items := testItems(2)
	m, err := trie.GenerateTrieFromItems(items, 1)
	require.NoError(t, err)
	root := m.Root()
	items[0] = [32]byte{0xff}
	assert.Equal(t, root, m.Root())
	assert.NotEqual(t, items[0], m.Items()[0])
}

func TestMerkleTrie_HashTreeRootMixesInLength(t *testing.T) {
	items := testItems(7)
	m, err := trie.GenerateTrieFromItems(items, 3)
	require.NoError(t, err)
	var length [32]byte
	length[0] = 7
	root, err := m.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, hash.Pair(m.Root(), length), root)
}

func TestMerkleTrie_MerkleProofOutOfRange(t *testing.T) {
	m, err := trie.GenerateTrieFromItems(testItems(3), 2)
	require.NoError(t, err)
	_, err = m.MerkleProof(6)
	require.ErrorContains(t, err, "merkle index out of range")
	_, err = m.MerkleProof(-1)
	require.ErrorContains(t, err, "merkle index is negative")
}

func TestMerkleTrie_VerifyMerkleProofWithDepth(t *testing.T) {
	items := testItems(8)
	depth := uint64(5)
	m, err := trie.GenerateTrieFromItems(items, depth)
	require.NoError(t, err)
	root := m.Root()
	for i := range items {
		proof, err := m.MerkleProof(i)
		require.NoError(t, err)
		require.Equal(t, int(depth), len(proof))
		require.Equal(t, true, trie.VerifyMerkleProofWithDepth(root, items[i], uint64(i), proof, depth), "proof %d", i)
	}
	proof, err := m.MerkleProof(3)
	require.NoError(t, err)
	require.Equal(t, false, trie.VerifyMerkleProofWithDepth(root, hash.Hash([]byte("buzz")), 3, proof, depth))
	require.Equal(t, false, trie.VerifyMerkleProofWithDepth(root, items[3], 4, proof, depth))
	require.Equal(t, false, trie.VerifyMerkleProofWithDepth(root, items[3], 3, proof[:4], depth))
	require.Equal(t, false, trie.VerifyMerkleProofWithDepth(root, items[3], 1<<depth+3, proof, depth))
}

func TestMerkleTrie_VerifyMerkleProof_GeneralizedIndex(t *testing.T) {
	items := testItems(8)
	m, err := trie.GenerateTrieFromItems(items, 3)
	require.NoError(t, err)
	proof, err := m.MerkleProof(5)
	require.NoError(t, err)
	gindex := trie.GeneralizedIndex(3, 5)
	assert.Equal(t, uint64(13), gindex)
	root := m.Root()
	assert.Equal(t, true, trie.VerifyMerkleProof(root, items[5], gindex, proof))
	assert.Equal(t, false, trie.VerifyMerkleProof(root, items[5], gindex+1, proof))
	assert.Equal(t, false, trie.VerifyMerkleProof(root, items[5], 0, proof))

	hashes := make([][]byte, len(proof))
	for i := range proof {
		hashes[i] = proof[i][:]
	}
	ok, err := ssz.VerifyProof(root[:], &ssz.Proof{Index: int(gindex), Leaf: items[5][:], Hashes: hashes})
	require.NoError(t, err)
	assert.Equal(t, true, ok)
}

func TestConcatGeneralizedIndices(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint64
		want    uint64
	}{
		{name: "block root in historical batch", indices: []uint64{2, 8192 + 5}, want: 16389},
		{name: "execution block hash", indices: []uint64{12, 25, 28}, want: 3228},
		{name: "execution block hash deneb", indices: []uint64{12, 25, 44}, want: 6444},
		{name: "root", indices: []uint64{1}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trie.ConcatGeneralizedIndices(tt.indices...))
		})
	}
}

func TestZeroHashes(t *testing.T) {
	assert.Equal(t, [32]byte{}, trie.ZeroHashes[0])
	assert.Equal(t, hash.Pair([32]byte{}, [32]byte{}), trie.ZeroHashes[1])
	assert.Equal(t, hash.Pair(trie.ZeroHashes[12], trie.ZeroHashes[12]), trie.ZeroHashes[13])
}

func BenchmarkGenerateTrieFromItems(b *testing.B) {
	items := testItems(8192)
	for i := 0; i < b.N; i++ {
		_, err := trie.GenerateTrieFromItems(items, 13)
		require.NoError(b, err, "Could not generate Merkle trie from items")
	}
}

func BenchmarkVerifyMerkleProofWithDepth(b *testing.B) {
	b.StopTimer()
	items := testItems(8192)
	m, err := trie.GenerateTrieFromItems(items, 13)
	require.NoError(b, err)
	proof, err := m.MerkleProof(2)
	require.NoError(b, err)
	root := m.Root()
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		if ok := trie.VerifyMerkleProofWithDepth(root, items[2], 2, proof, 13); !ok {
			b.Error("Merkle proof did not verify")
		}
	}
}
