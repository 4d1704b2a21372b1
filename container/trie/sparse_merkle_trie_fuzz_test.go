package trie_test

import (
	"testing"

	"github.com/prysmaticlabs/eraauth/container/trie"
	"github.com/prysmaticlabs/eraauth/encoding/bytesutil"
	"github.com/stretchr/testify/require"
)

func FuzzSparseMerkleTrie_MerkleProof(f *testing.F) {
	f.Add([]byte("hi"), 3, 2)
	f.Add(make([]byte, 64), 0, 0)

	f.Fuzz(func(t *testing.T, b []byte, depth int, index int) {
		if depth < 0 || depth > 10 {
			return
		}
		items := make([][32]byte, 0, len(b)/32+1)
		for i := 0; i < len(b); i += 32 {
			items = append(items, bytesutil.ToBytes32(b[i:]))
		}
		m, err := trie.GenerateTrieFromItems(items, uint64(depth))
		if err != nil {
			return
		}
		proof, err := m.MerkleProof(index)
		if err != nil {
			return
		}
		require.Equal(t, true, trie.VerifyMerkleProofWithDepth(m.Root(), items[index], uint64(index), proof, uint64(depth)))
	})
}

func FuzzVerifyMerkleProof(f *testing.F) {
	f.Add(make([]byte, 32), make([]byte, 32), uint64(5), make([]byte, 64))

	f.Fuzz(func(t *testing.T, root, item []byte, gindex uint64, proofRaw []byte) {
		proof := make([][32]byte, 0, len(proofRaw)/32)
		for i := 0; i+32 <= len(proofRaw); i += 32 {
			proof = append(proof, bytesutil.ToBytes32(proofRaw[i:]))
		}
		trie.VerifyMerkleProof(bytesutil.ToBytes32(root), bytesutil.ToBytes32(item), gindex, proof)
	})
}
