package trie

import (
	"github.com/prysmaticlabs/eraauth/crypto/hash"
)

// ZeroHashes holds the roots of empty subtrees, ZeroHashes[i] being the root of
// a subtree of depth i whose leaves are all zero.
var ZeroHashes [MaxDepth + 1][32]byte

func init() {
	for i := 1; i < len(ZeroHashes); i++ {
		ZeroHashes[i] = hash.Pair(ZeroHashes[i-1], ZeroHashes[i-1])
	}
}
