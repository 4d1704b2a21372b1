package bytesutil

import (
	"github.com/ethereum/go-ethereum/common"
)

// RootsToHashes converts a list of roots into hex friendly hashes.
func RootsToHashes(roots [][32]byte) []common.Hash {
	if roots == nil {
		return nil
	}
	hashes := make([]common.Hash, len(roots))
	for i := range roots {
		hashes[i] = roots[i]
	}
	return hashes
}

// HashesToRoots is the inverse of RootsToHashes.
func HashesToRoots(hashes []common.Hash) [][32]byte {
	if hashes == nil {
		return nil
	}
	roots := make([][32]byte, len(hashes))
	for i := range hashes {
		roots[i] = hashes[i]
	}
	return roots
}
