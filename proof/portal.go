package proof

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/accumulator"
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
	"github.com/prysmaticlabs/eraauth/container/trie"
	sszutil "github.com/prysmaticlabs/eraauth/encoding/ssz"
	"github.com/prysmaticlabs/eraauth/era"
)

// PortalBranch converts a pre-merge proof into the Portal network
// BlockProofHistoricalHashesAccumulator form: the proof of the block hash itself
// under the epoch accumulator root. The total difficulty sibling comes from
// record, the length sibling closes the list.
func (p *InclusionProof) PortalBranch(record *accumulator.HeaderRecord) ([][32]byte, error) {
	if p.Era != era.PreMerge {
		return nil, errors.Wrapf(ErrMalformedProof, "%s proof has no portal form", p.Era)
	}
	if record == nil || record.TotalDifficulty == nil {
		return nil, errors.Wrap(ErrMissingReferenceData, "portal branch needs the total difficulty of the record")
	}
	if record.BlockNumber != p.BlockNumber || record.Hash() != p.BlockHash {
		return nil, errors.Wrapf(ErrHeaderMismatch, "record %d does not match proof of block %d", record.BlockNumber, p.BlockNumber)
	}
	if len(p.Branch) != fieldparams.EpochTreeDepth {
		return nil, errors.Wrapf(ErrMalformedProof, "branch of length %d, want %d", len(p.Branch), fieldparams.EpochTreeDepth)
	}
	branch := make([][32]byte, 0, fieldparams.PortalProofLength)
	branch = append(branch, record.TotalDifficultyRoot())
	branch = append(branch, p.Branch...)
	branch = append(branch, sszutil.Uint64Root(fieldparams.EpochSize))
	return branch, nil
}

// PortalGeneralizedIndex returns the generalized index of the block hash of
// the record at index inside an epoch accumulator.
func PortalGeneralizedIndex(index uint64) uint64 {
	return trie.ConcatGeneralizedIndices(
		2, // data root, left of the length
		trie.GeneralizedIndex(fieldparams.EpochTreeDepth, index),
		2, // block_hash, left of total_difficulty
	)
}

// VerifyPortalBranch checks a Portal form branch of blockHash against an epoch
// accumulator root.
func VerifyPortalBranch(epochRoot [32]byte, blockHash common.Hash, index uint64, branch [][32]byte) bool {
	if index >= fieldparams.EpochSize || len(branch) != fieldparams.PortalProofLength {
		return false
	}
	return trie.VerifyMerkleProof(epochRoot, blockHash, PortalGeneralizedIndex(index), branch)
}
