package proof

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/accumulator"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/consensus-types/beacon"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/era"
	"github.com/sirupsen/logrus"
)

// GenerateInclusionProofs proves each header against the supplied epoch covering
// it. Proofs are returned in header order. Each epoch tree is built once and
// shared by every header proved from it.
func GenerateInclusionProofs(epochs []*accumulator.Epoch, headers []*accumulator.HeaderRecord) ([]*InclusionProof, error) {
	byIndex := make(map[primitives.EpochIndex]*accumulator.Epoch, len(epochs))
	for i, e := range epochs {
		if e == nil {
			return nil, errors.Wrapf(accumulator.ErrNilRecord, "epoch at position %d", i)
		}
		byIndex[e.Index()] = e
	}
	proofs := make([]*InclusionProof, len(headers))
	for i, h := range headers {
		if h == nil {
			return nil, errors.Wrapf(accumulator.ErrNilRecord, "header at position %d", i)
		}
		e, ok := byIndex[h.BlockNumber.Epoch()]
		if !ok {
			return nil, errors.Wrapf(ErrHeaderNotInEpoch, "block %d, epochs supplied: %s", h.BlockNumber, epochList(epochs))
		}
		p, err := GenerateInclusionProof(e, h)
		if err != nil {
			return nil, err
		}
		proofs[i] = p
	}
	proofsGeneratedTotal.WithLabelValues(era.PreMerge.String()).Add(float64(len(proofs)))
	log.WithFields(logrus.Fields{
		"headers": len(headers),
		"epochs":  len(epochs),
	}).Debug("Generated inclusion proofs")
	return proofs, nil
}

func epochList(epochs []*accumulator.Epoch) string {
	if len(epochs) == 0 {
		return "none"
	}
	indices := make([]primitives.EpochIndex, len(epochs))
	for i, e := range epochs {
		indices[i] = e.Index()
	}
	return fmt.Sprint(indices)
}

// GenerateInclusionProof proves a single header against its epoch.
func GenerateInclusionProof(epoch *accumulator.Epoch, header *accumulator.HeaderRecord) (*InclusionProof, error) {
	if epoch == nil || header == nil {
		return nil, errors.Wrap(accumulator.ErrNilRecord, "epoch and header are required")
	}
	record, ok := epoch.Record(header.BlockNumber)
	if !ok {
		return nil, errors.Wrapf(ErrEpochMismatch, "block %d is not in epoch %d", header.BlockNumber, epoch.Index())
	}
	if err := header.VerifyHash(); err != nil {
		return nil, err
	}
	if record.Hash() != header.Hash() {
		return nil, errors.Wrapf(ErrHeaderMismatch, "block %d: header %#x, epoch record %#x", header.BlockNumber, header.Hash(), record.Hash())
	}
	tr, err := epoch.Tree()
	if err != nil {
		return nil, errors.Wrapf(err, "could not build tree of epoch %d", epoch.Index())
	}
	index := header.BlockNumber.IndexInEpoch()
	branch, err := tr.MerkleProof(int(index))
	if err != nil {
		return nil, errors.Wrapf(ErrLeafIndexOutOfRange, "block %d: %v", header.BlockNumber, err)
	}
	return &InclusionProof{
		Era:         era.PreMerge,
		BlockNumber: header.BlockNumber,
		BlockHash:   header.Hash(),
		LeafIndex:   index,
		Branch:      branch,
	}, nil
}

// GenerateBeaconProofs proves the execution header of every block of a complete
// beacon era. blocks holds one entry per slot, nil for empty slots, and only
// blocks carrying an execution payload yield a proof. Before Capella the era
// root is a HistoricalBatch root, so stateRootsRoot must be supplied and is
// appended to every branch.
func GenerateBeaconProofs(cfg *params.EraConfig, blocks []*beacon.BeaconBlock, stateRootsRoot *common.Hash) ([]*InclusionProof, error) {
	if cfg == nil {
		cfg = params.ActiveEraConfig()
	}
	tr, err := beacon.BlockRootsTrie(blocks)
	if err != nil {
		return nil, errors.Wrap(err, "could not build block roots tree")
	}
	kind := era.SelectBySlot(cfg, blocks[0].Slot)
	if kind == era.PostMerge && stateRootsRoot == nil {
		return nil, errors.Wrapf(ErrMissingReferenceData, "era %d needs its state_roots root", blocks[0].Slot.Era())
	}
	roots := tr.Items()

	var proofs []*InclusionProof
	for i, b := range blocks {
		if b == nil || b.ExecutionBlockHash == nil {
			continue
		}
		if err := b.VerifyExecutionBlockHash(cfg); err != nil {
			return nil, errors.Wrapf(err, "block at slot %d", b.Slot)
		}
		branch, err := tr.MerkleProof(i)
		if err != nil {
			return nil, err
		}
		if kind == era.PostMerge {
			branch = append(branch, *stateRootsRoot)
		}
		proofs = append(proofs, &InclusionProof{
			Era:             kind,
			BlockNumber:     b.ExecutionBlockNumber,
			BlockHash:       *b.ExecutionBlockHash,
			LeafIndex:       b.Slot.IndexInEra(),
			Branch:          branch,
			Slot:            b.Slot,
			BeaconBlockRoot: roots[i],
			ExecutionBranch: append([][32]byte(nil), b.ExecutionBranch...),
		})
	}
	proofsGeneratedTotal.WithLabelValues(kind.String()).Add(float64(len(proofs)))
	return proofs, nil
}

// GenerateSolanaProofs proves every block hash of a complete Solana epoch. A
// zero depth selects the configured tree depth.
func GenerateSolanaProofs(cfg *params.EraConfig, blocks []*era.SolanaBlock, depth uint64) ([]*InclusionProof, error) {
	if cfg == nil {
		cfg = params.ActiveEraConfig()
	}
	depth = era.SolanaDepth(cfg, depth)
	tr, err := era.SolanaTrie(cfg, blocks, depth)
	if err != nil {
		return nil, errors.Wrap(err, "could not build solana epoch tree")
	}
	proofs := make([]*InclusionProof, len(blocks))
	for i, b := range blocks {
		branch, err := tr.MerkleProof(i)
		if err != nil {
			return nil, err
		}
		proofs[i] = &InclusionProof{
			Era:         era.Solana,
			BlockNumber: primitives.BlockNumber(b.Slot),
			BlockHash:   b.BlockHash,
			LeafIndex:   b.Slot % cfg.SolanaEpochLength,
			Branch:      branch,
		}
	}
	proofsGeneratedTotal.WithLabelValues(era.Solana.String()).Add(float64(len(proofs)))
	return proofs, nil
}
