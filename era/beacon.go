package era

import (
	"fmt"

	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/consensus-types/beacon"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/container/trie"
	"github.com/sirupsen/logrus"
)

// PostMergeValidator checks beacon blocks against historical_roots.
type PostMergeValidator struct{}

// ValidateEra implements Validator for *PostMergeContext.
func (*PostMergeValidator) ValidateEra(ctx Context) ([32]byte, error) {
	c, ok := ctx.(*PostMergeContext)
	if !ok {
		return [32]byte{}, errors.Wrapf(ErrContextMismatch, "post-merge validator got %T", ctx)
	}
	cfg, err := resolveConfig(c.Config)
	if err != nil {
		return [32]byte{}, err
	}
	era, err := eraOfBlocks(c.Blocks)
	if err != nil {
		return [32]byte{}, err
	}
	if era.FirstSlot() >= cfg.CapellaForkSlot() {
		return [32]byte{}, errors.Wrapf(ErrWrongEra, "era %d starts at or after the capella fork", era)
	}
	if uint64(era) >= uint64(len(c.HistoricalRoots)) {
		return [32]byte{}, errors.Wrapf(ErrRootNotFound, "era %d, %d historical roots supplied", era, len(c.HistoricalRoots))
	}
	root := c.HistoricalRoots[era]

	if c.StateRootsRoot == nil {
		if err := verifyProvenBlocks(cfg, PostMerge, c.Blocks, root, fieldparams.HistoricalRootsProofDepth); err != nil {
			return [32]byte{}, err
		}
		return root, nil
	}
	blockRootsRoot, execErr, err := verifyFullEra(cfg, PostMerge, c.Blocks)
	if err != nil {
		return [32]byte{}, err
	}
	actual, err := beacon.HistoricalBatchRoot(blockRootsRoot, *c.StateRootsRoot)
	if err != nil {
		return [32]byte{}, err
	}
	if actual != root {
		logRootMismatch(PostMerge, uint64(era), root, actual)
		return [32]byte{}, newRootMismatchError(PostMerge, uint64(era), root, actual)
	}
	if execErr != nil {
		return [32]byte{}, execErr
	}
	return root, nil
}

// PostCapellaValidator checks beacon blocks against historical_summaries.
type PostCapellaValidator struct{}

// ValidateEra implements Validator for *PostCapellaContext.
func (*PostCapellaValidator) ValidateEra(ctx Context) ([32]byte, error) {
	c, ok := ctx.(*PostCapellaContext)
	if !ok {
		return [32]byte{}, errors.Wrapf(ErrContextMismatch, "post-capella validator got %T", ctx)
	}
	cfg, err := resolveConfig(c.Config)
	if err != nil {
		return [32]byte{}, err
	}
	era, err := eraOfBlocks(c.Blocks)
	if err != nil {
		return [32]byte{}, err
	}
	index, err := SummaryIndex(cfg, era.FirstSlot())
	if err != nil {
		return [32]byte{}, err
	}
	if index >= uint64(len(c.HistoricalSummaries)) || c.HistoricalSummaries[index] == nil {
		return [32]byte{}, errors.Wrapf(ErrRootNotFound, "era %d needs summary %d, %d supplied", era, index, len(c.HistoricalSummaries))
	}
	root := [32]byte(c.HistoricalSummaries[index].BlockSummaryRoot)

	if !c.FullEra {
		if err := verifyProvenBlocks(cfg, PostCapella, c.Blocks, root, fieldparams.HistoricalSummaryProofDepth); err != nil {
			return [32]byte{}, err
		}
		return root, nil
	}
	actual, execErr, err := verifyFullEra(cfg, PostCapella, c.Blocks)
	if err != nil {
		return [32]byte{}, err
	}
	if actual != root {
		logRootMismatch(PostCapella, uint64(era), root, actual)
		return [32]byte{}, newRootMismatchError(PostCapella, uint64(era), root, actual)
	}
	if execErr != nil {
		return [32]byte{}, execErr
	}
	return root, nil
}

// SummaryIndex returns the position in historical_summaries of the era holding slot.
func SummaryIndex(cfg *params.EraConfig, slot primitives.Slot) (uint64, error) {
	capella := cfg.CapellaForkSlot()
	if slot < capella {
		return 0, errors.Wrapf(ErrWrongEra, "slot %d is before the capella fork slot %d", slot, capella)
	}
	return uint64(slot-capella) / fieldparams.SlotsPerHistoricalRoot, nil
}

// eraOfBlocks returns the era shared by every block of a context.
func eraOfBlocks(blocks []*ProvenBlock) (primitives.EraIndex, error) {
	var era primitives.EraIndex
	found := false
	for i, pb := range blocks {
		if pb == nil || pb.Block == nil {
			continue
		}
		e := pb.Block.Slot.Era()
		if !found {
			era, found = e, true
			continue
		}
		if e != era {
			return 0, errors.Wrapf(ErrMixedEras, "block %d is in era %d, block 0 in era %d", i, e, era)
		}
	}
	if !found {
		return 0, ErrNoBlocks
	}
	return era, nil
}

// verifyProvenBlocks checks every block root against root and every execution
// payload against its block, collecting all failures.
func verifyProvenBlocks(cfg *params.EraConfig, kind Kind, blocks []*ProvenBlock, root [32]byte, depth uint64) error {
	var failures []BlockFailure
	for i, pb := range blocks {
		if err := verifyProvenBlock(cfg, pb, root, depth); err != nil {
			failures = append(failures, BlockFailure{Index: i, Slot: slotOf(pb), Err: err})
		}
	}
	return blockFailures(kind, failures)
}

func verifyProvenBlock(cfg *params.EraConfig, pb *ProvenBlock, root [32]byte, depth uint64) error {
	if pb == nil || pb.Block == nil {
		return errors.Wrap(ErrIncompleteContext, "missing block")
	}
	if uint64(len(pb.Branch)) != depth {
		return errors.Wrapf(ErrMalformedBranch, "branch of length %d, want %d", len(pb.Branch), depth)
	}
	blockRoot, err := pb.Block.HashTreeRoot()
	if err != nil {
		return err
	}
	gindex := trie.GeneralizedIndex(depth, pb.Block.Slot.IndexInEra())
	if !trie.VerifyMerkleProof(root, blockRoot, gindex, pb.Branch) {
		return errors.Wrapf(ErrBlockNotCommitted, "block root %#x at generalized index %d", blockRoot, gindex)
	}
	if pb.Block.ExecutionBlockHash != nil {
		return pb.Block.VerifyExecutionBlockHash(cfg)
	}
	return nil
}

// verifyFullEra computes the block_roots root of a complete era and checks the
// execution payload of every block. Payload failures are returned in execErr,
// errors preventing the root computation in err.
func verifyFullEra(cfg *params.EraConfig, kind Kind, blocks []*ProvenBlock) (root [32]byte, execErr error, err error) {
	beaconBlocks := make([]*beacon.BeaconBlock, len(blocks))
	for i, pb := range blocks {
		if pb != nil {
			beaconBlocks[i] = pb.Block
		}
	}
	tr, err := beacon.BlockRootsTrie(beaconBlocks)
	if err != nil {
		return [32]byte{}, nil, err
	}
	var failures []BlockFailure
	for i, b := range beaconBlocks {
		if b == nil || b.ExecutionBlockHash == nil {
			continue
		}
		if err := b.VerifyExecutionBlockHash(cfg); err != nil {
			failures = append(failures, BlockFailure{Index: i, Slot: b.Slot, Err: err})
		}
	}
	return tr.Root(), blockFailures(kind, failures), nil
}

func blockFailures(kind Kind, failures []BlockFailure) error {
	if len(failures) == 0 {
		return nil
	}
	blockFailuresTotal.WithLabelValues(kind.String()).Add(float64(len(failures)))
	log.WithFields(logrus.Fields{
		"kind":     kind,
		"failures": len(failures),
		"first":    failures[0].Index,
	}).Error("Blocks failed verification")
	return NewBlockFailuresError(failures)
}

func slotOf(pb *ProvenBlock) primitives.Slot {
	if pb == nil || pb.Block == nil {
		return 0
	}
	return pb.Block.Slot
}

func logRootMismatch(kind Kind, index uint64, expected, actual [32]byte) {
	log.WithFields(logrus.Fields{
		"kind":     kind,
		"era":      index,
		"expected": fmt.Sprintf("%#x", expected),
		"actual":   fmt.Sprintf("%#x", actual),
	}).Error("Era root does not match trusted root")
}
