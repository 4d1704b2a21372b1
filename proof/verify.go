package proof

import (
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/accumulator"
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/consensus-types/beacon"
	"github.com/prysmaticlabs/eraauth/container/trie"
	"github.com/prysmaticlabs/eraauth/era"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// HeaderWithProof pairs a header with the proof binding it to its era.
type HeaderWithProof struct {
	Header *accumulator.HeaderRecord
	Proof  *InclusionProof
}

// HistoricalData is the trusted reference data of the eras after the merge.
// SolanaRoots is indexed by Solana epoch. A zero SolanaDepth selects the
// configured tree depth.
type HistoricalData struct {
	HistoricalRoots     beacon.HistoricalRoots
	HistoricalSummaries beacon.HistoricalSummaries
	SolanaRoots         [][32]byte
	SolanaDepth         uint64
	Config              *params.EraConfig
}

// config returns the active config when none was supplied. A supplied config
// must pass Validate.
func (h *HistoricalData) config() (*params.EraConfig, error) {
	if h == nil || h.Config == nil {
		return params.ActiveEraConfig(), nil
	}
	if err := h.Config.Validate(); err != nil {
		return nil, errors.Wrapf(ErrMissingReferenceData, "invalid era config: %v", err)
	}
	return h.Config, nil
}

// VerifyInclusionProofs verifies every proof of a batch, in parallel. It returns
// nil when all pass, otherwise a *BatchError listing every failing proof in
// batch order.
func VerifyInclusionProofs(acc *accumulator.MasterAccumulator, proofs []HeaderWithProof, hist *HistoricalData) error {
	start := time.Now()
	results := make([]error, len(proofs))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range proofs {
		i := i
		g.Go(func() error {
			results[i] = VerifyInclusionProof(acc, proofs[i], hist)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	batchVerificationSeconds.Observe(time.Since(start).Seconds())

	var failures []Failure
	for i, err := range results {
		if err != nil {
			failures = append(failures, Failure{Index: i, Err: err})
		}
	}
	proofsVerifiedTotal.WithLabelValues("valid").Add(float64(len(proofs) - len(failures)))
	if len(failures) == 0 {
		return nil
	}
	proofsVerifiedTotal.WithLabelValues("invalid").Add(float64(len(failures)))
	log.WithFields(logrus.Fields{
		"proofs":   len(proofs),
		"failures": len(failures),
		"first":    failures[0].Index,
	}).Warn("Inclusion proofs failed verification")
	return &BatchError{Failures: failures}
}

// VerifyInclusionProof recomputes the leaf of a header, folds its branch and
// compares the result with the trusted root of the header's era.
func VerifyInclusionProof(acc *accumulator.MasterAccumulator, hp HeaderWithProof, hist *HistoricalData) error {
	h, p := hp.Header, hp.Proof
	if h == nil || p == nil {
		return errors.Wrap(ErrMalformedProof, "missing header or proof")
	}
	if h.BlockNumber != p.BlockNumber {
		return errors.Wrapf(ErrMalformedProof, "header number %d, proof number %d", h.BlockNumber, p.BlockNumber)
	}
	if err := h.VerifyHash(); err != nil {
		return err
	}
	if h.Hash() != p.BlockHash {
		return errors.Wrapf(ErrProofMismatch, "block %d: header hash %#x, proven hash %#x", h.BlockNumber, h.Hash(), p.BlockHash)
	}
	cfg, err := hist.config()
	if err != nil {
		return err
	}
	switch p.Era {
	case era.PreMerge:
		return verifyPreMerge(cfg, acc, h, p)
	case era.PostMerge, era.PostCapella:
		return verifyBeacon(cfg, hist, h, p)
	case era.Solana:
		return verifySolana(cfg, hist, h, p)
	default:
		return errors.Wrapf(era.ErrUnsupportedKind, "proof of block %d has era %d", p.BlockNumber, p.Era)
	}
}

func verifyPreMerge(cfg *params.EraConfig, acc *accumulator.MasterAccumulator, h *accumulator.HeaderRecord, p *InclusionProof) error {
	if kind := era.SelectByBlockNumber(cfg, h.BlockNumber); kind != era.PreMerge {
		return errors.Wrapf(era.ErrWrongEra, "block %d is %s", h.BlockNumber, kind)
	}
	if acc == nil {
		return errors.Wrap(ErrMissingReferenceData, "no master accumulator")
	}
	if len(p.Branch) != fieldparams.EpochTreeDepth {
		return errors.Wrapf(ErrMalformedProof, "branch of length %d, want %d", len(p.Branch), fieldparams.EpochTreeDepth)
	}
	if p.LeafIndex >= fieldparams.EpochSize {
		return errors.Wrapf(ErrLeafIndexOutOfRange, "leaf index %d", p.LeafIndex)
	}
	if p.LeafIndex != h.BlockNumber.IndexInEpoch() {
		return errors.Wrapf(ErrMalformedProof, "leaf index %d for block %d", p.LeafIndex, h.BlockNumber)
	}
	if h.TotalDifficulty == nil {
		return errors.Wrapf(accumulator.ErrMissingTotalDifficulty, "block %d", h.BlockNumber)
	}
	expected, err := acc.EpochRoot(h.BlockNumber.Epoch())
	if err != nil {
		return err
	}
	leaf, err := h.HashTreeRoot()
	if err != nil {
		return err
	}
	root := trie.MixInLength(trie.FoldBranch(leaf, p.LeafIndex, p.Branch), fieldparams.EpochSize)
	if root != expected {
		return errors.Wrapf(ErrProofMismatch, "block %d folds to %#x, epoch %d root is %#x", h.BlockNumber, root, h.BlockNumber.Epoch(), expected)
	}
	return nil
}

func verifyBeacon(cfg *params.EraConfig, hist *HistoricalData, h *accumulator.HeaderRecord, p *InclusionProof) error {
	if kind := era.SelectBySlot(cfg, p.Slot); kind != p.Era {
		return errors.Wrapf(era.ErrWrongEra, "slot %d is %s, proof is %s", p.Slot, kind, p.Era)
	}
	if era.SelectByBlockNumber(cfg, h.BlockNumber) == era.PreMerge {
		return errors.Wrapf(era.ErrWrongEra, "block %d predates the merge", h.BlockNumber)
	}
	if hist == nil {
		return errors.Wrap(ErrMissingReferenceData, "no historical data")
	}

	gindex, depth := beacon.ExecutionBlockHashGindex(cfg, p.Slot)
	if len(p.ExecutionBranch) != depth {
		return errors.Wrapf(ErrMalformedProof, "execution branch of length %d, want %d", len(p.ExecutionBranch), depth)
	}
	if !trie.VerifyMerkleProof(p.BeaconBlockRoot, h.Hash(), gindex, p.ExecutionBranch) {
		return errors.Wrapf(ErrProofMismatch, "block %d is not the execution payload of slot %d", h.BlockNumber, p.Slot)
	}

	var root [32]byte
	var branchDepth uint64
	if p.Era == era.PostMerge {
		index := p.Slot.Era()
		if uint64(index) >= uint64(len(hist.HistoricalRoots)) {
			return errors.Wrapf(ErrMissingReferenceData, "historical root %d, %d supplied", index, len(hist.HistoricalRoots))
		}
		root, branchDepth = hist.HistoricalRoots[index], fieldparams.HistoricalRootsProofDepth
	} else {
		index, err := era.SummaryIndex(cfg, p.Slot)
		if err != nil {
			return err
		}
		if index >= uint64(len(hist.HistoricalSummaries)) || hist.HistoricalSummaries[index] == nil {
			return errors.Wrapf(ErrMissingReferenceData, "historical summary %d, %d supplied", index, len(hist.HistoricalSummaries))
		}
		root, branchDepth = hist.HistoricalSummaries[index].BlockSummaryRoot, fieldparams.HistoricalSummaryProofDepth
	}
	if uint64(len(p.Branch)) != branchDepth {
		return errors.Wrapf(ErrMalformedProof, "branch of length %d, want %d", len(p.Branch), branchDepth)
	}
	if p.LeafIndex >= fieldparams.SlotsPerHistoricalRoot {
		return errors.Wrapf(ErrLeafIndexOutOfRange, "leaf index %d", p.LeafIndex)
	}
	if p.LeafIndex != p.Slot.IndexInEra() {
		return errors.Wrapf(ErrMalformedProof, "leaf index %d for slot %d", p.LeafIndex, p.Slot)
	}
	if !trie.VerifyMerkleProof(root, p.BeaconBlockRoot, trie.GeneralizedIndex(branchDepth, p.LeafIndex), p.Branch) {
		return errors.Wrapf(ErrProofMismatch, "beacon block root %#x at slot %d", p.BeaconBlockRoot, p.Slot)
	}
	return nil
}

func verifySolana(cfg *params.EraConfig, hist *HistoricalData, h *accumulator.HeaderRecord, p *InclusionProof) error {
	if hist == nil {
		return errors.Wrap(ErrMissingReferenceData, "no solana roots")
	}
	depth := era.SolanaDepth(cfg, hist.SolanaDepth)
	if err := era.CheckSolanaDepth(cfg, depth); err != nil {
		return errors.Wrapf(ErrMalformedProof, "%v", err)
	}
	slot := uint64(h.BlockNumber)
	epoch := slot / cfg.SolanaEpochLength
	if epoch >= uint64(len(hist.SolanaRoots)) {
		return errors.Wrapf(ErrMissingReferenceData, "solana epoch %d, %d roots supplied", epoch, len(hist.SolanaRoots))
	}
	if uint64(len(p.Branch)) != depth {
		return errors.Wrapf(ErrMalformedProof, "branch of length %d, want %d", len(p.Branch), depth)
	}
	if p.LeafIndex >= cfg.SolanaEpochLength {
		return errors.Wrapf(ErrLeafIndexOutOfRange, "leaf index %d", p.LeafIndex)
	}
	if p.LeafIndex != slot%cfg.SolanaEpochLength {
		return errors.Wrapf(ErrMalformedProof, "leaf index %d for solana slot %d", p.LeafIndex, slot)
	}
	if !trie.VerifyMerkleProofWithDepth(hist.SolanaRoots[epoch], h.Hash(), p.LeafIndex, p.Branch, depth) {
		return errors.Wrapf(ErrProofMismatch, "solana slot %d hash %#x", slot, h.Hash())
	}
	return nil
}
