package accumulator

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/container/trie"
	"github.com/prysmaticlabs/eraauth/crypto/hash/htr"
	"github.com/sirupsen/logrus"
)

// maxReportedGaps caps the number of missing block numbers carried in an error.
const maxReportedGaps = 16

// Epoch is a complete, aligned run of EpochSize header records. The Merkle tree
// over its records is built on first use and shared by every later caller.
type Epoch struct {
	index   primitives.EpochIndex
	records []*HeaderRecord

	once    sync.Once
	tree    *trie.SparseMerkleTrie
	treeErr error
}

// EpochFromHeaders validates a slice of records and wraps them in an Epoch. The
// records must be sorted, contiguous, start at a multiple of EpochSize and carry
// a total difficulty. The slice is copied.
func EpochFromHeaders(headers []*HeaderRecord) (*Epoch, error) {
	if len(headers) != fieldparams.EpochSize {
		return nil, errors.Wrapf(ErrInvalidEpochLength, "got %d records, want %d", len(headers), fieldparams.EpochSize)
	}
	for i, h := range headers {
		if h == nil {
			return nil, errors.Wrapf(ErrNilRecord, "index %d", i)
		}
		if h.TotalDifficulty == nil {
			return nil, errors.Wrapf(ErrMissingTotalDifficulty, "block %d", h.BlockNumber)
		}
	}
	first := headers[0].BlockNumber
	if first%fieldparams.EpochSize != 0 {
		return nil, errors.Wrapf(ErrWrongEpochAlignment, "first block %d", first)
	}
	if missing := missingNumbers(headers); len(missing) > 0 {
		return nil, errors.Wrapf(ErrNonContiguous, "epoch %d missing blocks %v", first.Epoch(), missing)
	}
	records := make([]*HeaderRecord, len(headers))
	copy(records, headers)
	return &Epoch{
		index:   first.Epoch(),
		records: records,
	}, nil
}

// missingNumbers returns the block numbers skipped between consecutive records.
// A record that does not increase the number is reported as its own number.
func missingNumbers(headers []*HeaderRecord) []primitives.BlockNumber {
	var missing []primitives.BlockNumber
	for i := 1; i < len(headers) && len(missing) < maxReportedGaps; i++ {
		prev, cur := headers[i-1].BlockNumber, headers[i].BlockNumber
		if cur == prev+1 {
			continue
		}
		if cur <= prev {
			missing = append(missing, cur)
			continue
		}
		for n := prev + 1; n < cur && len(missing) < maxReportedGaps; n++ {
			missing = append(missing, n)
		}
	}
	return missing
}

// EpochsFromHeaders sorts a stream of records by block number, groups them by
// epoch and builds every complete epoch. Incomplete groups are skipped.
func EpochsFromHeaders(headers []*HeaderRecord) ([]*Epoch, error) {
	sorted := make([]*HeaderRecord, 0, len(headers))
	for i, h := range headers {
		if h == nil {
			return nil, errors.Wrapf(ErrNilRecord, "index %d", i)
		}
		sorted = append(sorted, h)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BlockNumber < sorted[j].BlockNumber
	})

	var epochs []*Epoch
	for start := 0; start < len(sorted); {
		index := sorted[start].BlockNumber.Epoch()
		end := start
		for end < len(sorted) && sorted[end].BlockNumber.Epoch() == index {
			end++
		}
		group := sorted[start:end]
		start = end
		if len(group) < fieldparams.EpochSize {
			log.WithFields(logrus.Fields{
				"epoch":   index,
				"records": len(group),
			}).Warn("Skipping incomplete epoch")
			continue
		}
		e, err := EpochFromHeaders(group)
		if err != nil {
			return nil, errors.Wrapf(err, "could not build epoch %d", index)
		}
		epochs = append(epochs, e)
	}
	return epochs, nil
}

// Index returns the epoch number.
func (e *Epoch) Index() primitives.EpochIndex {
	return e.index
}

// Records returns a copy of the records of the epoch.
func (e *Epoch) Records() []*HeaderRecord {
	out := make([]*HeaderRecord, len(e.records))
	copy(out, e.records)
	return out
}

// Record returns the record of block n, if the epoch covers it.
func (e *Epoch) Record(n primitives.BlockNumber) (*HeaderRecord, bool) {
	if !e.Contains(n) {
		return nil, false
	}
	return e.records[n.IndexInEpoch()], true
}

// Contains reports whether block n belongs to the epoch.
func (e *Epoch) Contains(n primitives.BlockNumber) bool {
	return n.Epoch() == e.index
}

// Tree returns the Merkle tree over the record roots of the epoch, building it
// on first use.
func (e *Epoch) Tree() (*trie.SparseMerkleTrie, error) {
	e.once.Do(func() {
		leaves, err := recordLeaves(e.records)
		if err != nil {
			e.treeErr = err
			return
		}
		e.tree, e.treeErr = trie.GenerateTrieFromItems(leaves, fieldparams.EpochTreeDepth)
	})
	return e.tree, e.treeErr
}

// Root returns the epoch accumulator root: the tree root with the record count
// mixed in.
func (e *Epoch) Root() ([32]byte, error) {
	t, err := e.Tree()
	if err != nil {
		return [32]byte{}, err
	}
	return trie.MixInLength(t.Root(), uint64(len(e.records))), nil
}

// HashTreeRoot is an alias of Root, the SSZ root of List[HeaderRecord, EpochSize].
func (e *Epoch) HashTreeRoot() ([32]byte, error) {
	return e.Root()
}

// recordLeaves computes the record roots of an epoch in one vectorized pass.
func recordLeaves(records []*HeaderRecord) ([][32]byte, error) {
	chunks := make([][32]byte, 0, 2*len(records))
	for _, r := range records {
		chunks = append(chunks, r.Hash(), r.TotalDifficultyRoot())
	}
	return htr.VectorizedSha256(chunks)
}
