package beacon

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	ssz "github.com/ferranbt/fastssz"
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
	"github.com/prysmaticlabs/eraauth/encoding/bytesutil"
	sszutil "github.com/prysmaticlabs/eraauth/encoding/ssz"
)

const historicalSummarySize = 64

// HistoricalSummary commits to the block roots and state roots of one era of
// SlotsPerHistoricalRoot slots after Capella.
type HistoricalSummary struct {
	BlockSummaryRoot common.Hash `json:"block_summary_root"`
	StateSummaryRoot common.Hash `json:"state_summary_root"`
}

// MarshalSSZ ssz marshals the HistoricalSummary object
func (h *HistoricalSummary) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(h)
}

// MarshalSSZTo ssz marshals the HistoricalSummary object to a target array
func (h *HistoricalSummary) MarshalSSZTo(buf []byte) ([]byte, error) {
	dst := append(buf, h.BlockSummaryRoot[:]...)
	return append(dst, h.StateSummaryRoot[:]...), nil
}

// UnmarshalSSZ ssz unmarshals the HistoricalSummary object
func (h *HistoricalSummary) UnmarshalSSZ(buf []byte) error {
	if len(buf) != historicalSummarySize {
		return ssz.ErrSize
	}
	copy(h.BlockSummaryRoot[:], buf[0:32])
	copy(h.StateSummaryRoot[:], buf[32:64])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the HistoricalSummary object
func (h *HistoricalSummary) SizeSSZ() int {
	return historicalSummarySize
}

// HashTreeRoot ssz hashes the HistoricalSummary object
func (h *HistoricalSummary) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(h)
}

// HashTreeRootWith ssz hashes the HistoricalSummary object with a hasher
func (h *HistoricalSummary) HashTreeRootWith(hh ssz.HashWalker) error {
	indx := hh.Index()
	hh.PutBytes(h.BlockSummaryRoot[:])
	hh.PutBytes(h.StateSummaryRoot[:])
	hh.Merkleize(indx)
	return nil
}

// GetTree ssz hashes the HistoricalSummary object
func (h *HistoricalSummary) GetTree() (*ssz.Node, error) {
	return ssz.ProofTree(h)
}

// HistoricalSummaries is the historical_summaries list of a beacon state,
// indexed by era counted from the Capella fork.
type HistoricalSummaries []*HistoricalSummary

// MarshalSSZ ssz marshals the list as the concatenation of its elements.
func (s HistoricalSummaries) MarshalSSZ() ([]byte, error) {
	if len(s) > fieldparams.HistoricalRootsLength {
		return nil, ssz.ErrListTooBig
	}
	dst := make([]byte, 0, len(s)*historicalSummarySize)
	for i, h := range s {
		if h == nil {
			return nil, errNilElement(i)
		}
		dst, _ = h.MarshalSSZTo(dst)
	}
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals a list of summaries.
func (s *HistoricalSummaries) UnmarshalSSZ(buf []byte) error {
	if len(buf)%historicalSummarySize != 0 {
		return ssz.ErrSize
	}
	num := len(buf) / historicalSummarySize
	if num > fieldparams.HistoricalRootsLength {
		return ssz.ErrListTooBig
	}
	out := make(HistoricalSummaries, num)
	for i := range out {
		out[i] = new(HistoricalSummary)
		if err := out[i].UnmarshalSSZ(buf[i*historicalSummarySize : (i+1)*historicalSummarySize]); err != nil {
			return err
		}
	}
	*s = out
	return nil
}

// HashTreeRoot returns the root of the list as held in a beacon state.
func (s HistoricalSummaries) HashTreeRoot() ([32]byte, error) {
	for i, h := range s {
		if h == nil {
			return [32]byte{}, errNilElement(i)
		}
	}
	return sszutil.MerkleizeListSSZ([]*HistoricalSummary(s), fieldparams.HistoricalRootsLength)
}

// HistoricalRoots is the historical_roots list of a beacon state. Entry i is the
// root of the HistoricalBatch of era i.
type HistoricalRoots [][32]byte

// MarshalSSZ ssz marshals the list of roots.
func (r HistoricalRoots) MarshalSSZ() ([]byte, error) {
	if len(r) > fieldparams.HistoricalRootsLength {
		return nil, ssz.ErrListTooBig
	}
	dst := make([]byte, 0, len(r)*fieldparams.RootLength)
	for i := range r {
		dst = append(dst, r[i][:]...)
	}
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals a list of roots.
func (r *HistoricalRoots) UnmarshalSSZ(buf []byte) error {
	if len(buf)%fieldparams.RootLength != 0 {
		return ssz.ErrSize
	}
	num := len(buf) / fieldparams.RootLength
	if num > fieldparams.HistoricalRootsLength {
		return ssz.ErrListTooBig
	}
	out := make(HistoricalRoots, num)
	for i := range out {
		copy(out[i][:], buf[i*fieldparams.RootLength:])
	}
	*r = out
	return nil
}

// HashTreeRoot returns the root of the list as held in a beacon state.
func (r HistoricalRoots) HashTreeRoot() ([32]byte, error) {
	return sszutil.ByteArrayRootWithLimit(r, fieldparams.HistoricalRootsLength)
}

// MarshalJSON encodes the roots as hex strings.
func (r HistoricalRoots) MarshalJSON() ([]byte, error) {
	return json.Marshal(bytesutil.RootsToHashes(r))
}

// UnmarshalJSON decodes a list of hex roots.
func (r *HistoricalRoots) UnmarshalJSON(input []byte) error {
	var hashes []common.Hash
	if err := json.Unmarshal(input, &hashes); err != nil {
		return err
	}
	*r = bytesutil.HashesToRoots(hashes)
	return nil
}

// HistoricalBatchRoot is the hash tree root of a HistoricalBatch, the container
// of the block_roots and state_roots vectors of one era.
func HistoricalBatchRoot(blockRootsRoot, stateRootsRoot [32]byte) ([32]byte, error) {
	return sszutil.ContainerRoot([][32]byte{blockRootsRoot, stateRootsRoot})
}
