// Package beacon holds the beacon chain objects needed to link execution
// headers to historical roots and summaries.
package beacon

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	ssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/container/trie"
	"github.com/prysmaticlabs/eraauth/encoding/bytesutil"
	sszutil "github.com/prysmaticlabs/eraauth/encoding/ssz"
)

const beaconBlockHeaderSize = 112

// BeaconBlock is a beacon block reduced to the fields of its header. Its hash
// tree root equals the root of the full block. When the block carries an
// execution payload, ExecutionBlockHash and ExecutionBranch prove the payload's
// block_hash under that root. ExecutionBlockNumber is informational and is not
// covered by the branch.
type BeaconBlock struct {
	Slot                 primitives.Slot
	ProposerIndex        uint64
	ParentRoot           common.Hash
	StateRoot            common.Hash
	BodyRoot             common.Hash
	ExecutionBlockHash   *common.Hash
	ExecutionBlockNumber primitives.BlockNumber
	ExecutionBranch      [][32]byte
}

type beaconBlockJSON struct {
	Slot                 uint64        `json:"slot,string"`
	ProposerIndex        uint64        `json:"proposer_index,string"`
	ParentRoot           common.Hash   `json:"parent_root"`
	StateRoot            common.Hash   `json:"state_root"`
	BodyRoot             common.Hash   `json:"body_root"`
	ExecutionBlockHash   *common.Hash  `json:"execution_block_hash,omitempty"`
	ExecutionBlockNumber uint64        `json:"execution_block_number,string,omitempty"`
	ExecutionBranch      []common.Hash `json:"execution_branch,omitempty"`
}

// MarshalJSON encodes the block with hex roots and quoted integers.
func (b *BeaconBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(&beaconBlockJSON{
		Slot:                 uint64(b.Slot),
		ProposerIndex:        b.ProposerIndex,
		ParentRoot:           b.ParentRoot,
		StateRoot:            b.StateRoot,
		BodyRoot:             b.BodyRoot,
		ExecutionBlockHash:   b.ExecutionBlockHash,
		ExecutionBlockNumber: uint64(b.ExecutionBlockNumber),
		ExecutionBranch:      bytesutil.RootsToHashes(b.ExecutionBranch),
	})
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (b *BeaconBlock) UnmarshalJSON(input []byte) error {
	var dec beaconBlockJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	*b = BeaconBlock{
		Slot:                 primitives.Slot(dec.Slot),
		ProposerIndex:        dec.ProposerIndex,
		ParentRoot:           dec.ParentRoot,
		StateRoot:            dec.StateRoot,
		BodyRoot:             dec.BodyRoot,
		ExecutionBlockHash:   dec.ExecutionBlockHash,
		ExecutionBlockNumber: primitives.BlockNumber(dec.ExecutionBlockNumber),
		ExecutionBranch:      bytesutil.HashesToRoots(dec.ExecutionBranch),
	}
	return nil
}

// MarshalSSZ ssz marshals the block header fields.
func (b *BeaconBlock) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(b)
}

// MarshalSSZTo ssz marshals the block header fields to a target array.
func (b *BeaconBlock) MarshalSSZTo(buf []byte) ([]byte, error) {
	dst := buf
	dst = ssz.MarshalUint64(dst, uint64(b.Slot))
	dst = ssz.MarshalUint64(dst, b.ProposerIndex)
	dst = append(dst, b.ParentRoot[:]...)
	dst = append(dst, b.StateRoot[:]...)
	dst = append(dst, b.BodyRoot[:]...)
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals a BeaconBlockHeader into the block. The execution
// fields are left empty.
func (b *BeaconBlock) UnmarshalSSZ(buf []byte) error {
	if len(buf) != beaconBlockHeaderSize {
		return ssz.ErrSize
	}
	*b = BeaconBlock{
		Slot:          primitives.Slot(ssz.UnmarshallUint64(buf[0:8])),
		ProposerIndex: ssz.UnmarshallUint64(buf[8:16]),
	}
	copy(b.ParentRoot[:], buf[16:48])
	copy(b.StateRoot[:], buf[48:80])
	copy(b.BodyRoot[:], buf[80:112])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the block header.
func (b *BeaconBlock) SizeSSZ() int {
	return beaconBlockHeaderSize
}

// HashTreeRoot ssz hashes the block, yielding the beacon block root.
func (b *BeaconBlock) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(b)
}

// HashTreeRootWith ssz hashes the block with a hasher.
func (b *BeaconBlock) HashTreeRootWith(hh ssz.HashWalker) error {
	indx := hh.Index()
	hh.PutUint64(uint64(b.Slot))
	hh.PutUint64(b.ProposerIndex)
	hh.PutBytes(b.ParentRoot[:])
	hh.PutBytes(b.StateRoot[:])
	hh.PutBytes(b.BodyRoot[:])
	hh.Merkleize(indx)
	return nil
}

// GetTree returns the block header as a fastssz proof tree.
func (b *BeaconBlock) GetTree() (*ssz.Node, error) {
	return ssz.ProofTree(b)
}

// HeaderBranch returns the siblings of body_root inside the block, ordered
// bottom up. Appending them to a proof of a node under body_root extends that
// proof up to the block root.
func (b *BeaconBlock) HeaderBranch() ([][32]byte, error) {
	// The left half of the header holds its first four fields.
	left, err := sszutil.ContainerRoot([][32]byte{
		sszutil.Uint64Root(uint64(b.Slot)),
		sszutil.Uint64Root(b.ProposerIndex),
		b.ParentRoot,
		b.StateRoot,
	})
	if err != nil {
		return nil, err
	}
	return [][32]byte{trie.ZeroHashes[0], trie.ZeroHashes[1], left}, nil
}

// ExecutionBlockHashGindex returns the generalized index of the execution block
// hash in a block at the given slot, and the matching branch length.
func ExecutionBlockHashGindex(cfg *params.EraConfig, slot primitives.Slot) (gindex uint64, depth int) {
	if slot >= cfg.DenebForkSlot() {
		return fieldparams.ExecutionBlockHashGindexDeneb, fieldparams.ExecutionBranchDepthDeneb
	}
	return fieldparams.ExecutionBlockHashGindex, fieldparams.ExecutionBranchDepth
}

// VerifyExecutionBlockHash checks that the block's execution block hash is
// committed to by the block root.
func (b *BeaconBlock) VerifyExecutionBlockHash(cfg *params.EraConfig) error {
	if b.ExecutionBlockHash == nil {
		return ErrNoExecutionPayload
	}
	gindex, depth := ExecutionBlockHashGindex(cfg, b.Slot)
	if len(b.ExecutionBranch) != depth {
		return errors.Wrapf(ErrExecutionBranch, "branch of length %d, want %d", len(b.ExecutionBranch), depth)
	}
	root, err := b.HashTreeRoot()
	if err != nil {
		return err
	}
	if !trie.VerifyMerkleProof(root, *b.ExecutionBlockHash, gindex, b.ExecutionBranch) {
		return errors.Wrapf(ErrExecutionBranch, "slot %d block hash %#x", b.Slot, *b.ExecutionBlockHash)
	}
	return nil
}
