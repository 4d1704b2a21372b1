// Package proof generates and verifies Merkle inclusion proofs binding a single
// header to the trusted root of the era it belongs to.
package proof

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/encoding/bytesutil"
	"github.com/prysmaticlabs/eraauth/era"
)

const (
	// inclusionProofFixedSize covers every fixed field plus the two list offsets.
	inclusionProofFixedSize = 97
	// MaxBranchLength bounds the era branch of an encoded proof.
	MaxBranchLength = 64
	// MaxExecutionBranchLength bounds the execution branch of an encoded proof.
	MaxExecutionBranchLength = 16
)

// InclusionProof binds one header to the trusted root of its era.
//
// Branch holds the siblings of the leaf at LeafIndex, ordered leaf to root. For
// pre-merge proofs the leaf is the header record root and the branch ends at the
// epoch data root, below the length mix-in. For beacon eras the leaf is the
// beacon block root at Slot and ExecutionBranch links the execution block hash
// to it. For Solana the leaf is the block hash itself and BlockNumber holds the
// Solana slot.
type InclusionProof struct {
	Era             era.Kind
	BlockNumber     primitives.BlockNumber
	BlockHash       common.Hash
	LeafIndex       uint64
	Branch          [][32]byte
	Slot            primitives.Slot
	BeaconBlockRoot common.Hash
	ExecutionBranch [][32]byte
}

// Copy returns a deep copy of the proof.
func (p *InclusionProof) Copy() *InclusionProof {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Branch = bytesutil.SafeCopyRoots(p.Branch)
	cp.ExecutionBranch = bytesutil.SafeCopyRoots(p.ExecutionBranch)
	return &cp
}

func (p *InclusionProof) isBeacon() bool {
	return p.Era == era.PostMerge || p.Era == era.PostCapella
}

// MarshalSSZ ssz marshals the proof.
func (p *InclusionProof) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(p)
}

// MarshalSSZTo ssz marshals the proof to a target array.
func (p *InclusionProof) MarshalSSZTo(buf []byte) ([]byte, error) {
	if len(p.Branch) > MaxBranchLength {
		return nil, ssz.ErrListTooBigFn("InclusionProof.Branch", len(p.Branch), MaxBranchLength)
	}
	if len(p.ExecutionBranch) > MaxExecutionBranchLength {
		return nil, ssz.ErrListTooBigFn("InclusionProof.ExecutionBranch", len(p.ExecutionBranch), MaxExecutionBranchLength)
	}
	dst := buf
	offset := inclusionProofFixedSize

	dst = ssz.MarshalUint8(dst, uint8(p.Era))
	dst = ssz.MarshalUint64(dst, uint64(p.BlockNumber))
	dst = append(dst, p.BlockHash[:]...)
	dst = ssz.MarshalUint64(dst, p.LeafIndex)
	dst = ssz.WriteOffset(dst, offset)
	offset += len(p.Branch) * fieldparams.RootLength
	dst = ssz.MarshalUint64(dst, uint64(p.Slot))
	dst = append(dst, p.BeaconBlockRoot[:]...)
	dst = ssz.WriteOffset(dst, offset)

	for i := range p.Branch {
		dst = append(dst, p.Branch[i][:]...)
	}
	for i := range p.ExecutionBranch {
		dst = append(dst, p.ExecutionBranch[i][:]...)
	}
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the proof.
func (p *InclusionProof) UnmarshalSSZ(buf []byte) error {
	size := uint64(len(buf))
	if size < inclusionProofFixedSize {
		return ssz.ErrSize
	}
	o4 := ssz.ReadOffset(buf[49:53])
	o7 := ssz.ReadOffset(buf[93:97])
	if o4 != inclusionProofFixedSize {
		return ssz.ErrInvalidVariableOffset
	}
	if o7 < o4 || o7 > size {
		return ssz.ErrOffset
	}

	branch, err := unmarshalRoots(buf[o4:o7], MaxBranchLength)
	if err != nil {
		return errors.Wrap(err, "branch")
	}
	execBranch, err := unmarshalRoots(buf[o7:], MaxExecutionBranchLength)
	if err != nil {
		return errors.Wrap(err, "execution branch")
	}

	*p = InclusionProof{
		Era:             era.Kind(ssz.UnmarshallUint8(buf[0:1])),
		BlockNumber:     primitives.BlockNumber(ssz.UnmarshallUint64(buf[1:9])),
		LeafIndex:       ssz.UnmarshallUint64(buf[41:49]),
		Branch:          branch,
		Slot:            primitives.Slot(ssz.UnmarshallUint64(buf[53:61])),
		ExecutionBranch: execBranch,
	}
	copy(p.BlockHash[:], buf[9:41])
	copy(p.BeaconBlockRoot[:], buf[61:93])
	return nil
}

func unmarshalRoots(buf []byte, limit int) ([][32]byte, error) {
	num, ok := ssz.DivideInt(len(buf), fieldparams.RootLength)
	if !ok {
		return nil, ssz.ErrSize
	}
	if num > limit {
		return nil, ssz.ErrListTooBigFn("roots", num, limit)
	}
	if num == 0 {
		return nil, nil
	}
	roots := make([][32]byte, num)
	for i := range roots {
		copy(roots[i][:], buf[i*fieldparams.RootLength:(i+1)*fieldparams.RootLength])
	}
	return roots, nil
}

// SizeSSZ returns the ssz encoded size in bytes for the proof.
func (p *InclusionProof) SizeSSZ() int {
	return inclusionProofFixedSize + (len(p.Branch)+len(p.ExecutionBranch))*fieldparams.RootLength
}

// HashTreeRoot ssz hashes the proof.
func (p *InclusionProof) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(p)
}

// HashTreeRootWith ssz hashes the proof with a hasher.
func (p *InclusionProof) HashTreeRootWith(hh ssz.HashWalker) error {
	if len(p.Branch) > MaxBranchLength {
		return ssz.ErrListTooBigFn("InclusionProof.Branch", len(p.Branch), MaxBranchLength)
	}
	if len(p.ExecutionBranch) > MaxExecutionBranchLength {
		return ssz.ErrListTooBigFn("InclusionProof.ExecutionBranch", len(p.ExecutionBranch), MaxExecutionBranchLength)
	}
	indx := hh.Index()
	hh.PutUint8(uint8(p.Era))
	hh.PutUint64(uint64(p.BlockNumber))
	hh.PutBytes(p.BlockHash[:])
	hh.PutUint64(p.LeafIndex)
	{
		subIndx := hh.Index()
		for _, r := range p.Branch {
			hh.Append(r[:])
		}
		hh.MerkleizeWithMixin(subIndx, uint64(len(p.Branch)), MaxBranchLength)
	}
	hh.PutUint64(uint64(p.Slot))
	hh.PutBytes(p.BeaconBlockRoot[:])
	{
		subIndx := hh.Index()
		for _, r := range p.ExecutionBranch {
			hh.Append(r[:])
		}
		hh.MerkleizeWithMixin(subIndx, uint64(len(p.ExecutionBranch)), MaxExecutionBranchLength)
	}
	hh.Merkleize(indx)
	return nil
}

// GetTree returns the proof as a fastssz proof tree.
func (p *InclusionProof) GetTree() (*ssz.Node, error) {
	return ssz.ProofTree(p)
}

type inclusionProofJSON struct {
	Era             era.Kind       `json:"era"`
	BlockNumber     hexutil.Uint64 `json:"blockNumber"`
	BlockHash       common.Hash    `json:"blockHash"`
	LeafIndex       hexutil.Uint64 `json:"leafIndex"`
	Branch          []common.Hash  `json:"branch"`
	Slot            hexutil.Uint64 `json:"slot,omitempty"`
	BeaconBlockRoot *common.Hash   `json:"beaconBlockRoot,omitempty"`
	ExecutionBranch []common.Hash  `json:"executionBranch,omitempty"`
}

// MarshalJSON encodes the proof with the era name and hex quantities. Beacon
// fields are only written for beacon eras.
func (p *InclusionProof) MarshalJSON() ([]byte, error) {
	enc := &inclusionProofJSON{
		Era:         p.Era,
		BlockNumber: hexutil.Uint64(p.BlockNumber),
		BlockHash:   p.BlockHash,
		LeafIndex:   hexutil.Uint64(p.LeafIndex),
		Branch:      bytesutil.RootsToHashes(p.Branch),
	}
	if p.isBeacon() {
		root := p.BeaconBlockRoot
		enc.Slot = hexutil.Uint64(p.Slot)
		enc.BeaconBlockRoot = &root
		enc.ExecutionBranch = bytesutil.RootsToHashes(p.ExecutionBranch)
	}
	return json.Marshal(enc)
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (p *InclusionProof) UnmarshalJSON(input []byte) error {
	var dec inclusionProofJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	*p = InclusionProof{
		Era:             dec.Era,
		BlockNumber:     primitives.BlockNumber(dec.BlockNumber),
		BlockHash:       dec.BlockHash,
		LeafIndex:       uint64(dec.LeafIndex),
		Branch:          bytesutil.HashesToRoots(dec.Branch),
		Slot:            primitives.Slot(dec.Slot),
		ExecutionBranch: bytesutil.HashesToRoots(dec.ExecutionBranch),
	}
	if dec.BeaconBlockRoot != nil {
		p.BeaconBlockRoot = *dec.BeaconBlockRoot
	}
	return nil
}
