package accumulator

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	ssz "github.com/ferranbt/fastssz"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/crypto/hash"
	"github.com/prysmaticlabs/eraauth/encoding/bytesutil"
)

// HeaderRecord is the minimal projection of an execution header committed to by
// an epoch accumulator. TotalDifficulty is only meaningful before the merge.
// When Header is set it takes precedence over BlockHash, so a record built from a
// tampered header no longer matches its accumulator leaf.
type HeaderRecord struct {
	BlockNumber     primitives.BlockNumber
	BlockHash       common.Hash
	ParentHash      common.Hash
	TotalDifficulty *uint256.Int
	Header          *types.Header
}

// NewHeaderRecord projects a full header and its total difficulty into a record.
func NewHeaderRecord(header *types.Header, td *uint256.Int) (*HeaderRecord, error) {
	if header == nil || header.Number == nil {
		return nil, errors.Wrap(ErrNilRecord, "header has no number")
	}
	if !header.Number.IsUint64() {
		return nil, errors.Errorf("block number %s overflows uint64", header.Number)
	}
	var totalDifficulty *uint256.Int
	if td != nil {
		totalDifficulty = new(uint256.Int).Set(td)
	}
	return &HeaderRecord{
		BlockNumber:     primitives.BlockNumber(header.Number.Uint64()),
		BlockHash:       header.Hash(),
		ParentHash:      header.ParentHash,
		TotalDifficulty: totalDifficulty,
		Header:          types.CopyHeader(header),
	}, nil
}

// Hash returns the hash of the full header when present, the stored block hash otherwise.
func (h *HeaderRecord) Hash() common.Hash {
	if h.Header != nil {
		return h.Header.Hash()
	}
	return h.BlockHash
}

// VerifyHash checks that the full header, if any, agrees with the stored number and hash.
func (h *HeaderRecord) VerifyHash() error {
	if h.Header == nil {
		return nil
	}
	if h.Header.Number == nil || h.Header.Number.Uint64() != uint64(h.BlockNumber) {
		return errors.Wrapf(ErrHeaderHashMismatch, "header number %v, record number %d", h.Header.Number, h.BlockNumber)
	}
	if computed := h.Header.Hash(); computed != h.BlockHash {
		return errors.Wrapf(ErrHeaderHashMismatch, "block %d: computed %#x, recorded %#x", h.BlockNumber, computed, h.BlockHash)
	}
	return nil
}

// TotalDifficultyRoot is the hash tree root of the total difficulty, its
// little-endian uint256 serialization. A missing total difficulty is zero.
func (h *HeaderRecord) TotalDifficultyRoot() [32]byte {
	var chunk [32]byte
	if h.TotalDifficulty == nil {
		return chunk
	}
	be := h.TotalDifficulty.Bytes32()
	copy(chunk[:], bytesutil.ReverseByteOrder(be[:]))
	return chunk
}

// MarshalSSZ ssz marshals the record in its accumulator form {block_hash, total_difficulty}.
func (h *HeaderRecord) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(h)
}

// MarshalSSZTo ssz marshals the record to a target array.
func (h *HeaderRecord) MarshalSSZTo(buf []byte) ([]byte, error) {
	blockHash := h.Hash()
	td := h.TotalDifficultyRoot()
	dst := append(buf, blockHash[:]...)
	return append(dst, td[:]...), nil
}

// UnmarshalSSZ ssz unmarshals a record. The encoding carries neither the block
// number nor the parent hash, so both are left zero.
func (h *HeaderRecord) UnmarshalSSZ(buf []byte) error {
	if len(buf) != fieldparams.HeaderRecordLength {
		return ssz.ErrSize
	}
	*h = HeaderRecord{
		TotalDifficulty: new(uint256.Int).SetBytes32(bytesutil.ReverseByteOrder(buf[32:64])),
	}
	copy(h.BlockHash[:], buf[0:32])
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the record.
func (h *HeaderRecord) SizeSSZ() int {
	return fieldparams.HeaderRecordLength
}

// HashTreeRoot ssz hashes the record. This is the leaf of the epoch accumulator.
func (h *HeaderRecord) HashTreeRoot() ([32]byte, error) {
	return hash.Pair(h.Hash(), h.TotalDifficultyRoot()), nil
}

// HashTreeRootWith ssz hashes the record with a hasher.
func (h *HeaderRecord) HashTreeRootWith(hh ssz.HashWalker) error {
	indx := hh.Index()
	blockHash := h.Hash()
	hh.PutBytes(blockHash[:])
	td := h.TotalDifficultyRoot()
	hh.PutBytes(td[:])
	hh.Merkleize(indx)
	return nil
}

// GetTree returns the record as a fastssz proof tree.
func (h *HeaderRecord) GetTree() (*ssz.Node, error) {
	return ssz.ProofTree(h)
}

type headerRecordJSON struct {
	Number          hexutil.Uint64 `json:"number"`
	Hash            common.Hash    `json:"hash"`
	ParentHash      common.Hash    `json:"parentHash"`
	TotalDifficulty *hexutil.Big   `json:"totalDifficulty,omitempty"`
	Header          hexutil.Bytes  `json:"header,omitempty"`
}

// MarshalJSON encodes the record with hex quantities. A full header is carried
// as its RLP encoding.
func (h *HeaderRecord) MarshalJSON() ([]byte, error) {
	enc := &headerRecordJSON{
		Number:     hexutil.Uint64(h.BlockNumber),
		Hash:       h.BlockHash,
		ParentHash: h.ParentHash,
	}
	if h.TotalDifficulty != nil {
		enc.TotalDifficulty = (*hexutil.Big)(h.TotalDifficulty.ToBig())
	}
	if h.Header != nil {
		raw, err := rlp.EncodeToBytes(h.Header)
		if err != nil {
			return nil, errors.Wrap(err, "could not rlp encode header")
		}
		enc.Header = raw
	}
	return json.Marshal(enc)
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (h *HeaderRecord) UnmarshalJSON(input []byte) error {
	var dec headerRecordJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	rec := HeaderRecord{
		BlockNumber: primitives.BlockNumber(dec.Number),
		BlockHash:   dec.Hash,
		ParentHash:  dec.ParentHash,
	}
	if dec.TotalDifficulty != nil {
		td, overflow := uint256.FromBig(dec.TotalDifficulty.ToInt())
		if overflow {
			return errors.Errorf("total difficulty of block %d overflows 256 bits", rec.BlockNumber)
		}
		rec.TotalDifficulty = td
	}
	if len(dec.Header) > 0 {
		header := new(types.Header)
		if err := rlp.DecodeBytes(dec.Header, header); err != nil {
			return errors.Wrapf(err, "could not decode header of block %d", rec.BlockNumber)
		}
		rec.Header = header
	}
	*h = rec
	return nil
}
