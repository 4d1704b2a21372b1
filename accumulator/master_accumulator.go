package accumulator

import (
	"fmt"

	ssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/crypto/hash"
	"github.com/prysmaticlabs/eraauth/encoding/bytesutil"
	sszutil "github.com/prysmaticlabs/eraauth/encoding/ssz"
	"github.com/sirupsen/logrus"
)

// masterAccumulatorFixedSize is the size of the two offsets leading an encoded accumulator.
const masterAccumulatorFixedSize = 8

// MasterAccumulator holds the root of every pre-merge epoch, indexed by epoch.
// It is read-only after construction and safe for concurrent use.
type MasterAccumulator struct {
	historicalEpochs [][32]byte
	currentEpoch     []*HeaderRecord
}

// NewMasterAccumulator returns an accumulator over a copy of the given epoch roots.
func NewMasterAccumulator(roots [][32]byte) (*MasterAccumulator, error) {
	if len(roots) > fieldparams.MaxHistoricalEpochs {
		return nil, errors.Wrapf(ssz.ErrListTooBig, "%d epoch roots", len(roots))
	}
	return &MasterAccumulator{historicalEpochs: bytesutil.SafeCopyRoots(roots)}, nil
}

// BuildMasterAccumulator computes the roots of consecutive epochs starting at
// epoch 0 and collects them into an accumulator.
func BuildMasterAccumulator(epochs []*Epoch) (*MasterAccumulator, error) {
	roots := make([][32]byte, len(epochs))
	for i, e := range epochs {
		if e == nil {
			return nil, errors.Wrapf(ErrNilRecord, "epoch at index %d", i)
		}
		if e.Index() != primitives.EpochIndex(i) {
			return nil, errors.Wrapf(ErrNonContiguous, "epoch %d at position %d", e.Index(), i)
		}
		root, err := e.Root()
		if err != nil {
			return nil, errors.Wrapf(err, "could not compute root of epoch %d", e.Index())
		}
		roots[i] = root
	}
	return NewMasterAccumulator(roots)
}

// EpochRoot returns the trusted root of epoch i.
func (a *MasterAccumulator) EpochRoot(i primitives.EpochIndex) ([32]byte, error) {
	if uint64(i) >= uint64(len(a.historicalEpochs)) {
		return [32]byte{}, errors.Wrapf(ErrEpochRootNotFound, "epoch %d, accumulator holds %d", i, len(a.historicalEpochs))
	}
	return a.historicalEpochs[i], nil
}

// Len returns the number of epoch roots held.
func (a *MasterAccumulator) Len() int {
	return len(a.historicalEpochs)
}

// HistoricalEpochs returns a copy of the epoch roots.
func (a *MasterAccumulator) HistoricalEpochs() [][32]byte {
	return bytesutil.SafeCopyRoots(a.historicalEpochs)
}

// CurrentEpoch returns the records of the unfinished epoch, empty on mainnet.
func (a *MasterAccumulator) CurrentEpoch() []*HeaderRecord {
	out := make([]*HeaderRecord, len(a.currentEpoch))
	copy(out, a.currentEpoch)
	return out
}

// HashTreeRoot ssz hashes the accumulator as the container
// {historical_epochs: List[Bytes32, 2**17], current_epoch: List[HeaderRecord, 8192]}.
func (a *MasterAccumulator) HashTreeRoot() ([32]byte, error) {
	epochsRoot, err := sszutil.ByteArrayRootWithLimit(a.historicalEpochs, fieldparams.MaxHistoricalEpochs)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not hash historical epochs")
	}
	for i, r := range a.currentEpoch {
		if r == nil {
			return [32]byte{}, errors.Wrapf(ErrNilRecord, "current epoch index %d", i)
		}
	}
	currentRoot, err := sszutil.MerkleizeListSSZ(a.currentEpoch, fieldparams.EpochSize)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not hash current epoch")
	}
	return hash.Pair(epochsRoot, currentRoot), nil
}

// VerifyRoot checks the accumulator against a trusted root.
func (a *MasterAccumulator) VerifyRoot(expected [32]byte) error {
	root, err := a.HashTreeRoot()
	if err != nil {
		return err
	}
	if root != expected {
		log.WithFields(logrus.Fields{
			"expected": fmt.Sprintf("%#x", expected),
			"actual":   fmt.Sprintf("%#x", root),
		}).Error("Master accumulator root mismatch")
		return errors.Wrapf(ErrAccumulatorRoot, "expected %#x, got %#x", expected, root)
	}
	return nil
}

// MarshalSSZ ssz marshals the accumulator.
func (a *MasterAccumulator) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(a)
}

// MarshalSSZTo ssz marshals the accumulator to a target array.
func (a *MasterAccumulator) MarshalSSZTo(buf []byte) ([]byte, error) {
	if len(a.historicalEpochs) > fieldparams.MaxHistoricalEpochs {
		return nil, ssz.ErrListTooBig
	}
	if len(a.currentEpoch) > fieldparams.EpochSize {
		return nil, ssz.ErrListTooBig
	}
	dst := buf
	offset := masterAccumulatorFixedSize
	dst = ssz.WriteOffset(dst, offset)
	offset += len(a.historicalEpochs) * fieldparams.RootLength
	dst = ssz.WriteOffset(dst, offset)
	for i := range a.historicalEpochs {
		dst = append(dst, a.historicalEpochs[i][:]...)
	}
	for i, r := range a.currentEpoch {
		if r == nil {
			return nil, errors.Wrapf(ErrNilRecord, "current epoch index %d", i)
		}
		dst, _ = r.MarshalSSZTo(dst)
	}
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the accumulator.
func (a *MasterAccumulator) UnmarshalSSZ(buf []byte) error {
	size := uint64(len(buf))
	if size < masterAccumulatorFixedSize {
		return ssz.ErrSize
	}
	o0 := ssz.ReadOffset(buf[0:4])
	o1 := ssz.ReadOffset(buf[4:8])
	if o0 != masterAccumulatorFixedSize {
		return ssz.ErrInvalidVariableOffset
	}
	if o1 < o0 || o1 > size {
		return ssz.ErrOffset
	}

	epochsBuf := buf[o0:o1]
	if len(epochsBuf)%fieldparams.RootLength != 0 {
		return ssz.ErrSize
	}
	numEpochs := len(epochsBuf) / fieldparams.RootLength
	if numEpochs > fieldparams.MaxHistoricalEpochs {
		return ssz.ErrListTooBig
	}
	epochs := make([][32]byte, numEpochs)
	for i := range epochs {
		copy(epochs[i][:], epochsBuf[i*fieldparams.RootLength:])
	}

	currentBuf := buf[o1:]
	if len(currentBuf)%fieldparams.HeaderRecordLength != 0 {
		return ssz.ErrSize
	}
	numRecords := len(currentBuf) / fieldparams.HeaderRecordLength
	if numRecords > fieldparams.EpochSize {
		return ssz.ErrListTooBig
	}
	current := make([]*HeaderRecord, numRecords)
	for i := range current {
		current[i] = new(HeaderRecord)
		start := i * fieldparams.HeaderRecordLength
		if err := current[i].UnmarshalSSZ(currentBuf[start : start+fieldparams.HeaderRecordLength]); err != nil {
			return err
		}
	}

	a.historicalEpochs = epochs
	a.currentEpoch = current
	return nil
}

// SizeSSZ returns the ssz encoded size in bytes for the accumulator.
func (a *MasterAccumulator) SizeSSZ() int {
	return masterAccumulatorFixedSize +
		len(a.historicalEpochs)*fieldparams.RootLength +
		len(a.currentEpoch)*fieldparams.HeaderRecordLength
}
