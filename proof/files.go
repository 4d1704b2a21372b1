package proof

import (
	"encoding/json"
	"path/filepath"

	ssz "github.com/ferranbt/fastssz"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/io/file"
	"github.com/sirupsen/logrus"
)

// MaxProofsPerFile bounds the number of proofs decoded from one file.
const MaxProofsPerFile = 1 << 20

// Proofs is an ssz list of inclusion proofs, the on-disk form of a batch.
type Proofs []*InclusionProof

// MarshalSSZ ssz marshals the proofs.
func (ps Proofs) MarshalSSZ() ([]byte, error) {
	if len(ps) > MaxProofsPerFile {
		return nil, ssz.ErrListTooBigFn("Proofs", len(ps), MaxProofsPerFile)
	}
	size := 4 * len(ps)
	for i, p := range ps {
		if p == nil {
			return nil, errors.Wrapf(ErrMalformedProof, "nil proof at index %d", i)
		}
		size += p.SizeSSZ()
	}
	dst := make([]byte, 0, size)
	offset := 4 * len(ps)
	for _, p := range ps {
		dst = ssz.WriteOffset(dst, offset)
		offset += p.SizeSSZ()
	}
	for _, p := range ps {
		var err error
		if dst, err = p.MarshalSSZTo(dst); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// UnmarshalSSZ ssz unmarshals the proofs.
func (ps *Proofs) UnmarshalSSZ(buf []byte) error {
	num, err := ssz.DecodeDynamicLength(buf, MaxProofsPerFile)
	if err != nil {
		return err
	}
	if (num == 0 && len(buf) != 0) || 4*num > len(buf) {
		return ssz.ErrOffset
	}
	out := make(Proofs, num)
	err = ssz.UnmarshalDynamic(buf, num, func(indx int, b []byte) error {
		out[indx] = new(InclusionProof)
		return out[indx].UnmarshalSSZ(b)
	})
	if err != nil {
		return err
	}
	*ps = out
	return nil
}

// WriteProofs writes proofs to path. The encoding follows the extension: .json
// for JSON, .ssz_snappy for snappy compressed ssz, plain ssz otherwise.
func WriteProofs(path string, proofs []*InclusionProof) error {
	var enc []byte
	var err error
	switch filepath.Ext(path) {
	case ".json":
		enc, err = json.MarshalIndent(proofs, "", "  ")
	case ".ssz_snappy":
		if enc, err = Proofs(proofs).MarshalSSZ(); err == nil {
			enc = snappy.Encode(nil, enc)
		}
	default:
		enc, err = Proofs(proofs).MarshalSSZ()
	}
	if err != nil {
		return errors.Wrap(err, "could not encode proofs")
	}
	if err := file.WriteFile(path, enc); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"path":   path,
		"proofs": len(proofs),
	}).Debug("Wrote inclusion proofs")
	return nil
}

// ReadProofs reads proofs written by WriteProofs.
func ReadProofs(path string) ([]*InclusionProof, error) {
	enc, err := file.ReadFileAsBytes(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read proof file %s", path)
	}
	switch filepath.Ext(path) {
	case ".json":
		var proofs []*InclusionProof
		if err := json.Unmarshal(enc, &proofs); err != nil {
			return nil, errors.Wrapf(err, "could not decode proof file %s", path)
		}
		return proofs, nil
	case ".ssz_snappy":
		if enc, err = snappy.Decode(nil, enc); err != nil {
			return nil, errors.Wrapf(err, "could not decompress proof file %s", path)
		}
	}
	var proofs Proofs
	if err := proofs.UnmarshalSSZ(enc); err != nil {
		return nil, errors.Wrapf(err, "could not decode proof file %s", path)
	}
	return proofs, nil
}
