package accumulator

import (
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/io/file"
	"github.com/sirupsen/logrus"
)

// snappyExtension marks snappy block compressed ssz files.
const snappyExtension = ".ssz_snappy"

// LoadMasterAccumulator reads an ssz encoded accumulator from disk. Files ending
// in .ssz_snappy are snappy decompressed first.
func LoadMasterAccumulator(path string) (*MasterAccumulator, error) {
	enc, err := file.ReadFileAsBytes(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read accumulator file %s", path)
	}
	if filepath.Ext(path) == snappyExtension {
		enc, err = snappy.Decode(nil, enc)
		if err != nil {
			return nil, errors.Wrapf(err, "could not decompress accumulator file %s", path)
		}
	}
	acc := &MasterAccumulator{}
	if err := acc.UnmarshalSSZ(enc); err != nil {
		return nil, errors.Wrapf(err, "could not unmarshal accumulator file %s", path)
	}
	log.WithFields(logrus.Fields{
		"path":   path,
		"epochs": acc.Len(),
	}).Debug("Loaded master accumulator")
	return acc, nil
}

// LoadTrustedMasterAccumulator reads an accumulator and checks it against the
// root configured in cfg.
func LoadTrustedMasterAccumulator(path string, cfg *params.EraConfig) (*MasterAccumulator, error) {
	acc, err := LoadMasterAccumulator(path)
	if err != nil {
		return nil, err
	}
	if err := acc.VerifyRoot(cfg.AccumulatorRoot()); err != nil {
		return nil, errors.Wrapf(err, "accumulator file %s", path)
	}
	return acc, nil
}

// WriteMasterAccumulator writes an accumulator to disk, snappy compressed when
// the path ends in .ssz_snappy.
func WriteMasterAccumulator(path string, acc *MasterAccumulator) error {
	enc, err := acc.MarshalSSZ()
	if err != nil {
		return errors.Wrap(err, "could not marshal accumulator")
	}
	if filepath.Ext(path) == snappyExtension {
		enc = snappy.Encode(nil, enc)
	}
	return file.WriteFile(path, enc)
}
