// Package reference reads the headers, beacon blocks and trusted reference data
// the eraauth commands operate on.
package reference

import (
	"encoding/json"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/accumulator"
	"github.com/prysmaticlabs/eraauth/cmd/flags"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/consensus-types/beacon"
	"github.com/prysmaticlabs/eraauth/encoding/bytesutil"
	"github.com/prysmaticlabs/eraauth/io/file"
	"github.com/prysmaticlabs/eraauth/proof"
	"github.com/urfave/cli/v2"
)

type sszUnmarshaler interface {
	UnmarshalSSZ(buf []byte) error
}

// decodeFile decodes path into v, choosing the codec by extension: JSON for
// .json, snappy compressed ssz for .ssz_snappy and plain ssz otherwise.
func decodeFile(path string, v sszUnmarshaler) error {
	enc, err := file.ReadFileAsBytes(path)
	if err != nil {
		return errors.Wrapf(err, "could not read %s", path)
	}
	switch filepath.Ext(path) {
	case ".json":
		err = json.Unmarshal(enc, v)
	case ".ssz_snappy":
		if enc, err = snappy.Decode(nil, enc); err == nil {
			err = v.UnmarshalSSZ(enc)
		}
	default:
		err = v.UnmarshalSSZ(enc)
	}
	return errors.Wrapf(err, "could not decode %s", path)
}

func decodeJSON(path string, v interface{}) error {
	enc, err := file.ReadFileAsBytes(path)
	if err != nil {
		return errors.Wrapf(err, "could not read %s", path)
	}
	return errors.Wrapf(json.Unmarshal(enc, v), "could not decode %s", path)
}

// ReadHeaderRecords reads a JSON array of header records.
func ReadHeaderRecords(path string) ([]*accumulator.HeaderRecord, error) {
	var records []*accumulator.HeaderRecord
	if err := decodeJSON(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ReadBeaconBlocks reads a JSON array of beacon blocks, null for empty slots.
func ReadBeaconBlocks(path string) ([]*beacon.BeaconBlock, error) {
	var blocks []*beacon.BeaconBlock
	if err := decodeJSON(path, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// ReadHistoricalRoots reads the historical_roots list of a beacon state.
func ReadHistoricalRoots(path string) (beacon.HistoricalRoots, error) {
	var roots beacon.HistoricalRoots
	if err := decodeFile(path, &roots); err != nil {
		return nil, err
	}
	return roots, nil
}

// ReadHistoricalSummaries reads the historical_summaries list of a beacon state.
func ReadHistoricalSummaries(path string) (beacon.HistoricalSummaries, error) {
	var summaries beacon.HistoricalSummaries
	if err := decodeFile(path, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// ReadSolanaRoots reads a JSON array of Solana epoch roots.
func ReadSolanaRoots(path string) ([][32]byte, error) {
	var hashes []common.Hash
	if err := decodeJSON(path, &hashes); err != nil {
		return nil, err
	}
	return bytesutil.HashesToRoots(hashes), nil
}

// Accumulator loads the accumulator named by the accumulator flag and checks it
// against the configured trusted root.
func Accumulator(cliCtx *cli.Context) (*accumulator.MasterAccumulator, error) {
	path := cliCtx.String(flags.AccumulatorFlag.Name)
	if path == "" {
		return nil, errors.Errorf("--%s is required", flags.AccumulatorFlag.Name)
	}
	return accumulator.LoadTrustedMasterAccumulator(path, params.ActiveEraConfig())
}

// HistoricalData collects the reference data named by the historical flags. Unset
// flags leave their part empty.
func HistoricalData(cliCtx *cli.Context) (*proof.HistoricalData, error) {
	hist := &proof.HistoricalData{Config: params.ActiveEraConfig()}
	var err error
	if path := cliCtx.String(flags.HistoricalRootsFlag.Name); path != "" {
		if hist.HistoricalRoots, err = ReadHistoricalRoots(path); err != nil {
			return nil, err
		}
	}
	if path := cliCtx.String(flags.HistoricalSummariesFlag.Name); path != "" {
		if hist.HistoricalSummaries, err = ReadHistoricalSummaries(path); err != nil {
			return nil, err
		}
	}
	if path := cliCtx.String(flags.SolanaRootsFlag.Name); path != "" {
		if hist.SolanaRoots, err = ReadSolanaRoots(path); err != nil {
			return nil, err
		}
	}
	return hist, nil
}
