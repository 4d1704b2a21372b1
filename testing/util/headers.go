// Package util builds deterministic header records, epochs and beacon eras for tests.
package util

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/prysmaticlabs/eraauth/accumulator"
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/crypto/hash"
	"github.com/prysmaticlabs/eraauth/encoding/bytesutil"
	"github.com/stretchr/testify/require"
)

// difficulty is the per block difficulty of synthetic chains.
const difficulty = 17_179_869_184

// HeaderHash returns the synthetic hash of block n.
func HeaderHash(n primitives.BlockNumber) common.Hash {
	return hash.Hash(append([]byte("header"), bytesutil.Bytes8(uint64(n))...))
}

// TotalDifficulty returns the synthetic total difficulty at block n.
func TotalDifficulty(n primitives.BlockNumber) *uint256.Int {
	td := uint256.NewInt(uint64(n) + 1)
	return td.Mul(td, uint256.NewInt(difficulty))
}

// NewHeaderRecords returns count chained records starting at block first. They
// carry no full header.
func NewHeaderRecords(first primitives.BlockNumber, count int) []*accumulator.HeaderRecord {
	records := make([]*accumulator.HeaderRecord, count)
	parent := common.Hash{}
	if first > 0 {
		parent = HeaderHash(first - 1)
	}
	for i := range records {
		n := first + primitives.BlockNumber(i)
		records[i] = &accumulator.HeaderRecord{
			BlockNumber:     n,
			BlockHash:       HeaderHash(n),
			ParentHash:      parent,
			TotalDifficulty: TotalDifficulty(n),
		}
		parent = records[i].BlockHash
	}
	return records
}

// NewFullHeaderRecords returns count chained records starting at block first,
// each backed by a full execution header.
func NewFullHeaderRecords(t testing.TB, first primitives.BlockNumber, count int) []*accumulator.HeaderRecord {
	records := make([]*accumulator.HeaderRecord, count)
	parent := common.Hash{}
	for i := range records {
		n := first + primitives.BlockNumber(i)
		header := &types.Header{
			ParentHash: parent,
			Number:     new(big.Int).SetUint64(uint64(n)),
			Difficulty: big.NewInt(difficulty),
			GasLimit:   5000,
			Time:       1438269973 + 15*uint64(n),
			Extra:      []byte("eraauth"),
		}
		rec, err := accumulator.NewHeaderRecord(header, TotalDifficulty(n))
		require.NoError(t, err)
		records[i] = rec
		parent = rec.BlockHash
	}
	return records
}

// NewEpoch returns the synthetic epoch with the given index.
func NewEpoch(t testing.TB, index primitives.EpochIndex) *accumulator.Epoch {
	e, err := accumulator.EpochFromHeaders(NewHeaderRecords(index.FirstBlock(), fieldparams.EpochSize))
	require.NoError(t, err)
	return e
}

// NewMasterAccumulator returns an accumulator over the roots of epochs 0 to count-1.
func NewMasterAccumulator(t testing.TB, count int) (*accumulator.MasterAccumulator, []*accumulator.Epoch) {
	epochs := make([]*accumulator.Epoch, count)
	for i := range epochs {
		epochs[i] = NewEpoch(t, primitives.EpochIndex(i))
	}
	acc, err := accumulator.BuildMasterAccumulator(epochs)
	require.NoError(t, err)
	return acc, epochs
}
