package accumulator_test

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	ssz "github.com/ferranbt/fastssz"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/accumulator"
	consensus_types "github.com/prysmaticlabs/eraauth/consensus-types"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/crypto/hash"
	"github.com/prysmaticlabs/eraauth/testing/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRecord_TotalDifficultyLittleEndian(t *testing.T) {
	r := &accumulator.HeaderRecord{TotalDifficulty: uint256.NewInt(0x0102)}
	var want [32]byte
	want[0], want[1] = 0x02, 0x01
	assert.Equal(t, want, r.TotalDifficultyRoot())
	assert.Equal(t, [32]byte{}, (&accumulator.HeaderRecord{}).TotalDifficultyRoot())
}

// Leaves of mainnet blocks 0 and 1, computed with an independent SSZ
// implementation from their block hashes and total difficulties.
func TestHeaderRecord_MainnetLeaves(t *testing.T) {
	tests := []struct {
		number primitives.BlockNumber
		hash   string
		td     uint64
		leaf   string
	}{
		{
			number: 0,
			hash:   "0xd4e56740f876aef8c010b86a40d5f56745a118d0906a34e69aec8c0db1cb8fa3",
			td:     17179869184,
			leaf:   "0x23d6398abe4eba641e97a075b30780c12ebe18b24e83a9a9c7bdd94a910cf749",
		},
		{
			number: 1,
			hash:   "0x88e96d4537bea4d9c05d12549907b32561d3bf31f45aae734cdc119f13406cb6",
			td:     34351349760,
			leaf:   "0xb24ceb4d129f39ae60862edb4119e7d7bde62e9b50cc024d718070c5c40c2e53",
		},
	}
	for _, tt := range tests {
		r := &accumulator.HeaderRecord{
			BlockNumber:     tt.number,
			BlockHash:       common.HexToHash(tt.hash),
			TotalDifficulty: uint256.NewInt(tt.td),
		}
		leaf, err := r.HashTreeRoot()
		require.NoError(t, err)
		assert.Equal(t, common.HexToHash(tt.leaf), common.Hash(leaf), "block %d", tt.number)
	}
}

func TestHeaderRecord_HashTreeRoot(t *testing.T) {
	r := util.NewHeaderRecords(5, 1)[0]
	root, err := r.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, hash.Pair(r.BlockHash, r.TotalDifficultyRoot()), root)

	withHasher, err := ssz.HashWithDefaultHasher(r)
	require.NoError(t, err)
	assert.Equal(t, root, withHasher)

	tree, err := r.GetTree()
	require.NoError(t, err)
	assert.Equal(t, root[:], tree.Hash())
}

func TestHeaderRecord_SSZ(t *testing.T) {
	r := util.NewHeaderRecords(77, 1)[0]
	enc, err := r.MarshalSSZ()
	require.NoError(t, err)
	require.Len(t, enc, 64)
	assert.Equal(t, r.BlockHash[:], enc[:32])

	decoded := &accumulator.HeaderRecord{}
	require.NoError(t, decoded.UnmarshalSSZ(enc))
	assert.Equal(t, r.BlockHash, decoded.BlockHash)
	assert.Equal(t, r.TotalDifficulty, decoded.TotalDifficulty)
	assert.Error(t, decoded.UnmarshalSSZ(enc[:63]))
}

func TestNewHeaderRecord(t *testing.T) {
	header := &types.Header{
		ParentHash: common.Hash{9},
		Number:     big.NewInt(1234),
		Difficulty: big.NewInt(1),
		Extra:      []byte("record"),
	}
	r, err := accumulator.NewHeaderRecord(header, uint256.NewInt(99))
	require.NoError(t, err)
	assert.Equal(t, header.Hash(), r.BlockHash)
	assert.Equal(t, header.ParentHash, r.ParentHash)
	require.NoError(t, r.VerifyHash())

	header.Extra = []byte("mutated after copy")
	require.NoError(t, r.VerifyHash())

	r.Header.Extra = []byte("tampered")
	err = r.VerifyHash()
	require.ErrorIs(t, err, accumulator.ErrHeaderHashMismatch)
	assert.True(t, errors.Is(err, consensus_types.ErrMismatch))
	assert.NotEqual(t, r.BlockHash, r.Hash())

	_, err = accumulator.NewHeaderRecord(&types.Header{}, nil)
	require.ErrorIs(t, err, accumulator.ErrNilRecord)
}

func TestHeaderRecord_JSON(t *testing.T) {
	full := util.NewFullHeaderRecords(t, 10, 1)[0]
	enc, err := json.Marshal(full)
	require.NoError(t, err)
	assert.Contains(t, string(enc), `"number":"0xa"`)

	decoded := &accumulator.HeaderRecord{}
	require.NoError(t, json.Unmarshal(enc, decoded))
	assert.Equal(t, full.BlockNumber, decoded.BlockNumber)
	assert.Equal(t, full.TotalDifficulty, decoded.TotalDifficulty)
	require.NotNil(t, decoded.Header)
	assert.Equal(t, full.Header.Hash(), decoded.Header.Hash())
	require.NoError(t, decoded.VerifyHash())

	input := `{"number":"0x1","hash":"0x0000000000000000000000000000000000000000000000000000000000000001","parentHash":"0x0000000000000000000000000000000000000000000000000000000000000000"}`
	bare := &accumulator.HeaderRecord{}
	require.NoError(t, json.Unmarshal([]byte(input), bare))
	assert.Nil(t, bare.TotalDifficulty)
	assert.Nil(t, bare.Header)

	overflow := `{"number":"0x1","hash":"0x0000000000000000000000000000000000000000000000000000000000000001","parentHash":"0x0000000000000000000000000000000000000000000000000000000000000000","totalDifficulty":"0x1` + zeros(64) + `"}`
	assert.Error(t, json.Unmarshal([]byte(overflow), bare))
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}
