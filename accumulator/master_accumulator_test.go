package accumulator_test

import (
	"os"
	"path/filepath"
	"testing"

	ssz "github.com/ferranbt/fastssz"
	fuzz "github.com/google/gofuzz"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/accumulator"
	"github.com/prysmaticlabs/eraauth/config/params"
	consensus_types "github.com/prysmaticlabs/eraauth/consensus-types"
	"github.com/prysmaticlabs/eraauth/testing/util"
	logTest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMasterAccumulator_EpochRoot(t *testing.T) {
	acc, epochs := util.NewMasterAccumulator(t, 3)
	assert.Equal(t, 3, acc.Len())
	for i, e := range epochs {
		want, err := e.Root()
		require.NoError(t, err)
		got, err := acc.EpochRoot(e.Index())
		require.NoError(t, err)
		assert.Equal(t, want, got, "epoch %d", i)
	}
	_, err := acc.EpochRoot(3)
	require.ErrorIs(t, err, accumulator.ErrEpochRootNotFound)
	assert.True(t, errors.Is(err, consensus_types.ErrLookup))
}

func TestNewMasterAccumulator_CopiesInput(t *testing.T) {
	roots := [][32]byte{{1}, {2}}
	acc, err := accumulator.NewMasterAccumulator(roots)
	require.NoError(t, err)
	roots[0] = [32]byte{9}
	got, err := acc.EpochRoot(0)
	require.NoError(t, err)
	assert.Equal(t, [32]byte{1}, got)

	epochs := acc.HistoricalEpochs()
	epochs[1] = [32]byte{9}
	got, err = acc.EpochRoot(1)
	require.NoError(t, err)
	assert.Equal(t, [32]byte{2}, got)

	_, err = accumulator.NewMasterAccumulator(make([][32]byte, 131073))
	assert.Error(t, err)
}

func TestBuildMasterAccumulator_Errors(t *testing.T) {
	_, err := accumulator.BuildMasterAccumulator([]*accumulator.Epoch{util.NewEpoch(t, 1)})
	require.ErrorIs(t, err, accumulator.ErrNonContiguous)
	_, err = accumulator.BuildMasterAccumulator([]*accumulator.Epoch{nil})
	require.ErrorIs(t, err, accumulator.ErrNilRecord)
}

func TestMasterAccumulator_HashTreeRoot(t *testing.T) {
	roots := [][32]byte{{1}, {2}, {3}}
	acc, err := accumulator.NewMasterAccumulator(roots)
	require.NoError(t, err)

	hh := ssz.NewHasher()
	indx := hh.Index()
	{
		sub := hh.Index()
		for _, r := range roots {
			hh.Append(r[:])
		}
		hh.MerkleizeWithMixin(sub, uint64(len(roots)), 131072)
	}
	{
		sub := hh.Index()
		hh.MerkleizeWithMixin(sub, 0, 8192)
	}
	hh.Merkleize(indx)
	want, err := hh.HashRoot()
	require.NoError(t, err)

	got, err := acc.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMasterAccumulator_SSZ(t *testing.T) {
	acc, _ := util.NewMasterAccumulator(t, 2)
	enc, err := acc.MarshalSSZ()
	require.NoError(t, err)
	assert.Equal(t, acc.SizeSSZ(), len(enc))
	assert.Equal(t, 8+2*32, len(enc))

	decoded := &accumulator.MasterAccumulator{}
	require.NoError(t, decoded.UnmarshalSSZ(enc))
	assert.Equal(t, acc.HistoricalEpochs(), decoded.HistoricalEpochs())
	assert.Empty(t, decoded.CurrentEpoch())

	assert.ErrorIs(t, decoded.UnmarshalSSZ(enc[:7]), ssz.ErrSize)
	bad := append([]byte(nil), enc...)
	bad[0] = 4
	assert.ErrorIs(t, decoded.UnmarshalSSZ(bad), ssz.ErrInvalidVariableOffset)
	bad = append([]byte(nil), enc...)
	bad[4], bad[5] = 0xff, 0xff
	assert.ErrorIs(t, decoded.UnmarshalSSZ(bad), ssz.ErrOffset)
	assert.ErrorIs(t, decoded.UnmarshalSSZ(enc[:len(enc)-1]), ssz.ErrOffset)
}

func TestMasterAccumulator_UnmarshalSSZ_Fuzz(t *testing.T) {
	fuzzer := fuzz.NewWithSeed(0)
	for i := 0; i < 1000; i++ {
		var buf []byte
		fuzzer.Fuzz(&buf)
		acc := &accumulator.MasterAccumulator{}
		if err := acc.UnmarshalSSZ(buf); err != nil {
			continue
		}
		enc, err := acc.MarshalSSZ()
		require.NoError(t, err)
		assert.Equal(t, len(buf), len(enc))
	}
}

func TestLoadMasterAccumulator(t *testing.T) {
	acc, _ := util.NewMasterAccumulator(t, 2)
	root, err := acc.HashTreeRoot()
	require.NoError(t, err)
	cfg := params.MainnetConfig().Copy()
	cfg.PreMergeAccumulatorRoot = root[:]

	dir := t.TempDir()
	for _, name := range []string{"accumulator.ssz", "accumulator.ssz_snappy"} {
		path := filepath.Join(dir, name)
		require.NoError(t, accumulator.WriteMasterAccumulator(path, acc))
		loaded, err := accumulator.LoadTrustedMasterAccumulator(path, cfg)
		require.NoError(t, err, name)
		assert.Equal(t, acc.HistoricalEpochs(), loaded.HistoricalEpochs())
	}

	hook := logTest.NewGlobal()
	_, err = accumulator.LoadTrustedMasterAccumulator(filepath.Join(dir, "accumulator.ssz"), params.MainnetConfig())
	require.ErrorIs(t, err, accumulator.ErrAccumulatorRoot)
	assert.True(t, errors.Is(err, consensus_types.ErrMismatch))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Master accumulator root mismatch", hook.LastEntry().Message)
	assert.Equal(t, params.MainnetAccumulatorRoot, hook.LastEntry().Data["expected"])

	_, err = accumulator.LoadMasterAccumulator(filepath.Join(dir, "missing.ssz"))
	assert.Error(t, err)
	garbage := filepath.Join(dir, "garbage.ssz_snappy")
	require.NoError(t, os.WriteFile(garbage, []byte{0xff, 0xff, 0xff}, 0600))
	_, err = accumulator.LoadMasterAccumulator(garbage)
	assert.ErrorContains(t, err, "could not decompress")
}

func TestLoadMasterAccumulator_Mainnet(t *testing.T) {
	path := filepath.Join("testdata", "premerge_accumulator.ssz_snappy")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("fixture %s not present", path)
	}
	acc, err := accumulator.LoadTrustedMasterAccumulator(path, params.MainnetConfig())
	require.NoError(t, err)
	assert.Equal(t, 1897, acc.Len())
}
