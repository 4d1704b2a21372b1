package era_test

import (
	"testing"

	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/era"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectByBlockNumber(t *testing.T) {
	cfg := params.MainnetConfig()
	tests := []struct {
		number primitives.BlockNumber
		want   era.Kind
	}{
		{number: 0, want: era.PreMerge},
		{number: 15537393, want: era.PreMerge},
		{number: 15537394, want: era.PostMerge},
		{number: 17034869, want: era.PostMerge},
		{number: 17034870, want: era.PostCapella},
		{number: 20000000, want: era.PostCapella},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, era.SelectByBlockNumber(cfg, tt.number), "block %d", tt.number)
	}
}

func TestSelectBySlot(t *testing.T) {
	cfg := params.MainnetConfig()
	assert.Equal(t, era.PostMerge, era.SelectBySlot(cfg, 4700013))
	assert.Equal(t, era.PostMerge, era.SelectBySlot(cfg, cfg.CapellaForkSlot()-1))
	assert.Equal(t, era.PostCapella, era.SelectBySlot(cfg, cfg.CapellaForkSlot()))
}

func TestKind_Text(t *testing.T) {
	for _, k := range []era.Kind{era.PreMerge, era.PostMerge, era.PostCapella, era.Solana} {
		text, err := k.MarshalText()
		require.NoError(t, err)
		var got era.Kind
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, k, got)
	}
	_, err := era.ParseKind("proof-of-authority")
	require.ErrorIs(t, err, era.ErrUnsupportedKind)
	_, err = era.Kind(9).MarshalText()
	require.ErrorIs(t, err, era.ErrUnsupportedKind)
	assert.Equal(t, "unknown", era.Kind(9).String())
}

func TestSummaryIndex(t *testing.T) {
	cfg := params.MainnetConfig()
	index, err := era.SummaryIndex(cfg, cfg.CapellaForkSlot())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), index)

	index, err = era.SummaryIndex(cfg, primitives.EraIndex(800).FirstSlot()+17)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), index)

	_, err = era.SummaryIndex(cfg, cfg.CapellaForkSlot()-1)
	require.ErrorIs(t, err, era.ErrWrongEra)
}
