package primitives_test

import (
	"testing"

	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/stretchr/testify/assert"
)

func TestBlockNumber_Epoch(t *testing.T) {
	tests := []struct {
		number primitives.BlockNumber
		epoch  primitives.EpochIndex
		index  uint64
	}{
		{0, 0, 0},
		{8191, 0, 8191},
		{8192, 1, 0},
		{15537393, 1896, 5361},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.epoch, tt.number.Epoch())
		assert.Equal(t, tt.index, tt.number.IndexInEpoch())
	}
}

func TestEpochIndex_Bounds(t *testing.T) {
	e := primitives.EpochIndex(2)
	assert.Equal(t, primitives.BlockNumber(16384), e.FirstBlock())
	assert.Equal(t, primitives.BlockNumber(24575), e.LastBlock())
	assert.Equal(t, "2 [16384..24575]", e.String())
}

func TestSlot_Era(t *testing.T) {
	s := primitives.Slot(4700013)
	assert.Equal(t, primitives.EraIndex(573), s.Era())
	assert.Equal(t, uint64(4700013-573*8192), s.IndexInEra())
	assert.Equal(t, primitives.Slot(573*8192), s.Era().FirstSlot())
}
