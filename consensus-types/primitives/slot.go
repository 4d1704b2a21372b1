package primitives

import (
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
)

// Slot represents a single slot of the beacon chain, or of a Solana ledger.
type Slot uint64

// Epoch represents a beacon chain epoch.
type Epoch uint64

// EraIndex is the index of a group of SlotsPerHistoricalRoot slots, which is
// also the index of its entry in historical_roots or historical_summaries.
type EraIndex uint64

// Era returns the index of the historical batch containing the slot.
func (s Slot) Era() EraIndex {
	return EraIndex(uint64(s) / fieldparams.SlotsPerHistoricalRoot)
}

// IndexInEra returns the position of the slot in its historical batch's block_roots.
func (s Slot) IndexInEra() uint64 {
	return uint64(s) % fieldparams.SlotsPerHistoricalRoot
}

// FirstSlot is the first slot of the era.
func (e EraIndex) FirstSlot() Slot {
	return Slot(uint64(e) * fieldparams.SlotsPerHistoricalRoot)
}
