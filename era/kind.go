// Package era routes headers and blocks to the validation strategy of the
// consensus era they belong to and checks them against that era's trusted roots.
package era

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
)

// Kind identifies a consensus era.
type Kind uint8

const (
	// PreMerge covers proof-of-work blocks committed to by the master accumulator.
	PreMerge Kind = iota
	// PostMerge covers beacon eras committed to by historical_roots.
	PostMerge
	// PostCapella covers beacon eras committed to by historical_summaries.
	PostCapella
	// Solana covers Solana epochs committed to by externally supplied roots.
	Solana
)

var kindNames = map[Kind]string{
	PreMerge:    "pre-merge",
	PostMerge:   "post-merge",
	PostCapella: "post-capella",
	Solana:      "solana",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether k names a supported era.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedKind, "%q", name)
}

// MarshalText encodes the kind as its name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.Wrapf(ErrUnsupportedKind, "%d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// SelectByBlockNumber returns the era of an execution block.
func SelectByBlockNumber(cfg *params.EraConfig, n primitives.BlockNumber) Kind {
	switch {
	case n < cfg.MergeBlockNumber:
		return PreMerge
	case n < cfg.CapellaBlockNumber:
		return PostMerge
	default:
		return PostCapella
	}
}

// SelectBySlot returns the era of a beacon slot.
func SelectBySlot(cfg *params.EraConfig, slot primitives.Slot) Kind {
	if slot < cfg.CapellaForkSlot() {
		return PostMerge
	}
	return PostCapella
}
