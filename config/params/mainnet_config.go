package params

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
)

// MainnetAccumulatorRoot is the hash tree root of the pre-merge master accumulator
// published for Ethereum mainnet.
const MainnetAccumulatorRoot = "0x8eac399e24480dce3cfe06f4bdecba51c6e5d0c46200e3e8611a0b44a3a69ff9"

// MainnetConfig returns the configuration to be used in the main network.
func MainnetConfig() *EraConfig {
	return mainnetEraConfig
}

var mainnetEraConfig = &EraConfig{
	ConfigName:              ConfigNames[Mainnet],
	MergeBlockNumber:        15537394,
	CapellaBlockNumber:      17034870,
	BellatrixForkEpoch:      144896,
	CapellaForkEpoch:        194048,
	DenebForkEpoch:          269568,
	SlotsPerEpoch:           32,
	SlotsPerHistoricalRoot:  fieldparams.SlotsPerHistoricalRoot,
	EpochSize:               fieldparams.EpochSize,
	FinalPreMergeEpoch:      1896,
	SolanaEpochLength:       fieldparams.SolanaEpochLength,
	SolanaTreeDepth:         fieldparams.SolanaTreeDepth,
	PreMergeAccumulatorRoot: hexutil.MustDecode(MainnetAccumulatorRoot),
}
