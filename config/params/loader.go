package params

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var errInvalidConfig = errors.New("invalid era config")

// UnmarshalConfig loads an era config from YAML bytes, starting from a copy of
// the provided config (mainnet when nil). Hex values are converted into byte
// sequences the YAML decoder understands.
func UnmarshalConfig(yamlFile []byte, conf *EraConfig) (*EraConfig, error) {
	if conf == nil {
		conf = MainnetConfig().Copy()
	} else {
		conf = conf.Copy()
	}
	// To track if config name is defined inside config file.
	hasConfigName := false
	lines := strings.Split(string(yamlFile), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "CONFIG_NAME") {
			hasConfigName = true
		}
		if !strings.HasPrefix(line, "#") && strings.Contains(line, "0x") {
			parts, err := ReplaceHexStringWithYAMLFormat(line)
			if err != nil {
				return nil, errors.Wrapf(err, "could not parse line %d", i+1)
			}
			lines[i] = strings.Join(parts, "\n")
		}
	}
	yamlFile = []byte(strings.Join(lines, "\n"))
	if err := yaml.UnmarshalStrict(yamlFile, conf); err != nil {
		if _, ok := err.(*yaml.TypeError); !ok {
			return nil, errors.Wrap(err, "failed to parse era config yaml")
		}
		log.WithError(err).Error("There were some issues parsing the config from a yaml file")
	}
	if !hasConfigName {
		conf.ConfigName = ConfigNames[Devnet]
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	log.Debugf("Config file values: %+v", conf)
	return conf, nil
}

// UnmarshalConfigFile reads the file at path and passes its contents to UnmarshalConfig.
func UnmarshalConfigFile(path string, conf *EraConfig) (*EraConfig, error) {
	yamlFile, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, errors.Wrap(err, "failed to read era config file")
	}
	return UnmarshalConfig(yamlFile, conf)
}

// LoadEraConfigFile loads the config file at path on top of mainnet values and
// makes it the active era config.
func LoadEraConfigFile(path string) error {
	conf, err := UnmarshalConfigFile(path, nil)
	if err != nil {
		return err
	}
	OverrideEraConfig(conf)
	return nil
}

// ReplaceHexStringWithYAMLFormat will replace hex strings that the yaml parser will understand.
func ReplaceHexStringWithYAMLFormat(line string) ([]string, error) {
	parts := strings.SplitN(line, "0x", 2)
	decoded, err := hex.DecodeString(strings.TrimSpace(strings.Trim(parts[1], `'" `)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode hex string")
	}
	if len(decoded) > fieldparams.RootLength {
		return nil, errors.Errorf("hex value of %d bytes exceeds %d", len(decoded), fieldparams.RootLength)
	}
	var arr [fieldparams.RootLength]byte
	copy(arr[:], decoded)
	fixedByte, err := yaml.Marshal(arr[:len(decoded)])
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal hex value")
	}
	parts[0] = strings.TrimRight(parts[0], `'" `)
	parts[1] = string(fixedByte)
	return parts, nil
}

// Validate rejects configurations whose era boundaries are not ordered or whose
// sizes disagree with the compiled tree depths.
func (c *EraConfig) Validate() error {
	switch {
	case c.MergeBlockNumber > c.CapellaBlockNumber:
		return errors.Wrapf(errInvalidConfig, "merge block %d after capella block %d", c.MergeBlockNumber, c.CapellaBlockNumber)
	case c.BellatrixForkEpoch > c.CapellaForkEpoch || c.CapellaForkEpoch > c.DenebForkEpoch:
		return errors.Wrap(errInvalidConfig, "fork epochs out of order")
	case c.SlotsPerEpoch == 0:
		return errors.Wrap(errInvalidConfig, "zero slots per epoch")
	case c.SlotsPerHistoricalRoot != fieldparams.SlotsPerHistoricalRoot:
		return errors.Wrapf(errInvalidConfig, "slots per historical root must be %d", fieldparams.SlotsPerHistoricalRoot)
	case c.EpochSize != fieldparams.EpochSize:
		return errors.Wrapf(errInvalidConfig, "epoch size must be %d", fieldparams.EpochSize)
	case c.SolanaEpochLength == 0 || c.SolanaEpochLength > uint64(1)<<c.SolanaTreeDepth:
		return errors.Wrapf(errInvalidConfig, "solana epoch of %d slots does not fit a tree of depth %d", c.SolanaEpochLength, c.SolanaTreeDepth)
	case len(c.PreMergeAccumulatorRoot) != 0 && len(c.PreMergeAccumulatorRoot) != fieldparams.RootLength:
		return errors.Wrapf(errInvalidConfig, "accumulator root of %d bytes", len(c.PreMergeAccumulatorRoot))
	}
	return nil
}

// ConfigToYaml takes a provided config and outputs its contents in yaml, in the
// format UnmarshalConfig accepts.
func ConfigToYaml(cfg *EraConfig) []byte {
	lines := []string{
		fmt.Sprintf("CONFIG_NAME: '%s'", cfg.ConfigName),
		fmt.Sprintf("MERGE_BLOCK_NUMBER: %d", cfg.MergeBlockNumber),
		fmt.Sprintf("CAPELLA_BLOCK_NUMBER: %d", cfg.CapellaBlockNumber),
		fmt.Sprintf("BELLATRIX_FORK_EPOCH: %d", cfg.BellatrixForkEpoch),
		fmt.Sprintf("CAPELLA_FORK_EPOCH: %d", cfg.CapellaForkEpoch),
		fmt.Sprintf("DENEB_FORK_EPOCH: %d", cfg.DenebForkEpoch),
		fmt.Sprintf("SLOTS_PER_EPOCH: %d", cfg.SlotsPerEpoch),
		fmt.Sprintf("SLOTS_PER_HISTORICAL_ROOT: %d", cfg.SlotsPerHistoricalRoot),
		fmt.Sprintf("EPOCH_SIZE: %d", cfg.EpochSize),
		fmt.Sprintf("FINAL_PRE_MERGE_EPOCH: %d", cfg.FinalPreMergeEpoch),
		fmt.Sprintf("SOLANA_EPOCH_LENGTH: %d", cfg.SolanaEpochLength),
		fmt.Sprintf("SOLANA_TREE_DEPTH: %d", cfg.SolanaTreeDepth),
	}
	if len(cfg.PreMergeAccumulatorRoot) > 0 {
		lines = append(lines, fmt.Sprintf("PRE_MERGE_ACCUMULATOR_ROOT: %#x", cfg.PreMergeAccumulatorRoot))
	}
	return []byte(strings.Join(lines, "\n"))
}
