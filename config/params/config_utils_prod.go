package params

import (
	"sync"

	"github.com/mohae/deepcopy"
)

var (
	eraConfig     = MainnetConfig().Copy()
	eraConfigLock sync.RWMutex
)

// ActiveEraConfig retrieves the active era configuration.
func ActiveEraConfig() *EraConfig {
	eraConfigLock.RLock()
	defer eraConfigLock.RUnlock()
	return eraConfig
}

// OverrideEraConfig by replacing the config. The preferred pattern is to
// call ActiveEraConfig(), copy it, change the specific parameters, and then call
// OverrideEraConfig(c). Any subsequent calls to ActiveEraConfig() will
// return this new configuration.
func OverrideEraConfig(c *EraConfig) {
	eraConfigLock.Lock()
	defer eraConfigLock.Unlock()
	eraConfig = c
}

// Copy returns a copy of the config object.
func (c *EraConfig) Copy() *EraConfig {
	config := deepcopy.Copy(*c).(EraConfig)
	return &config
}
