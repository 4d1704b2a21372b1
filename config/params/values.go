package params

// ConfigName identifies one of the built-in era configurations.
type ConfigName int

const (
	Mainnet ConfigName = iota
	// Devnet names any configuration loaded from a file without a CONFIG_NAME.
	Devnet
)

// ConfigNames maps each built-in configuration to the name it carries in yaml.
var ConfigNames = map[ConfigName]string{
	Mainnet: "mainnet",
	Devnet:  "devnet",
}

func (n ConfigName) String() string {
	if s, ok := ConfigNames[n]; ok {
		return s
	}
	return "undefined"
}
