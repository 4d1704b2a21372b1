package flags

// via https://github.com/urfave/cli/issues/602

import (
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v2"
)

// EnumValue is a string flag restricted to the choices in Enum. The selected
// choice is stored in Destination; Value is the default.
type EnumValue struct {
	Name        string
	Usage       string
	Destination *string
	Enum        []string
	Value       string
}

// Set stores value if it is one of the allowed choices.
func (e *EnumValue) Set(value string) error {
	if !slices.Contains(e.Enum, value) {
		return fmt.Errorf("allowed values are %s", e.choices())
	}
	*e.Destination = value
	return nil
}

func (e *EnumValue) String() string {
	if e.Destination != nil && *e.Destination != "" {
		return *e.Destination
	}
	return e.Value
}

func (e *EnumValue) choices() string {
	return strings.Join(e.Enum, ", ")
}

// GenericFlag seeds Destination with the default and returns a cli flag whose
// usage lists the choices.
func (e EnumValue) GenericFlag() *cli.GenericFlag {
	*e.Destination = e.Value
	return &cli.GenericFlag{
		Name:  e.Name,
		Usage: fmt.Sprintf("%s (%s)", e.Usage, e.choices()),
		Value: &e,
	}
}
