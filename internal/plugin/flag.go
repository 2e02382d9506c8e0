package plugin

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/pflag"
)

var FlagType = "plugins"

type Flag []string

func (f *Flag) String() string {
	if f == nil || len(*f) == 0 {
		return "[]"
	}

	b, err := json.Marshal(f)
	if err != nil {
		return err.Error()
	}

	return string(b)
}

func (f *Flag) Set(value string) error {
	*f = Flag{}

	if value == "" || value == "[]" {
		return nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return fmt.Errorf("unmarshalling %s flag value: %w", FlagType, err)
	}

	*f = ids
	return nil
}

func (f *Flag) Type() string {
	return FlagType
}

// GetItems returns the parsed plugin identifiers.
func (f *Flag) GetItems() []string {
	if f == nil {
		return nil
	}
	return *f
}

var _ pflag.Value = (*Flag)(nil)
