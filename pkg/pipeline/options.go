// Package pipeline defines the typed configuration option descriptors that
// analyzers expose to the CLI and configuration layers.
package pipeline

import (
	"fmt"
	"strings"
)

// ConfigurationOptionType represents the possible types of a ConfigurationOption's value.
type ConfigurationOptionType int

const (
	// BoolConfigurationOption reflects the boolean value type.
	BoolConfigurationOption ConfigurationOptionType = iota
	// IntConfigurationOption reflects the integer value type.
	IntConfigurationOption
	// StringConfigurationOption reflects the string value type.
	StringConfigurationOption
	// FloatConfigurationOption reflects a floating point value type.
	FloatConfigurationOption
	// StringsConfigurationOption reflects the array of strings value type.
	StringsConfigurationOption
)

// String returns the type label shown next to the flag in CLI help. Boolean
// options render without a label, the cobra convention for toggles.
func (opt ConfigurationOptionType) String() string {
	switch opt {
	case IntConfigurationOption:
		return "int"
	case StringConfigurationOption, StringsConfigurationOption:
		return "string"
	case FloatConfigurationOption:
		return "float"
	default:
		return ""
	}
}

// ConfigurationOption describes one analyzer setting in a uniform way so the
// CLI can register flags and the config loader can validate keys without
// knowing analyzer internals.
type ConfigurationOption struct {
	// Default is the initial value of the configuration option.
	Default any
	// Name identifies the configuration option in facts.
	Name string
	// Description represents the help text about the configuration option.
	Description string
	// Flag corresponds to the CLI token with "--" prepended.
	Flag string
	// Type specifies the kind of the configuration option's value.
	Type ConfigurationOptionType
}

// FormatDefault converts the default value of ConfigurationOption to string.
// Used in the command line interface to show the argument's default value.
func (opt ConfigurationOption) FormatDefault() string {
	if opt.Type == StringsConfigurationOption {
		strSlice, ok := opt.Default.([]string)
		if !ok {
			return fmt.Sprint(opt.Default)
		}

		return fmt.Sprintf("%q", strings.Join(strSlice, ","))
	}

	if opt.Type != StringConfigurationOption {
		return fmt.Sprint(opt.Default)
	}

	return fmt.Sprintf("%q", opt.Default)
}
