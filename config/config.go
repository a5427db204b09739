// Copyright (C) 2025 Tenant Ops, Inc.
//
// This file is part of Offboarder.
//
// Offboarder is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Offboarder is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "OFFBOARDER"

// Option is one configurable value, addressable as a flag, an environment
// variable and a config file key.
type Option struct {
	Name       string
	Shorthand  string
	Usage      string
	Required   bool
	Persistent bool
	Default    interface{}
}

// Value returns the resolved value for the option.
func (s Option) Value() interface{} {
	return viper.Get(s.Name)
}

// Set overrides the resolved value for the option.
func (s Option) Set(value interface{}) {
	viper.Set(s.Name, value)
}

// Init registers the options as flags of the given command.
func Init(cmd *cobra.Command, options []Option) {
	for _, option := range options {
		var flags *pflag.FlagSet
		if option.Persistent {
			flags = cmd.PersistentFlags()
		} else {
			flags = cmd.Flags()
		}

		switch typed := option.Default.(type) {
		case bool:
			flags.BoolP(option.Name, option.Shorthand, typed, option.Usage)
		case int:
			flags.IntP(option.Name, option.Shorthand, typed, option.Usage)
		case string:
			flags.StringP(option.Name, option.Shorthand, typed, option.Usage)
		case []string:
			flags.StringSliceP(option.Name, option.Shorthand, typed, option.Usage)
		}

		if option.Required {
			cmd.MarkFlagRequired(option.Name)
		}
	}
}

// LoadValues resolves every option from flags, environment and the config
// file, in that order of precedence.
func LoadValues(cmd *cobra.Command, options []Option) {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	for _, option := range options {
		viper.SetDefault(option.Name, option.Default)
		if cmd != nil {
			if flag := cmd.Flags().Lookup(option.Name); flag != nil {
				viper.BindPFlag(option.Name, flag)
			} else if flag := cmd.PersistentFlags().Lookup(option.Name); flag != nil {
				viper.BindPFlag(option.Name, flag)
			}
		}
	}

	if configFile := ConfigFile.Value().(string); configFile != "" {
		viper.SetConfigFile(configFile)
		// a missing config file is not an error; flags and env still apply
		viper.ReadInConfig()
	}
}

// ConfigFileUsed returns the path of the config file viper loaded, if any.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// Options returns every registered option.
func Options() []Option {
	var options []Option
	options = append(options, GlobalConfig...)
	options = append(options, AzureConfig...)
	options = append(options, OffboardConfig...)
	options = append(options, OnboardConfig...)
	return options
}

func defaultConfigFile() string {
	if home, err := os.UserHomeDir(); err != nil {
		return ""
	} else {
		return filepath.Join(home, ".config", "offboarder", "config.json")
	}
}
