// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ConfigFlagName   = "config"
	ScenarioFlagName = "scenario"
)

func BindFlags(rootCMD *cobra.Command) {
	rootCMD.PersistentFlags().String(ConfigFlagName, ".", "Path to JSON configuration file or `env` to read it from the environment")
	_ = viper.BindPFlag(ConfigFlagName, rootCMD.PersistentFlags().Lookup(ConfigFlagName))

	rootCMD.PersistentFlags().StringSlice(ScenarioFlagName, nil, "Names of scenarios to run, all when empty")
	_ = viper.BindPFlag(ScenarioFlagName, rootCMD.PersistentFlags().Lookup(ScenarioFlagName))
}
