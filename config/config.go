// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/imdario/mergo"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/sprintertech/bridge-verifier/deployment"
)

const ENV_PREFIX = "BRIDGE_VERIFIER"

type Config struct {
	VerifierConfig  VerifierConfig
	ChainConfigs    []map[string]interface{}
	ScenarioConfigs []map[string]interface{}
}

type VerifierConfig struct {
	LogLevel                  zerolog.Level
	OpenTelemetryCollectorURL string
	Env                       string
	Id                        string
	ApiAddr                   string

	RelayerURL    string
	RelayCacheTTL time.Duration
	RelayLookback uint64

	DeployerKeys           []string
	MaxConcurrentScenarios int

	Deployment deployment.Configuration
}

type RawConfig struct {
	VerifierConfig  RawVerifierConfig        `mapstructure:"verifier" json:"verifier"`
	ChainConfigs    []map[string]interface{} `mapstructure:"chains" json:"chains"`
	ScenarioConfigs []map[string]interface{} `mapstructure:"scenarios" json:"scenarios"`
}

type RawVerifierConfig struct {
	LogLevel                  string `mapstructure:"logLevel" json:"logLevel" default:"info"`
	OpenTelemetryCollectorURL string `mapstructure:"openTelemetryCollectorURL" json:"openTelemetryCollectorURL"`
	Env                       string `mapstructure:"env" json:"env" default:"local"`
	Id                        string `mapstructure:"id" json:"id"`
	ApiAddr                   string `mapstructure:"apiAddr" json:"apiAddr"`

	RelayerURL    string `mapstructure:"relayerURL" json:"relayerURL"`
	RelayCacheTTL uint64 `mapstructure:"relayCacheTTL" json:"relayCacheTTL" default:"600"`
	RelayLookback uint64 `mapstructure:"relayLookback" json:"relayLookback" default:"100"`

	DeployerKeys           []string `mapstructure:"deployerKeys" json:"deployerKeys"`
	MaxConcurrentScenarios int      `mapstructure:"maxConcurrentScenarios" json:"maxConcurrentScenarios" default:"4"`

	Deployment deployment.Configuration `mapstructure:"deployment" json:"deployment"`
}

func (c *RawVerifierConfig) Validate() error {
	if c.MaxConcurrentScenarios < 1 {
		return fmt.Errorf("maxConcurrentScenarios must be positive")
	}
	if c.Deployment.Url != "" && c.Deployment.EncryptionKey == "" {
		return fmt.Errorf("deployment encryption key required for bucket %s", c.Deployment.Url)
	}
	return nil
}

// GetConfigFromFile reads the configuration file at path. Chains from the
// shared config are kept and overridden by local chains with the same name.
func GetConfigFromFile(path string, config *Config) (*Config, error) {
	rawConfig := RawConfig{}

	viper.SetConfigFile(path)
	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&rawConfig)
	if err != nil {
		return nil, err
	}

	return processRawConfig(rawConfig, config)
}

// GetConfigFromENV reads the configuration from BRIDGE_VERIFIER_ prefixed
// variables. Chains and scenarios are JSON arrays.
func GetConfigFromENV(config *Config) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(ENV_PREFIX)
	v.AutomaticEnv()

	rawConfig := RawConfig{
		VerifierConfig: RawVerifierConfig{
			LogLevel:                  v.GetString("log_level"),
			OpenTelemetryCollectorURL: v.GetString("opentelemetry_collector_url"),
			Env:                       v.GetString("env"),
			Id:                        v.GetString("id"),
			ApiAddr:                   v.GetString("api_addr"),
			RelayerURL:                v.GetString("relayer_url"),
			RelayCacheTTL:             v.GetUint64("relay_cache_ttl"),
			RelayLookback:             v.GetUint64("relay_lookback"),
			DeployerKeys:              splitList(v.GetString("deployer_keys")),
			MaxConcurrentScenarios:    v.GetInt("max_concurrent_scenarios"),
			Deployment: deployment.Configuration{
				EncryptionKey: v.GetString("deployment_encryption_key"),
				Url:           v.GetString("deployment_url"),
				Region:        v.GetString("deployment_region"),
				Endpoint:      v.GetString("deployment_endpoint"),
				Path:          v.GetString("deployment_path"),
				Hash:          v.GetString("deployment_hash"),
				AccessKey:     v.GetString("deployment_access_key"),
				SecretKey:     v.GetString("deployment_secret_key"),
			},
		},
	}

	if chains := v.GetString("chains"); chains != "" {
		err := json.Unmarshal([]byte(chains), &rawConfig.ChainConfigs)
		if err != nil {
			return nil, fmt.Errorf("invalid chains: %w", err)
		}
	}
	if scenarios := v.GetString("scenarios"); scenarios != "" {
		err := json.Unmarshal([]byte(scenarios), &rawConfig.ScenarioConfigs)
		if err != nil {
			return nil, fmt.Errorf("invalid scenarios: %w", err)
		}
	}

	return processRawConfig(rawConfig, config)
}

// MergeChains adds shared chain configs under the local ones. Local fields
// override shared fields of the chain with the same name.
func MergeChains(local []map[string]interface{}, shared []map[string]interface{}) ([]map[string]interface{}, error) {
	merged := make([]map[string]interface{}, 0, len(local)+len(shared))
	index := make(map[string]int)
	for _, c := range shared {
		chain := make(map[string]interface{}, len(c))
		for k, v := range c {
			chain[k] = v
		}
		index[fmt.Sprint(c["name"])] = len(merged)
		merged = append(merged, chain)
	}

	for _, c := range local {
		i, ok := index[fmt.Sprint(c["name"])]
		if !ok {
			merged = append(merged, c)
			continue
		}

		err := mergo.Merge(&merged[i], c, mergo.WithOverride)
		if err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func processRawConfig(rawConfig RawConfig, config *Config) (*Config, error) {
	if config == nil {
		config = &Config{}
	}

	err := defaults.Set(&rawConfig.VerifierConfig)
	if err != nil {
		return nil, err
	}
	err = rawConfig.VerifierConfig.Validate()
	if err != nil {
		return nil, err
	}

	logLevel, err := zerolog.ParseLevel(rawConfig.VerifierConfig.LogLevel)
	if err != nil {
		return nil, err
	}

	chains, err := MergeChains(rawConfig.ChainConfigs, config.ChainConfigs)
	if err != nil {
		return nil, err
	}
	for i, chain := range chains {
		if chain["name"] == nil || chain["name"] == "" {
			return nil, fmt.Errorf("chain config %d has no name", i)
		}
	}

	scenarios := rawConfig.ScenarioConfigs
	if len(scenarios) == 0 {
		scenarios = config.ScenarioConfigs
	}

	return &Config{
		VerifierConfig: VerifierConfig{
			LogLevel:                  logLevel,
			OpenTelemetryCollectorURL: rawConfig.VerifierConfig.OpenTelemetryCollectorURL,
			Env:                       rawConfig.VerifierConfig.Env,
			Id:                        rawConfig.VerifierConfig.Id,
			ApiAddr:                   rawConfig.VerifierConfig.ApiAddr,
			RelayerURL:                rawConfig.VerifierConfig.RelayerURL,
			// nolint:gosec
			RelayCacheTTL:          time.Duration(rawConfig.VerifierConfig.RelayCacheTTL) * time.Second,
			RelayLookback:          rawConfig.VerifierConfig.RelayLookback,
			DeployerKeys:           rawConfig.VerifierConfig.DeployerKeys,
			MaxConcurrentScenarios: rawConfig.VerifierConfig.MaxConcurrentScenarios,
			Deployment:             rawConfig.VerifierConfig.Deployment,
		},
		ChainConfigs:    chains,
		ScenarioConfigs: scenarios,
	}, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}

	items := strings.Split(value, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items
}
