// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/viper"
	"github.com/sprintertech/bridge-verifier/api"
	"github.com/sprintertech/bridge-verifier/api/handlers"
	"github.com/sprintertech/bridge-verifier/chains/evm"
	"github.com/sprintertech/bridge-verifier/config"
	"github.com/sprintertech/bridge-verifier/deployment"
	"github.com/sprintertech/bridge-verifier/metrics"
	"github.com/sprintertech/bridge-verifier/relay"
	"github.com/sprintertech/bridge-verifier/verifier"
	"github.com/sygmaprotocol/sygma-core/observability"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var Version string

func Run() error {
	configuration, err := LoadConfig(context.Background())
	panicOnError(err)

	observability.ConfigureLogger(configuration.VerifierConfig.LogLevel, os.Stdout)

	runID := configuration.VerifierConfig.Id
	if runID == "" {
		runID = uuid.New().String()
	}
	log.Info().Str("run", runID).Msg("Successfully loaded configuration")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cancelOnSignal(cancel)

	var meter metric.Meter = noop.NewMeterProvider().Meter("verifier")
	if configuration.VerifierConfig.OpenTelemetryCollectorURL != "" {
		mp, err := observability.InitMetricProvider(ctx, configuration.VerifierConfig.OpenTelemetryCollectorURL)
		panicOnError(err)
		defer func() {
			if err := mp.Shutdown(context.Background()); err != nil {
				log.Error().Msgf("Error shutting down meter provider: %v", err)
			}
		}()
		meter = mp.Meter("verifier-metric-provider")
	}

	verifierMetrics, err := metrics.NewVerifierMetrics(ctx, meter, configuration.VerifierConfig.Env, runID, Version)
	panicOnError(err)

	chains, err := DialChains(ctx, configuration.ChainConfigs)
	panicOnError(err)

	endpoints := make(map[string]relay.Endpoint)
	clients := make(map[string]verifier.ChainClient)
	for name, chain := range chains {
		endpoints[name] = relay.Endpoint{
			Chain:     chain,
			Messenger: chain.Messenger(),
		}
		clients[name] = chain
	}
	relayClient := relay.NewClient(
		configuration.VerifierConfig.RelayerURL,
		endpoints,
		configuration.VerifierConfig.RelayCacheTTL,
		configuration.VerifierConfig.RelayLookback,
	)

	scenarios, err := Scenarios(configuration.ScenarioConfigs, clients, viper.GetStringSlice(config.ScenarioFlagName))
	panicOnError(err)

	if configuration.VerifierConfig.ApiAddr != "" {
		go api.Serve(ctx, configuration.VerifierConfig.ApiAddr, handlers.NewStatusHandler(scenarios))
	}

	log.Info().Msgf("Started verifier v%s running %d scenarios", Version, len(scenarios))
	results := RunScenarios(ctx, verifier.NewVerifier(relayClient, verifierMetrics), scenarios, configuration.VerifierConfig.MaxConcurrentScenarios)
	return Report(results)
}

// LoadConfig reads the configuration from the config flag source and merges
// the chains of the shared deployment into it when a bucket is configured.
func LoadConfig(ctx context.Context) (*config.Config, error) {
	var configuration *config.Config
	var err error

	configFlag := viper.GetString(config.ConfigFlagName)
	if strings.ToLower(configFlag) == "env" {
		configuration, err = config.GetConfigFromENV(nil)
	} else {
		configuration, err = config.GetConfigFromFile(configFlag, nil)
	}
	if err != nil {
		return nil, err
	}

	deploymentConfig := configuration.VerifierConfig.Deployment
	if deploymentConfig.Url == "" {
		return configuration, nil
	}

	s3Client, err := deployment.NewS3Client(ctx, deploymentConfig)
	if err != nil {
		return nil, err
	}
	provider, err := deployment.NewProvider(deploymentConfig, s3Client)
	if err != nil {
		return nil, err
	}
	d, err := provider.Deployment(ctx, deploymentConfig.Hash)
	if err != nil {
		return nil, err
	}

	configuration.ChainConfigs, err = config.MergeChains(configuration.ChainConfigs, d.Chains)
	if err != nil {
		return nil, err
	}
	return configuration, nil
}

// DialChains connects to every configured chain concurrently.
func DialChains(ctx context.Context, chainConfigs []map[string]interface{}) (map[string]*evm.Chain, error) {
	configs := make([]*evm.EVMConfig, 0, len(chainConfigs))
	for _, chainConfig := range chainConfigs {
		switch chainConfig["type"] {
		case "evm", nil:
			{
				config, err := evm.NewEVMConfig(chainConfig)
				if err != nil {
					return nil, err
				}
				configs = append(configs, config)
			}
		default:
			return nil, fmt.Errorf("type '%s' not recognized", chainConfig["type"])
		}
	}

	p := pool.NewWithResults[*evm.Chain]().WithContext(ctx).WithCancelOnError()
	for _, config := range configs {
		p.Go(func(ctx context.Context) (*evm.Chain, error) {
			log.Info().Uint64("chain", *config.GeneralChainConfig.Id).Msgf("Dialing EVM chain %s", config.GeneralChainConfig.Name)
			return evm.DialChain(ctx, config)
		})
	}

	dialed, err := p.Wait()
	if err != nil {
		return nil, err
	}

	chains := make(map[string]*evm.Chain, len(dialed))
	for _, chain := range dialed {
		if _, ok := chains[chain.Name()]; ok {
			return nil, fmt.Errorf("duplicate chain %s", chain.Name())
		}
		chains[chain.Name()] = chain
	}
	return chains, nil
}

// Scenarios builds the configured scenarios. A non empty filter selects
// scenarios by name.
func Scenarios(scenarioConfigs []map[string]interface{}, chains map[string]verifier.ChainClient, filter []string) ([]*verifier.Scenario, error) {
	scenarios := make([]*verifier.Scenario, 0, len(scenarioConfigs))
	selected := make(map[string]bool)
	for _, scenarioConfig := range scenarioConfigs {
		c, err := verifier.NewScenarioConfig(scenarioConfig)
		if err != nil {
			return nil, err
		}
		if len(filter) > 0 && !slices.Contains(filter, c.Name) {
			continue
		}
		if selected[c.Name] {
			return nil, fmt.Errorf("duplicate scenario %s", c.Name)
		}

		scenario, err := c.Scenario(chains)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
		selected[c.Name] = true
	}

	for _, name := range filter {
		if !selected[name] {
			return nil, fmt.Errorf("scenario %s not configured", name)
		}
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios to run")
	}
	return scenarios, nil
}

func cancelOnSignal(cancel context.CancelFunc) {
	sysErr := make(chan os.Signal, 1)
	signal.Notify(sysErr,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGHUP,
		syscall.SIGQUIT)

	sig := <-sysErr
	log.Info().Msgf("terminating got ` [%v] signal", sig)
	cancel()
}

func panicOnError(err error) {
	if err != nil {
		panic(err)
	}
}
