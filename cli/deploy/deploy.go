package deploy

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/sprintertech/bridge-verifier/app"
	"github.com/sprintertech/bridge-verifier/chains/evm"
	"github.com/sprintertech/bridge-verifier/deployer"
	"github.com/sprintertech/bridge-verifier/keypool"
)

var (
	DeployCMD = &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a contract with the next deployer pool key",
		Long: "Deploys a forge or hardhat artifact with the next unused deployer key and checks the " +
			"contract is native minter admin",
		RunE: deploy,
	}
)

var (
	chainName string
	artifact  string
	skip      int
)

func init() {
	DeployCMD.Flags().StringVar(&chainName, "chain", "", "name of the configured chain to deploy to")
	_ = DeployCMD.MarkFlagRequired("chain")
	DeployCMD.Flags().StringVar(&artifact, "artifact", "", "path to the contract artifact")
	_ = DeployCMD.MarkFlagRequired("artifact")
	DeployCMD.Flags().IntVar(&skip, "skip", 0, "number of pool keys already used")
}

func deploy(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configuration, err := app.LoadConfig(ctx)
	if err != nil {
		return err
	}

	a, err := deployer.LoadArtifact(artifact)
	if err != nil {
		return err
	}

	allocator, err := keypool.NewAllocatorFromHex(configuration.VerifierConfig.DeployerKeys)
	if err != nil {
		return err
	}
	err = Skip(allocator, skip)
	if err != nil {
		return err
	}

	for _, chainConfig := range configuration.ChainConfigs {
		if chainConfig["name"] != chainName {
			continue
		}

		config, err := evm.NewEVMConfig(chainConfig)
		if err != nil {
			return err
		}
		chain, err := evm.DialChain(ctx, config)
		if err != nil {
			return err
		}

		key, address, err := deployer.NewDeployer(allocator).Deploy(ctx, chain, a)
		if err != nil {
			return err
		}
		log.Info().Msgf("Deployed %s with key %s, %d pool keys remaining", address.Hex(), key.Address.Hex(), allocator.Remaining())
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", address.Hex(), key.Address.Hex())
		return err
	}

	return fmt.Errorf("chain %s not configured", chainName)
}

// Skip discards keys that were allocated by previous runs.
func Skip(allocator *keypool.Allocator, n int) error {
	for i := 0; i < n; i++ {
		_, err := allocator.Next()
		if err != nil {
			return err
		}
	}
	return nil
}
