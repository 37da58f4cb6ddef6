// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sprintertech/bridge-verifier/cli/deploy"
	"github.com/sprintertech/bridge-verifier/cli/deployment"
	"github.com/sprintertech/bridge-verifier/cli/keys"
	"github.com/sprintertech/bridge-verifier/config"
)

var (
	rootCMD = &cobra.Command{
		Use: "",
	}
)

func init() {
	config.BindFlags(rootCMD)
}

func Execute() {
	rootCMD.AddCommand(runCMD, keys.KeysCMD, deploy.DeployCMD, deployment.DeploymentCLI)
	if err := rootCMD.Execute(); err != nil {
		log.Fatal().Err(err).Msg("failed to execute root cmd")
	}
}
