// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cli

import (
	"github.com/spf13/cobra"
	"github.com/sprintertech/bridge-verifier/app"
)

var (
	runCMD = &cobra.Command{
		Use:   "run",
		Short: "Run the configured transfer scenarios",
		Long: "Runs every configured scenario once, or the ones selected with --scenario, " +
			"and exits with an error if any of them aborted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run()
		},
	}
)
