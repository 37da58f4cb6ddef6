package keys

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/sprintertech/bridge-verifier/app"
	"github.com/sprintertech/bridge-verifier/keypool"
)

var (
	KeysCMD = &cobra.Command{
		Use:   "keys",
		Short: "List the deployer key pool",
		Long:  "Lists deployer keys in allocation order with the address of the first contract each key deploys",
		RunE:  listKeys,
	}
)

func listKeys(cmd *cobra.Command, args []string) error {
	configuration, err := app.LoadConfig(context.Background())
	if err != nil {
		return err
	}

	return PrintKeys(cmd.OutOrStdout(), configuration.VerifierConfig.DeployerKeys)
}

// PrintKeys writes the pool allocation order, never the private keys.
func PrintKeys(w io.Writer, hexKeys []string) error {
	allocator, err := keypool.NewAllocatorFromHex(hexKeys)
	if err != nil {
		return err
	}

	for i, key := range allocator.Addresses() {
		_, err := fmt.Fprintf(w, "%d\t%s\t%s\n", i, key.Address.Hex(), key.ContractAddress.Hex())
		if err != nil {
			return err
		}
	}
	return nil
}
