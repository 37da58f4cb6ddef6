// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package deployment

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprintertech/bridge-verifier/deployment"
)

var (
	DeploymentCLI = &cobra.Command{
		Use:   "deployment",
		Short: "Shared deployment related commands",
	}

	testDeploymentCMD = &cobra.Command{
		Use:   "test",
		Short: "Test deployment from S3",
		Long: "CLI tests does provided S3 bucket contain a deployment that could be well " +
			"decrypted with provided password and then parsed accordingly",
		RunE: testDeployment,
	}
)

var (
	url           string
	region        string
	endpoint      string
	accessKey     string
	secretKey     string
	path          string
	hash          string
	decryptionKey string
)

func init() {
	testDeploymentCMD.PersistentFlags().StringVar(&decryptionKey, "decryption-key", "", "password to decrypt deployment")
	_ = testDeploymentCMD.MarkFlagRequired("decryption-key")
	testDeploymentCMD.PersistentFlags().StringVar(&url, "url", "", "S3 bucket name")
	_ = testDeploymentCMD.MarkFlagRequired("url")
	testDeploymentCMD.PersistentFlags().StringVar(&region, "region", "nyc3", "S3 region")
	testDeploymentCMD.PersistentFlags().StringVar(&endpoint, "endpoint", "https://fra1.digitaloceanspaces.com", "S3 endpoint")
	testDeploymentCMD.PersistentFlags().StringVar(&accessKey, "access-key", "", "S3 access key")
	_ = testDeploymentCMD.MarkFlagRequired("access-key")
	testDeploymentCMD.PersistentFlags().StringVar(&secretKey, "secret-key", "", "S3 secret key")
	_ = testDeploymentCMD.MarkFlagRequired("secret-key")
	testDeploymentCMD.PersistentFlags().StringVar(&path, "path", "production/deployment", "path of the deployment in the bucket")
	testDeploymentCMD.PersistentFlags().StringVar(&hash, "hash", "", "hash of deployment")

	DeploymentCLI.AddCommand(testDeploymentCMD)
}

func testDeployment(cmd *cobra.Command, args []string) error {
	config := deployment.Configuration{
		EncryptionKey: decryptionKey,
		Url:           url,
		Region:        region,
		Endpoint:      endpoint,
		Path:          path,
		Hash:          hash,
		AccessKey:     accessKey,
		SecretKey:     secretKey,
	}

	s3Client, err := deployment.NewS3Client(context.Background(), config)
	if err != nil {
		return err
	}
	provider, err := deployment.NewProvider(config, s3Client)
	if err != nil {
		return err
	}

	d, err := provider.Deployment(context.Background(), config.Hash)
	if err != nil {
		return err
	}

	fmt.Printf("Deployment has %d chains:\n", len(d.Chains))
	for _, chain := range d.Chains {
		fmt.Printf("%v\t%v\n", chain["name"], chain["id"])
	}
	return nil
}
