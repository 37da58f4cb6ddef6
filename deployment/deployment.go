// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package deployment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// Deployment lists the chains bridge contracts are deployed on, in the raw
// chain config format.
type Deployment struct {
	Chains []map[string]interface{} `json:"chains"`
}

type Configuration struct {
	EncryptionKey string `mapstructure:"encryptionKey" json:"encryptionKey"`
	Url           string `mapstructure:"url" json:"url"`
	Region        string `mapstructure:"region" json:"region" default:"nyc3"`
	Endpoint      string `mapstructure:"endpoint" json:"endpoint"`
	Path          string `mapstructure:"path" json:"path" default:"production/deployment"`
	Hash          string `mapstructure:"hash" json:"hash"`
	// AccessKey and SecretKey are optional, the default AWS credential
	// chain is used when empty
	AccessKey string `mapstructure:"accessKey" json:"accessKey"`
	SecretKey string `mapstructure:"secretKey" json:"secretKey"`
}

type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Decrypter interface {
	Decrypt(data []byte) ([]byte, error)
}

type Provider struct {
	bucket    string
	filename  string
	decrypter Decrypter
	s3Client  S3Client
}

func NewProvider(config Configuration, s3Client S3Client) (*Provider, error) {
	decrypter, err := NewAESEncryption([]byte(config.EncryptionKey))
	if err != nil {
		return nil, err
	}

	return &Provider{
		decrypter: decrypter,
		bucket:    config.Url,
		filename:  config.Path,
		s3Client:  s3Client,
	}, nil
}

// Deployment fetches the encrypted deployment from the bucket. A non empty
// hash must match the sha256 of the ciphertext.
func (p *Provider) Deployment(ctx context.Context, hash string) (*Deployment, error) {
	log.Info().Msgf("Reading deployment from S3 bucket: %s, file: %s", p.bucket, p.filename)

	output, err := p.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &p.bucket,
		Key:    &p.filename,
	})
	if err != nil {
		return nil, err
	}

	defer output.Body.Close()
	body, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, err
	}

	ct, err := hex.DecodeString(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, err
	}
	h := sha256.Sum256(ct)
	eh := hex.EncodeToString(h[:])
	if hash != "" && eh != hash {
		return nil, fmt.Errorf("deployment hash %s not matching expected hash %s", eh, hash)
	}

	plaintext, err := p.decrypter.Decrypt(ct)
	if err != nil {
		return nil, err
	}

	deployment := &Deployment{}
	err = json.Unmarshal(plaintext, deployment)
	if err != nil {
		return nil, err
	}
	if len(deployment.Chains) == 0 {
		return nil, fmt.Errorf("deployment %s has no chains", p.filename)
	}
	return deployment, nil
}
