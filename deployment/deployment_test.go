package deployment_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sprintertech/bridge-verifier/deployment"
	mock_deployment "github.com/sprintertech/bridge-verifier/deployment/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const encryptionKey = "v8y/B?E(H+MbQeTh"

type ProviderTestSuite struct {
	suite.Suite

	mockS3Client *mock_deployment.MockS3Client
	provider     *deployment.Provider
	encryption   *deployment.AESEncryption
}

func TestRunProviderTestSuite(t *testing.T) {
	suite.Run(t, new(ProviderTestSuite))
}

func (s *ProviderTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockS3Client = mock_deployment.NewMockS3Client(ctrl)

	provider, err := deployment.NewProvider(deployment.Configuration{
		EncryptionKey: encryptionKey,
		Url:           "bucket",
		Path:          "staging/deployment",
	}, s.mockS3Client)
	s.Nil(err)
	s.provider = provider

	encryption, err := deployment.NewAESEncryption([]byte(encryptionKey))
	s.Nil(err)
	s.encryption = encryption
}

func (s *ProviderTestSuite) object(plaintext string) (string, string) {
	ct, err := s.encryption.Encrypt([]byte(plaintext))
	s.Nil(err)
	h := sha256.Sum256(ct)
	return hex.EncodeToString(ct) + "\n", hex.EncodeToString(h[:])
}

func (s *ProviderTestSuite) expectObject(body string) {
	s.mockS3Client.EXPECT().GetObject(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			s.Equal("bucket", *input.Bucket)
			s.Equal("staging/deployment", *input.Key)
			return &s3.GetObjectOutput{
				Body: io.NopCloser(strings.NewReader(body)),
			}, nil
		},
	)
}

func (s *ProviderTestSuite) Test_NewProvider_InvalidKey() {
	_, err := deployment.NewProvider(deployment.Configuration{EncryptionKey: "short"}, s.mockS3Client)

	s.NotNil(err)
}

func (s *ProviderTestSuite) Test_Deployment_FetchFails() {
	s.mockS3Client.EXPECT().GetObject(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("error"))

	_, err := s.provider.Deployment(context.Background(), "")

	s.NotNil(err)
}

func (s *ProviderTestSuite) Test_Deployment_InvalidHex() {
	s.expectObject("not hex")

	_, err := s.provider.Deployment(context.Background(), "")

	s.NotNil(err)
}

func (s *ProviderTestSuite) Test_Deployment_HashMismatch() {
	body, _ := s.object(`{"chains":[{"name":"c-chain"}]}`)
	s.expectObject(body)

	_, err := s.provider.Deployment(context.Background(), "abcd")

	s.NotNil(err)
}

func (s *ProviderTestSuite) Test_Deployment_WrongKey() {
	other, err := deployment.NewAESEncryption([]byte("another 16b key!"))
	s.Nil(err)
	ct, err := other.Encrypt([]byte(`{"chains":[{"name":"c-chain"}]}`))
	s.Nil(err)
	s.expectObject(hex.EncodeToString(ct))

	_, err = s.provider.Deployment(context.Background(), "")

	s.NotNil(err)
}

func (s *ProviderTestSuite) Test_Deployment_NoChains() {
	body, _ := s.object(`{"chains":[]}`)
	s.expectObject(body)

	_, err := s.provider.Deployment(context.Background(), "")

	s.NotNil(err)
}

func (s *ProviderTestSuite) Test_Deployment_Valid() {
	body, hash := s.object(`{"chains":[{"name":"c-chain","id":43114,"messenger":"0x253b2784c75e510dD0fF1da844684a1aC0aa5fcf"}]}`)
	s.expectObject(body)

	d, err := s.provider.Deployment(context.Background(), hash)

	s.Nil(err)
	s.Len(d.Chains, 1)
	s.Equal("c-chain", d.Chains[0]["name"])
	s.Equal(float64(43114), d.Chains[0]["id"])
}
