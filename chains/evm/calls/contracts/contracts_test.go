package contracts_test

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/consts"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/contracts"
	mock_contracts "github.com/sprintertech/bridge-verifier/chains/evm/calls/contracts/mock"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	bridgeAddress = common.HexToAddress("0x5DB9A7629912EBF95876228C24A848de0bfB43A9")
	tokenAddress  = common.HexToAddress("0xdBBE3D8c2d2b22A2611c5A94A9a12C2fCD49Eb29")
	account       = common.HexToAddress("0xbe526bA5d1ad94cC59D7A79d99A59F607d31A657")
)

type BridgeContractTestSuite struct {
	suite.Suite

	mockTransactor *mock_contracts.MockTransactor
}

func TestRunBridgeContractTestSuite(t *testing.T) {
	suite.Run(t, new(BridgeContractTestSuite))
}

func (s *BridgeContractTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockTransactor = mock_contracts.NewMockTransactor(ctrl)
}

func (s *BridgeContractTestSuite) Test_Send_Native() {
	input := events.SendTokensInput{Recipient: account}
	amount := big.NewInt(100)
	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful}
	s.mockTransactor.EXPECT().SendTransaction(
		gomock.Any(), nil, bridgeAddress, amount, consts.NativeBridgeABI, "send", input,
	).Return(receipt, nil)

	bridge := contracts.NewNativeBridgeContract(s.mockTransactor, bridgeAddress)
	r, err := bridge.Send(context.Background(), nil, input, amount)

	s.Nil(err)
	s.Equal(receipt, r)
}

func (s *BridgeContractTestSuite) Test_Send_ERC20() {
	input := events.SendTokensInput{Recipient: account}
	amount := big.NewInt(100)
	s.mockTransactor.EXPECT().SendTransaction(
		gomock.Any(), nil, bridgeAddress, big.NewInt(0), consts.ERC20BridgeABI, "send", input, amount,
	).Return(&types.Receipt{}, nil)

	bridge := contracts.NewERC20BridgeContract(s.mockTransactor, bridgeAddress)
	_, err := bridge.Send(context.Background(), nil, input, amount)

	s.Nil(err)
}

func (s *BridgeContractTestSuite) Test_TokenMultiplier() {
	s.mockTransactor.EXPECT().Call(
		gomock.Any(), bridgeAddress, gomock.Any(), "tokenMultiplier",
	).Return([]interface{}{big.NewInt(1000000)}, nil)

	bridge := contracts.NewNativeBridgeContract(s.mockTransactor, bridgeAddress)
	m, err := bridge.TokenMultiplier(context.Background())

	s.Nil(err)
	s.Equal(big.NewInt(1000000), m)
}

func (s *BridgeContractTestSuite) Test_TokenMultiplier_CallFails() {
	s.mockTransactor.EXPECT().Call(
		gomock.Any(), bridgeAddress, gomock.Any(), "tokenMultiplier",
	).Return(nil, fmt.Errorf("error"))

	bridge := contracts.NewNativeBridgeContract(s.mockTransactor, bridgeAddress)
	_, err := bridge.TokenMultiplier(context.Background())

	s.NotNil(err)
}

func (s *BridgeContractTestSuite) Test_MultiplyOnSpoke() {
	s.mockTransactor.EXPECT().Call(
		gomock.Any(), bridgeAddress, gomock.Any(), "multiplyOnSpoke",
	).Return([]interface{}{true}, nil)

	bridge := contracts.NewNativeBridgeContract(s.mockTransactor, bridgeAddress)
	multiply, err := bridge.MultiplyOnSpoke(context.Background())

	s.Nil(err)
	s.True(multiply)
}

func (s *BridgeContractTestSuite) Test_IsCollateralized_InvalidResponse() {
	s.mockTransactor.EXPECT().Call(
		gomock.Any(), bridgeAddress, gomock.Any(), "isCollateralized",
	).Return([]interface{}{big.NewInt(1)}, nil)

	bridge := contracts.NewNativeBridgeContract(s.mockTransactor, bridgeAddress)
	_, err := bridge.IsCollateralized(context.Background())

	s.NotNil(err)
}

func (s *BridgeContractTestSuite) Test_IsCollateralized_EmptyResponse() {
	s.mockTransactor.EXPECT().Call(
		gomock.Any(), bridgeAddress, gomock.Any(), "isCollateralized",
	).Return([]interface{}{}, nil)

	bridge := contracts.NewNativeBridgeContract(s.mockTransactor, bridgeAddress)
	_, err := bridge.IsCollateralized(context.Background())

	s.NotNil(err)
}

type ERC20ContractTestSuite struct {
	suite.Suite

	mockTransactor *mock_contracts.MockTransactor
}

func TestRunERC20ContractTestSuite(t *testing.T) {
	suite.Run(t, new(ERC20ContractTestSuite))
}

func (s *ERC20ContractTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockTransactor = mock_contracts.NewMockTransactor(ctrl)
}

func (s *ERC20ContractTestSuite) Test_BalanceOf() {
	s.mockTransactor.EXPECT().Call(
		gomock.Any(), tokenAddress, consts.ERC20ABI, "balanceOf", account,
	).Return([]interface{}{big.NewInt(42)}, nil)

	token := contracts.NewERC20Contract(s.mockTransactor, tokenAddress)
	balance, err := token.BalanceOf(context.Background(), account)

	s.Nil(err)
	s.Equal(big.NewInt(42), balance)
}

func (s *ERC20ContractTestSuite) Test_Approve() {
	s.mockTransactor.EXPECT().SendTransaction(
		gomock.Any(), nil, tokenAddress, big.NewInt(0), consts.ERC20ABI, "approve", bridgeAddress, big.NewInt(42),
	).Return(&types.Receipt{}, nil)

	token := contracts.NewERC20Contract(s.mockTransactor, tokenAddress)
	_, err := token.Approve(context.Background(), nil, bridgeAddress, big.NewInt(42))

	s.Nil(err)
}

type NativeMinterContractTestSuite struct {
	suite.Suite

	mockCaller *mock_contracts.MockCaller
}

func TestRunNativeMinterContractTestSuite(t *testing.T) {
	suite.Run(t, new(NativeMinterContractTestSuite))
}

func (s *NativeMinterContractTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockCaller = mock_contracts.NewMockCaller(ctrl)
}

func (s *NativeMinterContractTestSuite) Test_ReadAllowList_Admin() {
	s.mockCaller.EXPECT().Call(
		gomock.Any(), consts.NativeMinterAddress, gomock.Any(), "readAllowList", account,
	).Return([]interface{}{big.NewInt(2)}, nil)

	minter := contracts.NewNativeMinterContract(s.mockCaller)
	role, err := minter.ReadAllowList(context.Background(), account)

	s.Nil(err)
	s.Equal(contracts.AdminRole, role)
	s.Equal("admin", role.String())
}

func (s *NativeMinterContractTestSuite) Test_ReadAllowList_CallFails() {
	s.mockCaller.EXPECT().Call(
		gomock.Any(), consts.NativeMinterAddress, gomock.Any(), "readAllowList", account,
	).Return(nil, fmt.Errorf("error"))

	minter := contracts.NewNativeMinterContract(s.mockCaller)
	_, err := minter.ReadAllowList(context.Background(), account)

	s.NotNil(err)
}
