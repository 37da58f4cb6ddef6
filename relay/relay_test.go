package relay_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gorilla/mux"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/events"
	"github.com/sprintertech/bridge-verifier/relay"
	mock_relay "github.com/sprintertech/bridge-verifier/relay/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	sourceID          = common.HexToHash("0x01")
	destinationID     = common.HexToHash("0x02")
	messenger         = common.HexToAddress("0x253b2784c75e510dD0fF1da844684a1aC0aa5fcf")
	deliverer         = common.HexToAddress("0xbe526bA5d1ad94cC59D7A79d99A59F607d31A657")
	messageID         = common.HexToHash("0x696838617ea58d56a209e54b87240778a70fb6eb0a9da7ac6d0d9de1b1a5b775")
	deliveryHash      = common.HexToHash("0x93a9d5e32f5c81cbd17ceb842edc65002e3a79da4efbdc9f1e1f7e97fbcd669b")
	sendCrossChainLog = types.Log{Address: messenger, Topics: []common.Hash{events.SendCrossChainMessageSig.GetTopic(), messageID, destinationID}}
)

var receiveCrossChainLog = types.Log{
	Address: messenger,
	TxHash:  deliveryHash,
	Topics: []common.Hash{
		events.ReceiveCrossChainMessageSig.GetTopic(),
		messageID,
		sourceID,
		common.BytesToHash(deliverer.Bytes()),
	},
}

type testSubscription struct {
	errChn chan error
}

func (s *testSubscription) Unsubscribe() {}

func (s *testSubscription) Err() <-chan error {
	return s.errChn
}

type RelayClientTestSuite struct {
	suite.Suite

	mockSource      *mock_relay.MockChain
	mockDestination *mock_relay.MockChain
	server          *httptest.Server
	requests        atomic.Int32
	lastRequest     relay.RelayRequest
	status          int
	rawResponse     string

	sendReceipt *types.Receipt
	client      *relay.Client
}

func TestRunRelayClientTestSuite(t *testing.T) {
	suite.Run(t, new(RelayClientTestSuite))
}

func (s *RelayClientTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockSource = mock_relay.NewMockChain(ctrl)
	s.mockSource.EXPECT().BlockchainID().Return(sourceID).AnyTimes()
	s.mockDestination = mock_relay.NewMockChain(ctrl)
	s.mockDestination.EXPECT().BlockchainID().Return(destinationID).AnyTimes()

	s.requests.Store(0)
	s.status = http.StatusOK
	s.rawResponse = ""
	router := mux.NewRouter()
	router.HandleFunc("/relay", func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&s.lastRequest)

		w.WriteHeader(s.status)
		if s.rawResponse != "" {
			_, _ = w.Write([]byte(s.rawResponse))
			return
		}
		if s.status != http.StatusOK {
			_ = json.NewEncoder(w).Encode(relay.RelayResponse{Error: "message not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(relay.RelayResponse{TransactionHash: deliveryHash.Hex()})
	}).Methods(http.MethodPost)
	s.server = httptest.NewServer(router)

	s.sendReceipt = &types.Receipt{
		BlockNumber: big.NewInt(120),
		Logs:        []*types.Log{&sendCrossChainLog},
	}
	s.client = relay.NewClient(s.server.URL, s.endpoints(), time.Minute, 10)
}

func (s *RelayClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *RelayClientTestSuite) endpoints() map[string]relay.Endpoint {
	return map[string]relay.Endpoint{
		"source":      {Chain: s.mockSource, Messenger: messenger},
		"destination": {Chain: s.mockDestination, Messenger: messenger},
	}
}

func (s *RelayClientTestSuite) deliveryReceipt(logs ...types.Log) *types.Receipt {
	receipt := &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		TxHash: deliveryHash,
	}
	for i := range logs {
		receipt.Logs = append(receipt.Logs, &logs[i])
	}
	return receipt
}

func (s *RelayClientTestSuite) Test_RelayMessage_UnknownChain() {
	_, err := s.client.RelayMessage(context.Background(), s.sendReceipt, "source", "unknown", true)

	s.NotNil(err)
	s.Equal(int32(0), s.requests.Load())
}

func (s *RelayClientTestSuite) Test_RelayMessage_NoMessageInReceipt() {
	_, err := s.client.RelayMessage(context.Background(), &types.Receipt{}, "source", "destination", true)

	s.ErrorIs(err, events.ErrEventNotFound)
	s.Equal(int32(0), s.requests.Load())
}

func (s *RelayClientTestSuite) Test_RelayMessage_WrongDestination() {
	_, err := s.client.RelayMessage(context.Background(), s.sendReceipt, "destination", "source", true)

	s.NotNil(err)
	s.Equal(int32(0), s.requests.Load())
}

func (s *RelayClientTestSuite) Test_RelayMessage_RelayerError() {
	s.status = http.StatusNotFound

	_, err := s.client.RelayMessage(context.Background(), s.sendReceipt, "source", "destination", true)

	s.NotNil(err)
	s.Contains(err.Error(), "message not found")
}

func (s *RelayClientTestSuite) Test_RelayMessage_MalformedResponse() {
	s.rawResponse = "<html>bad gateway</html>"

	_, err := s.client.RelayMessage(context.Background(), s.sendReceipt, "source", "destination", true)

	var syntaxErr *json.SyntaxError
	s.True(errors.As(err, &syntaxErr))
	s.Contains(err.Error(), "failed decoding relayer response")
	s.NotContains(err.Error(), "invalid delivery tx hash")
}

func (s *RelayClientTestSuite) Test_RelayMessage_MalformedErrorResponse() {
	s.status = http.StatusBadGateway
	s.rawResponse = "upstream unavailable"

	_, err := s.client.RelayMessage(context.Background(), s.sendReceipt, "source", "destination", true)

	s.NotNil(err)
	s.Contains(err.Error(), "status code 502: upstream unavailable")
}

func (s *RelayClientTestSuite) Test_RelayMessage_NoWait() {
	receipt, err := s.client.RelayMessage(context.Background(), s.sendReceipt, "source", "destination", false)

	s.Nil(err)
	s.Equal(deliveryHash, receipt.TxHash)
	s.Equal(relay.RelayRequest{
		SourceBlockchainID: sourceID.Hex(),
		MessageID:          messageID.Hex(),
		BlockNumber:        120,
	}, s.lastRequest)
}

func (s *RelayClientTestSuite) Test_RelayMessage_DeliveredAndMemoised() {
	delivered := s.deliveryReceipt(receiveCrossChainLog)
	s.mockDestination.EXPECT().WaitForConfirmation(gomock.Any(), deliveryHash).Return(delivered, nil).Times(1)

	receipt, err := s.client.RelayMessage(context.Background(), s.sendReceipt, "source", "destination", true)
	s.Nil(err)
	s.Equal(delivered, receipt)

	receipt, err = s.client.RelayMessage(context.Background(), s.sendReceipt, "source", "destination", true)
	s.Nil(err)
	s.Equal(delivered, receipt)
	s.Equal(int32(1), s.requests.Load())
}

func (s *RelayClientTestSuite) Test_RelayMessage_DeliveryReverted() {
	delivered := s.deliveryReceipt(receiveCrossChainLog)
	delivered.Status = types.ReceiptStatusFailed
	s.mockDestination.EXPECT().WaitForConfirmation(gomock.Any(), deliveryHash).Return(delivered, nil)

	_, err := s.client.RelayMessage(context.Background(), s.sendReceipt, "source", "destination", true)

	var deliveryErr *relay.DeliveryError
	s.True(errors.As(err, &deliveryErr))
	s.Equal(deliveryHash, deliveryErr.DeliveryTxHash())
}

func (s *RelayClientTestSuite) Test_RelayMessage_DeliveryNotConfirmed() {
	s.mockDestination.EXPECT().WaitForConfirmation(gomock.Any(), deliveryHash).Return(nil, fmt.Errorf("timeout"))

	_, err := s.client.RelayMessage(context.Background(), s.sendReceipt, "source", "destination", true)

	var deliveryErr *relay.DeliveryError
	s.True(errors.As(err, &deliveryErr))
}

func (s *RelayClientTestSuite) Test_RelayMessage_OtherMessageReceived() {
	other := receiveCrossChainLog
	other.Topics = []common.Hash{
		events.ReceiveCrossChainMessageSig.GetTopic(),
		common.HexToHash("0x03"),
		sourceID,
		common.BytesToHash(deliverer.Bytes()),
	}
	s.mockDestination.EXPECT().WaitForConfirmation(gomock.Any(), deliveryHash).Return(s.deliveryReceipt(other), nil)

	_, err := s.client.RelayMessage(context.Background(), s.sendReceipt, "source", "destination", true)

	var deliveryErr *relay.DeliveryError
	s.True(errors.As(err, &deliveryErr))
}

func (s *RelayClientTestSuite) Test_RelayMessage_WatchesForDelivery() {
	client := relay.NewClient("", s.endpoints(), time.Minute, 10)
	sub := &testSubscription{errChn: make(chan error)}
	delivered := s.deliveryReceipt(receiveCrossChainLog)

	s.mockDestination.EXPECT().LatestBlock(gomock.Any()).Return(big.NewInt(100), nil)
	s.mockDestination.EXPECT().SubscribeFilterLogs(gomock.Any(), gomock.Any(), gomock.Any()).Return(sub, nil)
	s.mockDestination.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
		s.Equal(big.NewInt(90), q.FromBlock)
		s.Equal([]common.Address{messenger}, q.Addresses)
		s.Equal(messageID, q.Topics[1][0])
		return []types.Log{receiveCrossChainLog}, nil
	})
	s.mockDestination.EXPECT().WaitForConfirmation(gomock.Any(), deliveryHash).Return(delivered, nil)

	receipt, err := client.RelayMessage(context.Background(), s.sendReceipt, "source", "destination", true)

	s.Nil(err)
	s.Equal(delivered, receipt)
	s.Equal(int32(0), s.requests.Load())
}

func (s *RelayClientTestSuite) Test_RelayMessage_WatchSubscriptionFails() {
	client := relay.NewClient("", s.endpoints(), time.Minute, 1000)
	sub := &testSubscription{errChn: make(chan error, 1)}
	sub.errChn <- fmt.Errorf("connection lost")

	s.mockDestination.EXPECT().LatestBlock(gomock.Any()).Return(big.NewInt(100), nil)
	s.mockDestination.EXPECT().SubscribeFilterLogs(gomock.Any(), gomock.Any(), gomock.Any()).Return(sub, nil)
	s.mockDestination.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
		s.Equal(big.NewInt(0), q.FromBlock)
		return []types.Log{}, nil
	})

	_, err := client.RelayMessage(context.Background(), s.sendReceipt, "source", "destination", true)

	s.NotNil(err)
}
