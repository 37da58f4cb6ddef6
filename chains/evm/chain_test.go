package evm_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/mux"
	"github.com/sprintertech/bridge-verifier/chains/evm"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/consts"
	"github.com/sprintertech/bridge-verifier/config/chain"
	"github.com/sprintertech/bridge-verifier/deployer"
	"github.com/sprintertech/bridge-verifier/relay"
	"github.com/sprintertech/bridge-verifier/verifier"
	"github.com/stretchr/testify/suite"
)

var (
	_ verifier.ChainClient = (*evm.Chain)(nil)
	_ relay.Chain          = (*evm.Chain)(nil)
	_ deployer.Chain       = (*evm.Chain)(nil)
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

type ChainTestSuite struct {
	suite.Suite

	server  *httptest.Server
	results map[string]string
	config  *evm.EVMConfig
}

func TestRunChainTestSuite(t *testing.T) {
	suite.Run(t, new(ChainTestSuite))
}

func (s *ChainTestSuite) SetupTest() {
	s.results = make(map[string]string)

	router := mux.NewRouter()
	router.HandleFunc("/", s.serveRPC).Methods(http.MethodPost)
	s.server = httptest.NewServer(router)

	id := uint64(1)
	s.config = &evm.EVMConfig{
		GeneralChainConfig: chain.GeneralChainConfig{
			Name:     "subnet",
			Id:       &id,
			Endpoint: s.server.URL,
		},
		BlockchainID:       common.HexToHash(testBlockchainID),
		Messenger:          common.HexToAddress(testMessenger),
		Tracing:            true,
		Blocktime:          time.Millisecond,
		TransactionTimeout: time.Second,
	}
}

func (s *ChainTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ChainTestSuite) serveRPC(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	result, ok := s.results[req.Method]
	if !ok {
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":-32601,"message":"method not found"}}`, req.ID)
		return
	}
	fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, result)
}

func (s *ChainTestSuite) chain() *evm.Chain {
	rpcClient, err := rpc.DialContext(context.Background(), s.server.URL)
	s.Nil(err)
	return evm.NewChain(s.config, big.NewInt(1), nil, rpcClient)
}

func (s *ChainTestSuite) Test_Identity() {
	c := s.chain()

	s.Equal("subnet", c.Name())
	s.Equal(common.HexToHash(testBlockchainID), c.BlockchainID())
	s.Equal(common.HexToAddress(testMessenger), c.Messenger())
}

func (s *ChainTestSuite) Test_Balance() {
	s.results["eth_getBalance"] = `"0x64"`

	balance, err := s.chain().Balance(context.Background(), common.HexToAddress(testMessenger))

	s.Nil(err)
	s.Equal(big.NewInt(100), balance)
}

func (s *ChainTestSuite) Test_Balance_Fails() {
	_, err := s.chain().Balance(context.Background(), common.HexToAddress(testMessenger))

	s.NotNil(err)
}

func (s *ChainTestSuite) Test_LatestBlock() {
	s.results["eth_blockNumber"] = `"0x5a"`

	head, err := s.chain().LatestBlock(context.Background())

	s.Nil(err)
	s.Equal(big.NewInt(90), head)
}

func (s *ChainTestSuite) Test_TraceTransaction() {
	s.results["debug_traceTransaction"] = `{"type":"CALL","error":"execution reverted"}`

	trace, err := s.chain().TraceTransaction(context.Background(), common.HexToHash("0x1"))

	s.Nil(err)
	s.Equal(`{"type":"CALL","error":"execution reverted"}`, trace)
}

func (s *ChainTestSuite) Test_TraceTransaction_Disabled() {
	s.config.Tracing = false

	_, err := s.chain().TraceTransaction(context.Background(), common.HexToHash("0x1"))

	s.True(errors.Is(err, evm.ErrTracingDisabled))
}

func (s *ChainTestSuite) Test_SendTransaction_MissingKey() {
	_, err := s.chain().SendTransaction(
		context.Background(), nil, common.HexToAddress(testMessenger), nil, consts.NativeBridgeABI, "send",
	)

	s.NotNil(err)
}
