// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/bridge-verifier/chains/evm/calls/events"
)

const (
	RELAY_REQUEST_TIMEOUT = time.Second * 30
)

type Chain interface {
	BlockchainID() common.Hash
	WaitForConfirmation(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	LatestBlock(ctx context.Context) (*big.Int, error)
}

// Endpoint is a chain with the messenger contract delivering its messages
type Endpoint struct {
	Chain     Chain
	Messenger common.Address
}

// DeliveryError is returned when the delivery transaction of a message is
// known but did not deliver it.
type DeliveryError struct {
	TxHash common.Hash
	Reason string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery tx %s failed: %s", e.TxHash.Hex(), e.Reason)
}

func (e *DeliveryError) DeliveryTxHash() common.Hash {
	return e.TxHash
}

type RelayRequest struct {
	SourceBlockchainID string `json:"sourceBlockchainID"`
	MessageID          string `json:"messageID"`
	BlockNumber        uint64 `json:"blockNumber"`
}

type RelayResponse struct {
	TransactionHash string `json:"transactionHash"`
	Error           string `json:"error"`
}

// Client relays cross-chain messages. With a relayer url it asks the relayer
// to deliver the message, without one it waits for an independent relayer to
// deliver it. Delivered messages are memoised for the cache TTL.
type Client struct {
	url        string
	httpClient *http.Client
	endpoints  map[string]Endpoint
	lookback   uint64

	delivered *ttlcache.Cache[common.Hash, *types.Receipt]
}

func NewClient(url string, endpoints map[string]Endpoint, cacheTTL time.Duration, lookback uint64) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: RELAY_REQUEST_TIMEOUT},
		endpoints:  endpoints,
		lookback:   lookback,
		delivered: ttlcache.New(
			ttlcache.WithTTL[common.Hash, *types.Receipt](cacheTTL),
		),
	}
}

// RelayMessage relays the first message sent in receipt from one chain to
// the other. Without waitForAcceptance the returned receipt only holds the
// delivery transaction hash.
func (c *Client) RelayMessage(ctx context.Context, receipt *types.Receipt, from string, to string, waitForAcceptance bool) (*types.Receipt, error) {
	source, ok := c.endpoints[from]
	if !ok {
		return nil, fmt.Errorf("no relay endpoint for chain %s", from)
	}
	destination, ok := c.endpoints[to]
	if !ok {
		return nil, fmt.Errorf("no relay endpoint for chain %s", to)
	}

	msg, err := events.FirstEvent(receipt, source.Messenger, events.ParseSendCrossChainMessage)
	if err != nil {
		return nil, fmt.Errorf("no cross-chain message sent from %s: %w", from, err)
	}
	if msg.DestinationBlockchainID != destination.Chain.BlockchainID() {
		return nil, fmt.Errorf(
			"message %s is addressed to %s, not %s",
			msg.MessageID.Hex(), msg.DestinationBlockchainID.Hex(), to)
	}

	cached := c.delivered.Get(msg.MessageID)
	if cached != nil {
		log.Debug().Msgf("Message %s already delivered in tx %s", msg.MessageID.Hex(), cached.Value().TxHash.Hex())
		return cached.Value(), nil
	}

	var delivered *types.Receipt
	if c.url != "" {
		txHash, err := c.requestRelay(ctx, source.Chain.BlockchainID(), msg.MessageID, receipt.BlockNumber)
		if err != nil {
			return nil, err
		}
		if !waitForAcceptance {
			return &types.Receipt{TxHash: txHash}, nil
		}

		delivered, err = c.waitForDelivery(ctx, destination, txHash, msg.MessageID)
		if err != nil {
			return nil, err
		}
	} else {
		delivered, err = c.watchForDelivery(ctx, destination, msg.MessageID)
		if err != nil {
			return nil, err
		}
	}

	log.Info().Msgf("Message %s from %s delivered to %s in tx %s", msg.MessageID.Hex(), from, to, delivered.TxHash.Hex())

	c.delivered.Set(msg.MessageID, delivered, ttlcache.DefaultTTL)
	return delivered, nil
}

func (c *Client) requestRelay(ctx context.Context, sourceBlockchainID common.Hash, messageID common.Hash, blockNumber *big.Int) (common.Hash, error) {
	body := RelayRequest{
		SourceBlockchainID: sourceBlockchainID.Hex(),
		MessageID:          messageID.Hex(),
	}
	if blockNumber != nil {
		body.BlockNumber = blockNumber.Uint64()
	}
	reqBody, err := json.Marshal(body)
	if err != nil {
		return common.Hash{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/relay", c.url), bytes.NewReader(reqBody))
	if err != nil {
		return common.Hash{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return common.Hash{}, err
	}
	defer resp.Body.Close()

	response, err := io.ReadAll(resp.Body)
	if err != nil {
		return common.Hash{}, err
	}

	var relayResponse RelayResponse
	decodeErr := json.Unmarshal(response, &relayResponse)
	if resp.StatusCode != http.StatusOK {
		reason := relayResponse.Error
		if decodeErr != nil {
			reason = string(response)
		}
		return common.Hash{}, fmt.Errorf("relay request for message %s failed with status code %d: %s", messageID.Hex(), resp.StatusCode, reason)
	}
	if decodeErr != nil {
		return common.Hash{}, fmt.Errorf("failed decoding relayer response for message %s: %w", messageID.Hex(), decodeErr)
	}
	if relayResponse.Error != "" {
		return common.Hash{}, fmt.Errorf("relayer error for message %s: %s", messageID.Hex(), relayResponse.Error)
	}
	if len(common.FromHex(relayResponse.TransactionHash)) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid delivery tx hash %s for message %s", relayResponse.TransactionHash, messageID.Hex())
	}

	return common.HexToHash(relayResponse.TransactionHash), nil
}

// waitForDelivery waits for the delivery transaction and checks it received
// the message.
func (c *Client) waitForDelivery(ctx context.Context, destination Endpoint, txHash common.Hash, messageID common.Hash) (*types.Receipt, error) {
	receipt, err := destination.Chain.WaitForConfirmation(ctx, txHash)
	if err != nil {
		return nil, &DeliveryError{TxHash: txHash, Reason: err.Error()}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, &DeliveryError{TxHash: txHash, Reason: "reverted"}
	}

	received, err := events.FirstEvent(receipt, destination.Messenger, events.ParseReceiveCrossChainMessage)
	if err != nil {
		return nil, &DeliveryError{TxHash: txHash, Reason: err.Error()}
	}
	if received.MessageID != messageID {
		return nil, &DeliveryError{
			TxHash: txHash,
			Reason: fmt.Sprintf("received message %s instead of %s", received.MessageID.Hex(), messageID.Hex()),
		}
	}

	return receipt, nil
}
