package consts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const teleporterMessage = `{
  "name": "message",
  "type": "tuple",
  "internalType": "struct TeleporterMessage",
  "components": [
    {"name": "messageNonce", "type": "uint256"},
    {"name": "originSenderAddress", "type": "address"},
    {"name": "destinationBlockchainID", "type": "bytes32"},
    {"name": "destinationAddress", "type": "address"},
    {"name": "requiredGasLimit", "type": "uint256"},
    {"name": "allowedRelayerAddresses", "type": "address[]"},
    {
      "name": "receipts",
      "type": "tuple[]",
      "internalType": "struct TeleporterMessageReceipt[]",
      "components": [
        {"name": "receivedMessageNonce", "type": "uint256"},
        {"name": "relayerRewardAddress", "type": "address"}
      ]
    },
    {"name": "message", "type": "bytes"}
  ]
}`

// TeleporterMessengerABI holds the messenger events used to follow a message
// from the source chain to its delivery on the destination chain.
var TeleporterMessengerABI, _ = abi.JSON(strings.NewReader(`[
  {
    "anonymous": false,
    "name": "SendCrossChainMessage",
    "type": "event",
    "inputs": [
      {"indexed": true, "name": "messageID", "type": "bytes32"},
      {"indexed": true, "name": "destinationBlockchainID", "type": "bytes32"},
      ` + teleporterMessage + `,
      {
        "name": "feeInfo",
        "type": "tuple",
        "internalType": "struct TeleporterFeeInfo",
        "components": [
          {"name": "feeTokenAddress", "type": "address"},
          {"name": "amount", "type": "uint256"}
        ]
      }
    ]
  },
  {
    "anonymous": false,
    "name": "ReceiveCrossChainMessage",
    "type": "event",
    "inputs": [
      {"indexed": true, "name": "messageID", "type": "bytes32"},
      {"indexed": true, "name": "sourceBlockchainID", "type": "bytes32"},
      {"indexed": true, "name": "deliverer", "type": "address"},
      {"indexed": false, "name": "rewardRedeemer", "type": "address"},
      ` + teleporterMessage + `
    ]
  }
]`))
