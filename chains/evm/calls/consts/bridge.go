package consts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// sendTokensInput is the tuple accepted by every bridge send method and
// echoed back in TokensSent and TokensRouted.
const sendTokensInput = `{
  "name": "input",
  "type": "tuple",
  "internalType": "struct SendTokensInput",
  "components": [
    {"name": "destinationBlockchainID", "type": "bytes32"},
    {"name": "destinationBridgeAddress", "type": "address"},
    {"name": "recipient", "type": "address"},
    {"name": "feeTokenAddress", "type": "address"},
    {"name": "primaryFee", "type": "uint256"},
    {"name": "secondaryFee", "type": "uint256"},
    {"name": "requiredGasLimit", "type": "uint256"},
    {"name": "multiHopFallback", "type": "address"}
  ]
}`

const bridgeEvents = `
  {
    "anonymous": false,
    "name": "TokensSent",
    "type": "event",
    "inputs": [
      {"indexed": true, "name": "teleporterMessageID", "type": "bytes32"},
      {"indexed": true, "name": "sender", "type": "address"},
      ` + sendTokensInput + `,
      {"indexed": false, "name": "amount", "type": "uint256"}
    ]
  },
  {
    "anonymous": false,
    "name": "TokensRouted",
    "type": "event",
    "inputs": [
      {"indexed": true, "name": "teleporterMessageID", "type": "bytes32"},
      ` + sendTokensInput + `,
      {"indexed": false, "name": "amount", "type": "uint256"}
    ]
  },
  {
    "anonymous": false,
    "name": "TokensWithdrawn",
    "type": "event",
    "inputs": [
      {"indexed": true, "name": "recipient", "type": "address"},
      {"indexed": false, "name": "amount", "type": "uint256"}
    ]
  }`

const bridgeViews = `
  {
    "name": "tokenMultiplier",
    "type": "function",
    "stateMutability": "view",
    "inputs": [],
    "outputs": [{"name": "", "type": "uint256"}]
  },
  {
    "name": "multiplyOnSpoke",
    "type": "function",
    "stateMutability": "view",
    "inputs": [],
    "outputs": [{"name": "", "type": "bool"}]
  },
  {
    "name": "isCollateralized",
    "type": "function",
    "stateMutability": "view",
    "inputs": [],
    "outputs": [{"name": "", "type": "bool"}]
  }`

// NativeBridgeABI covers NativeTokenDestination, NativeTokenSpoke and the
// native home bridge, where the bridged amount is the transaction value.
var NativeBridgeABI, _ = abi.JSON(strings.NewReader(`[
  {
    "name": "send",
    "type": "function",
    "stateMutability": "payable",
    "inputs": [` + sendTokensInput + `],
    "outputs": []
  },` + bridgeViews + `,` + bridgeEvents + `
]`))

// ERC20BridgeABI covers bridges that pull an ERC20 amount from the sender.
var ERC20BridgeABI, _ = abi.JSON(strings.NewReader(`[
  {
    "name": "send",
    "type": "function",
    "stateMutability": "nonpayable",
    "inputs": [` + sendTokensInput + `, {"name": "amount", "type": "uint256"}],
    "outputs": []
  },` + bridgeViews + `,` + bridgeEvents + `
]`))
