package consts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// NativeMinterAddress is the precompile allowed to mint the native currency
// of a subnet-evm chain.
var NativeMinterAddress = common.HexToAddress("0x0200000000000000000000000000000000000001")

var NativeMinterABI, _ = abi.JSON(strings.NewReader(`[
  {
    "name": "readAllowList",
    "type": "function",
    "stateMutability": "view",
    "inputs": [{"name": "addr", "type": "address"}],
    "outputs": [{"name": "role", "type": "uint256"}]
  },
  {
    "name": "mintNativeCoin",
    "type": "function",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "addr", "type": "address"},
      {"name": "amount", "type": "uint256"}
    ],
    "outputs": []
  }
]`))
