package bridgetesting

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ethereum/go-ethereum/common"
)

// Well known mainnet ERC-20 contract addresses, used as test assets.
var (
	DAIAddress  = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	USDCAddress = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
)

// ValidatorAddress returns a deterministic validator operator address. The
// mapping from index to address is stable, but the bech32 renderings of
// consecutive indices are not ordered; sort where order matters.
func ValidatorAddress(index uint8) string {
	addr := make([]byte, 20)
	addr[0] = index
	addr[19] = index
	return sdk.ValAddress(addr).String()
}

// AccountAddress returns a deterministic account address.
func AccountAddress(index uint8) string {
	addr := make([]byte, 20)
	addr[0] = 0xFF
	addr[19] = index
	return sdk.AccAddress(addr).String()
}
