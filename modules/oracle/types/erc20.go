package types

import (
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	"github.com/ethereum/go-ethereum/common"

	"github.com/cosmos/ethbridge/internal/validate"
)

// Wrapped ERC-20 balances minted for confirmed transfers live under:
//
//	wrapped_erc20s/{asset}/supply
//	wrapped_erc20s/{asset}/balance/{receiver}
//
// where asset is the checksummed hex address of the ERC-20 contract on
// Ethereum and receiver is a bech32 account address.
const (
	// WrappedERC20KeyPrefix is the top-level store prefix for wrapped
	// ERC-20 balances
	WrappedERC20KeyPrefix = "wrapped_erc20s"

	// KeySegmentSupply is the key segment for an asset's total minted
	// supply
	KeySegmentSupply = "supply"

	// KeySegmentBalance is the key segment prefixing per-receiver balances
	KeySegmentBalance = "balance"
)

// WrappedERC20Prefix returns the store prefix under which the supply and all
// balances of the given asset are stored.
func WrappedERC20Prefix(asset common.Address) string {
	return fmt.Sprintf("%s/%s", WrappedERC20KeyPrefix, asset.Hex())
}

// WrappedERC20SupplyKey returns the store key holding the total minted supply
// of the given asset.
func WrappedERC20SupplyKey(asset common.Address) []byte {
	return []byte(fmt.Sprintf("%s/%s", WrappedERC20Prefix(asset), KeySegmentSupply))
}

// WrappedERC20BalanceKey returns the store key holding the receiver's balance
// of the given asset.
func WrappedERC20BalanceKey(asset common.Address, receiver string) []byte {
	return []byte(fmt.Sprintf("%s/%s/%s", WrappedERC20Prefix(asset), KeySegmentBalance, receiver))
}

// ParseWrappedERC20Key splits a raw wrapped ERC-20 store key into the asset
// address, the field segment and, for balance keys, the receiver address.
func ParseWrappedERC20Key(key []byte) (common.Address, string, string, error) {
	parts := strings.Split(string(key), "/")
	if len(parts) < 3 || parts[0] != WrappedERC20KeyPrefix {
		return common.Address{}, "", "", errorsmod.Wrapf(ErrInvalidERC20Key, "expected %s/{asset}/..., got %s", WrappedERC20KeyPrefix, key)
	}

	if err := validate.EthereumAddress(parts[1]); err != nil {
		return common.Address{}, "", "", errorsmod.Wrapf(ErrInvalidERC20Key, "invalid asset address %s: %s", parts[1], err)
	}
	asset := common.HexToAddress(parts[1])

	switch {
	case len(parts) == 3 && parts[2] == KeySegmentSupply:
		return asset, KeySegmentSupply, "", nil
	case len(parts) == 4 && parts[2] == KeySegmentBalance && parts[3] != "":
		return asset, KeySegmentBalance, parts[3], nil
	default:
		return common.Address{}, "", "", errorsmod.Wrapf(ErrInvalidERC20Key, "unknown wrapped ERC-20 key %s", key)
	}
}

// FormatWrappedAmount encodes a minted amount for storage.
func FormatWrappedAmount(amount sdkmath.Int) []byte {
	return []byte(amount.String())
}

// ParseWrappedAmount decodes a minted amount read from storage.
func ParseWrappedAmount(bz []byte) (sdkmath.Int, error) {
	amount, ok := sdkmath.NewIntFromString(string(bz))
	if !ok {
		return sdkmath.Int{}, errorsmod.Wrapf(ErrInvalidERC20Key, "invalid wrapped amount %s", bz)
	}
	if amount.IsNegative() {
		return sdkmath.Int{}, errorsmod.Wrapf(ErrInvalidERC20Key, "wrapped amount cannot be negative, got %s", amount)
	}
	return amount, nil
}

// ERC20Balance is one receiver's balance of a wrapped asset.
type ERC20Balance struct {
	Receiver string      `json:"receiver"`
	Amount   sdkmath.Int `json:"amount"`
}

// WrappedERC20 aggregates the minted state of one asset for genesis
// import/export.
type WrappedERC20 struct {
	Asset    common.Address `json:"asset"`
	Supply   sdkmath.Int    `json:"supply"`
	Balances []ERC20Balance `json:"balances"`
}

// Validate checks that the wrapped asset state is well formed and that the
// per-receiver balances sum to the recorded supply.
func (w WrappedERC20) Validate() error {
	if w.Asset == (common.Address{}) {
		return errorsmod.Wrap(ErrInvalidERC20Key, "asset address cannot be zero")
	}
	if w.Supply.IsNil() || w.Supply.IsNegative() {
		return errorsmod.Wrapf(ErrInvalidERC20Key, "invalid supply %v for asset %s", w.Supply, w.Asset)
	}

	total := sdkmath.ZeroInt()
	for i, balance := range w.Balances {
		if i > 0 && w.Balances[i-1].Receiver >= balance.Receiver {
			return errorsmod.Wrapf(ErrInvalidERC20Key, "balances of asset %s must be sorted by receiver and duplicate free", w.Asset)
		}
		if balance.Amount.IsNil() || !balance.Amount.IsPositive() {
			return errorsmod.Wrapf(ErrInvalidERC20Key, "balance of %s for asset %s must be positive", balance.Receiver, w.Asset)
		}
		total = total.Add(balance.Amount)
	}

	if !total.Equal(w.Supply) {
		return errorsmod.Wrapf(ErrInvalidERC20Key, "balances of asset %s sum to %s, supply records %s", w.Asset, total, w.Supply)
	}

	return nil
}
