package keeper

import (
	"bytes"
	"sort"

	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ethereum/go-ethereum/common"

	"github.com/cosmos/ethbridge/modules/oracle/types"
)

var _ types.ConfirmationHandler = (*Keeper)(nil)

// OnEventConfirmed is the default confirmation handler. Confirmed transfer
// batches mint wrapped ERC-20 balances for their receivers; other event kinds
// take no action.
func (k *Keeper) OnEventConfirmed(ctx sdk.Context, event types.EthereumEvent) (types.ChangedKeys, error) {
	switch event := event.(type) {
	case *types.TransfersToCosmos:
		return k.mintWrappedTransfers(ctx, event)
	default:
		k.Logger(ctx).Debug("no actions taken for confirmed event", "event_kind", event.Kind())
		return types.NewChangedKeys(), nil
	}
}

// mintWrappedTransfers credits every receiver in a confirmed transfer batch
// with the wrapped representation of the transferred asset and grows the
// asset's minted supply by the same amount.
func (k *Keeper) mintWrappedTransfers(ctx sdk.Context, event *types.TransfersToCosmos) (types.ChangedKeys, error) {
	changed := types.NewChangedKeys()

	for _, transfer := range event.Transfers {
		balanceKey := types.WrappedERC20BalanceKey(transfer.Asset, transfer.Receiver)
		supplyKey := types.WrappedERC20SupplyKey(transfer.Asset)

		if err := k.addWrappedAmount(ctx, balanceKey, transfer.Amount); err != nil {
			return nil, err
		}
		if err := k.addWrappedAmount(ctx, supplyKey, transfer.Amount); err != nil {
			return nil, err
		}

		changed.Insert(balanceKey)
		changed.Insert(supplyKey)

		k.Logger(ctx).Debug("minted wrapped erc20", "asset", transfer.Asset, "receiver", transfer.Receiver, "amount", transfer.Amount)
	}

	return changed, nil
}

// addWrappedAmount adds amount to the minted balance stored at key, writing
// amount itself if no balance is stored yet.
func (k *Keeper) addWrappedAmount(ctx sdk.Context, key []byte, amount sdkmath.Int) error {
	store := ctx.KVStore(k.storeKey)

	balance := sdkmath.ZeroInt()
	if bz := store.Get(key); bz != nil {
		var err error
		balance, err = types.ParseWrappedAmount(bz)
		if err != nil {
			return err
		}
	}

	store.Set(key, types.FormatWrappedAmount(balance.Add(amount)))
	return nil
}

// GetWrappedBalance returns the wrapped balance of the asset minted for the
// receiver.
func (k *Keeper) GetWrappedBalance(ctx sdk.Context, asset common.Address, receiver string) (sdkmath.Int, error) {
	return k.getWrappedAmount(ctx, types.WrappedERC20BalanceKey(asset, receiver))
}

// GetWrappedSupply returns the total minted supply of the wrapped asset.
func (k *Keeper) GetWrappedSupply(ctx sdk.Context, asset common.Address) (sdkmath.Int, error) {
	return k.getWrappedAmount(ctx, types.WrappedERC20SupplyKey(asset))
}

func (k *Keeper) getWrappedAmount(ctx sdk.Context, key []byte) (sdkmath.Int, error) {
	store := ctx.KVStore(k.storeKey)

	bz := store.Get(key)
	if bz == nil {
		return sdkmath.ZeroInt(), nil
	}

	return types.ParseWrappedAmount(bz)
}

// GetAllWrappedERC20s returns the minted state of every wrapped asset in
// ascending asset address order. Used in ExportGenesis and by the module
// invariant.
func (k *Keeper) GetAllWrappedERC20s(ctx sdk.Context) ([]types.WrappedERC20, error) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, []byte(types.WrappedERC20KeyPrefix+"/"))
	defer sdk.LogDeferred(k.Logger(ctx), func() error { return iterator.Close() })

	var assets []common.Address
	grouped := make(map[common.Address]*types.WrappedERC20)

	for ; iterator.Valid(); iterator.Next() {
		asset, segment, receiver, err := types.ParseWrappedERC20Key(iterator.Key())
		if err != nil {
			return nil, err
		}

		amount, err := types.ParseWrappedAmount(iterator.Value())
		if err != nil {
			return nil, err
		}

		wrapped, ok := grouped[asset]
		if !ok {
			wrapped = &types.WrappedERC20{Asset: asset, Supply: sdkmath.ZeroInt()}
			grouped[asset] = wrapped
			assets = append(assets, asset)
		}

		switch segment {
		case types.KeySegmentSupply:
			wrapped.Supply = amount
		case types.KeySegmentBalance:
			wrapped.Balances = append(wrapped.Balances, types.ERC20Balance{Receiver: receiver, Amount: amount})
		}
	}

	// checksummed hex keys iterate in mixed-case lexicographic order, not
	// address order
	sort.Slice(assets, func(i, j int) bool {
		return bytes.Compare(assets[i][:], assets[j][:]) < 0
	})

	wrappedERC20s := make([]types.WrappedERC20, 0, len(assets))
	for _, asset := range assets {
		wrappedERC20s = append(wrappedERC20s, *grouped[asset])
	}

	return wrappedERC20s, nil
}
