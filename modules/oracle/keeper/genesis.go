package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ethbridge/modules/oracle/types"
)

// InitGenesis initializes the oracle module state from a genesis state.
// Imported tallies keep the votes they accumulated before the halt, so an
// event mid-vote resumes from its recorded voting power rather than starting
// over.
func (k *Keeper) InitGenesis(ctx sdk.Context, state types.GenesisState) error {
	if err := k.SetParams(ctx, state.Params); err != nil {
		return err
	}

	for _, tally := range state.Tallies {
		eventHash, err := types.EventHash(tally.Body)
		if err != nil {
			return err
		}
		if err := k.SetTally(ctx, eventHash, tally); err != nil {
			return err
		}
	}

	store := ctx.KVStore(k.storeKey)
	for _, wrapped := range state.WrappedERC20s {
		store.Set(types.WrappedERC20SupplyKey(wrapped.Asset), types.FormatWrappedAmount(wrapped.Supply))
		for _, balance := range wrapped.Balances {
			store.Set(types.WrappedERC20BalanceKey(wrapped.Asset, balance.Receiver), types.FormatWrappedAmount(balance.Amount))
		}
	}

	return nil
}

// ExportGenesis exports the oracle module state: the parameters, every stored
// tally and the minted wrapped ERC-20 balances.
func (k *Keeper) ExportGenesis(ctx sdk.Context) (*types.GenesisState, error) {
	tallies, err := k.GetAllTallies(ctx)
	if err != nil {
		return nil, err
	}

	wrapped, err := k.GetAllWrappedERC20s(ctx)
	if err != nil {
		return nil, err
	}

	return types.NewGenesisState(k.GetParams(ctx), tallies, wrapped), nil
}
