package keeper

import (
	"bytes"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ethbridge/modules/oracle/types"
)

// RegisterInvariants registers all oracle invariants.
func RegisterInvariants(ir sdk.InvariantRegistry, k *Keeper) {
	ir.RegisterRoute(types.ModuleName, "tally-state", TallyStateInvariant(k))
	ir.RegisterRoute(types.ModuleName, "wrapped-supply", WrappedSupplyInvariant(k))
}

// AllInvariants runs all invariants of the oracle module.
func AllInvariants(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if msg, broken := TallyStateInvariant(k)(ctx); broken {
			return msg, broken
		}
		return WrappedSupplyInvariant(k)(ctx)
	}
}

// TallyStateInvariant checks that every stored tally is internally
// consistent and is stored under the hash of its own body.
func TallyStateInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		hashes, err := k.tallyHashes(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "tally state", err.Error()), true
		}

		for _, hash := range hashes {
			tally, err := k.GetTally(ctx, hash)
			if err != nil {
				return sdk.FormatInvariant(
					types.ModuleName,
					"tally state",
					fmt.Sprintf("tally for event %s cannot be read: %s", hash, err)), true
			}

			if err := tally.Validate(); err != nil {
				return sdk.FormatInvariant(
					types.ModuleName,
					"tally state",
					fmt.Sprintf("tally for event %s is inconsistent: %s", hash, err)), true
			}

			bodyHash, err := types.EventHash(tally.Body)
			if err != nil {
				return sdk.FormatInvariant(
					types.ModuleName,
					"tally state",
					fmt.Sprintf("tally for event %s has an unhashable body: %s", hash, err)), true
			}
			if !bytes.Equal(bodyHash, hash) {
				return sdk.FormatInvariant(
					types.ModuleName,
					"tally state",
					fmt.Sprintf("tally stored under %s holds the body of event %s", hash, bodyHash)), true
			}
		}

		return "", false
	}
}

// WrappedSupplyInvariant checks that the minted supply of every wrapped
// asset equals the sum of the balances minted for its receivers.
func WrappedSupplyInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		wrapped, err := k.GetAllWrappedERC20s(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "wrapped supply", err.Error()), true
		}

		for _, asset := range wrapped {
			if err := asset.Validate(); err != nil {
				return sdk.FormatInvariant(
					types.ModuleName,
					"wrapped supply",
					fmt.Sprintf("wrapped state of asset %s is inconsistent: %s", asset.Asset, err)), true
			}
		}

		return "", false
	}
}
