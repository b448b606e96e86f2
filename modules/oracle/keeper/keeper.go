package keeper

import (
	"errors"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ethbridge/modules/oracle/types"
)

// Keeper aggregates validator votes on ethereum events into quorum-attested
// tallies. It owns the eth_msgs and wrapped_erc20s subspaces of the module
// store and prices votes against the staking module's historical validator
// sets.
type Keeper struct {
	storeKey storetypes.StoreKey
	cdc      *codec.LegacyAmino

	stakingKeeper types.StakingKeeper

	// confirmationHandler is invoked exactly once per newly confirmed
	// event. It defaults to the keeper's own wrapped ERC-20 minter.
	confirmationHandler types.ConfirmationHandler
}

// NewKeeper creates a new oracle Keeper instance.
func NewKeeper(cdc *codec.LegacyAmino, key storetypes.StoreKey, stakingKeeper types.StakingKeeper) *Keeper {
	if cdc == nil {
		panic(errors.New("codec must not be nil"))
	}
	if stakingKeeper == nil {
		panic(errors.New("staking keeper must not be nil"))
	}

	k := &Keeper{
		cdc:           cdc,
		storeKey:      key,
		stakingKeeper: stakingKeeper,
	}
	k.confirmationHandler = k

	return k
}

// SetConfirmationHandler replaces the effect applied to newly confirmed
// events. It must be called before any batch is applied.
func (k *Keeper) SetConfirmationHandler(handler types.ConfirmationHandler) {
	if handler == nil {
		panic(errors.New("confirmation handler must not be nil"))
	}
	k.confirmationHandler = handler
}

// Logger returns a module-specific logger.
func (*Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// GetParams returns the current oracle module parameters.
func (k *Keeper) GetParams(ctx sdk.Context) types.Params {
	store := ctx.KVStore(k.storeKey)
	params := types.DefaultParams()

	if bz := store.Get(types.ParamsKeyEnabled); len(bz) > 0 {
		params.Enabled = bz[0] == 1
	}

	if bz := store.Get(types.ParamsKeyMinConfirmations); len(bz) == 8 {
		params.MinConfirmations = sdk.BigEndianToUint64(bz)
	}

	return params
}

// SetParams sets the oracle module parameters.
func (k *Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	store := ctx.KVStore(k.storeKey)

	if params.Enabled {
		store.Set(types.ParamsKeyEnabled, []byte{1})
	} else {
		store.Set(types.ParamsKeyEnabled, []byte{0})
	}

	store.Set(types.ParamsKeyMinConfirmations, sdk.Uint64ToBigEndian(params.MinConfirmations))

	return nil
}
