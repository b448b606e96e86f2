package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"
)

// StakingKeeper defines the expected staking keeper. The oracle prices every
// vote against the validator set recorded for the height at which the
// validator claims to have observed the event.
type StakingKeeper interface {
	GetHistoricalInfo(ctx context.Context, height int64) (stakingtypes.HistoricalInfo, error)
}

// ConfirmationHandler acts on an event once its tally crosses the quorum
// threshold. The handler is invoked exactly once per confirmed event and
// returns the store keys it wrote. Handler failures abort the whole batch.
type ConfirmationHandler interface {
	OnEventConfirmed(ctx sdk.Context, event EthereumEvent) (ChangedKeys, error)
}
