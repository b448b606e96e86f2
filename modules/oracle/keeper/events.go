package keeper

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	cmtbytes "github.com/cometbft/cometbft/libs/bytes"

	"github.com/cosmos/ethbridge/modules/oracle/types"
)

// emitTallyUpdated emits an event recording the new vote state of a tally.
func emitTallyUpdated(ctx sdk.Context, eventHash cmtbytes.HexBytes, tally types.Tally) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeTallyUpdated,
			sdk.NewAttribute(types.AttributeKeyEventHash, eventHash.String()),
			sdk.NewAttribute(types.AttributeKeyEventKind, tally.Body.Kind()),
			sdk.NewAttribute(types.AttributeKeyVotingPower, tally.VotingPower.String()),
			sdk.NewAttribute(types.AttributeKeySeen, strconv.FormatBool(tally.Seen)),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		),
	})
}

// emitEventConfirmed emits an event recording that a tally crossed the quorum
// threshold. It fires exactly once per confirmed ethereum event.
func emitEventConfirmed(ctx sdk.Context, confirmation types.Confirmation) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeEventConfirmed,
			sdk.NewAttribute(types.AttributeKeyEventHash, confirmation.Hash.String()),
			sdk.NewAttribute(types.AttributeKeyEventKind, confirmation.Event.Kind()),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		),
	})
}
