package keeper

import (
	"github.com/hashicorp/go-metrics"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ethbridge/modules/oracle/types"
)

// ApplyEventUpdates folds one block's batch of ethereum event updates into
// the stored tallies and acts on every event that crosses the quorum
// threshold. It returns the full set of store keys written and the list of
// newly confirmed events.
//
// The result is a deterministic function of the batch and the chain state:
// updates for the same event are merged before processing, distinct events
// are processed in ascending hash order, and every arithmetic step is exact.
// Any error aborts the batch; the caller must discard the block's pending
// writes rather than keep a partially applied batch.
func (k *Keeper) ApplyEventUpdates(ctx sdk.Context, updates []types.EventUpdate) (types.ApplyResult, error) {
	if len(updates) == 0 {
		return types.EmptyApplyResult(), nil
	}

	if params := k.GetParams(ctx); !params.Enabled {
		k.Logger(ctx).Info("bridge oracle is disabled, skipping event updates", "updates", len(updates))
		return types.EmptyApplyResult(), nil
	}

	k.Logger(ctx).Info("applying state updates derived from ethereum events", "updates", len(updates))

	merged, collapsed, err := types.MergeEventUpdates(updates)
	if err != nil {
		return types.ApplyResult{}, err
	}
	for _, sighting := range collapsed {
		k.Logger(ctx).Info("validator sighted an event at multiple heights, using the greatest", "validator", sighting.Validator, "dropped_height", sighting.Height)
	}

	votingPowers, err := k.GetVotingPowers(ctx, merged)
	if err != nil {
		return types.ApplyResult{}, err
	}

	changedKeys := types.NewChangedKeys()
	var confirmed []types.Confirmation

	for _, update := range merged {
		changed, confirmation, err := k.applyUpdate(ctx, update, votingPowers)
		if err != nil {
			return types.ApplyResult{}, err
		}

		changedKeys.Merge(changed)
		if confirmation != nil {
			confirmed = append(confirmed, *confirmation)
		}
	}

	if len(confirmed) == 0 {
		k.Logger(ctx).Debug("no events were newly confirmed")
		return types.NewApplyResult(changedKeys, nil), nil
	}

	// merged updates are sorted by event hash, so confirmations are acted
	// on in ascending hash order on every node
	for _, confirmation := range confirmed {
		k.Logger(ctx).Info("ethereum event confirmed by a quorum of validators", "event_hash", confirmation.Hash, "event_kind", confirmation.Event.Kind())

		handlerChanged, err := k.confirmationHandler.OnEventConfirmed(ctx, confirmation.Event)
		if err != nil {
			return types.ApplyResult{}, err
		}
		changedKeys.Merge(handlerChanged)

		emitEventConfirmed(ctx, confirmation)
		telemetry.IncrCounterWithLabels(
			[]string{types.ModuleName, "event", "confirmed"},
			1,
			[]metrics.Label{telemetry.NewLabel("kind", confirmation.Event.Kind())},
		)
	}

	return types.NewApplyResult(changedKeys, confirmed), nil
}

// applyUpdate merges one event's sightings into its tally and persists the
// outcome. It returns the keys written and, if this update pushed the tally
// over the quorum threshold, the confirmation to act on.
func (k *Keeper) applyUpdate(ctx sdk.Context, update types.EventUpdate, votingPowers map[types.Sighting]types.FractionalVotingPower) (types.ChangedKeys, *types.Confirmation, error) {
	eventHash, err := types.EventHash(update.Body)
	if err != nil {
		return nil, nil, err
	}

	var previous types.Tally
	exists := k.HasTally(ctx, eventHash)
	if exists {
		k.Logger(ctx).Debug("ethereum event already exists in storage", "event_hash", eventHash)
		previous, err = k.GetTally(ctx, eventHash)
		if err != nil {
			return nil, nil, err
		}
	} else {
		k.Logger(ctx).Debug("ethereum event not seen before by any validator", "event_hash", eventHash)
		previous = types.NewTally(update.Body)
	}

	votes := make(map[string]types.FractionalVotingPower, len(update.Sightings))
	for _, sighting := range update.Sightings {
		power, ok := votingPowers[sighting]
		if !ok {
			k.Logger(ctx).Info("dropping sighting with no resolved voting power", "validator", sighting.Validator, "height", sighting.Height, "event_hash", eventHash)
			continue
		}
		votes[sighting.Validator] = power
	}

	next, duplicates := types.CalculateUpdatedTally(previous, votes)
	for _, validator := range duplicates {
		k.Logger(ctx).Info("ignoring duplicate vote for an event", "validator", validator, "event_hash", eventHash)
	}

	changed, err := types.ValidateTallyTransition(previous, next, !exists)
	if err != nil {
		return nil, nil, errorsmod.Wrapf(err, "refusing to apply update for event %s", eventHash)
	}

	if err := k.SetTally(ctx, eventHash, next); err != nil {
		return nil, nil, err
	}
	if len(changed) > 0 {
		emitTallyUpdated(ctx, eventHash, next)
	}

	var confirmation *types.Confirmation
	if next.Seen && !previous.Seen {
		c := types.NewConfirmation(eventHash, next.Body)
		confirmation = &c
	}

	return changed, confirmation, nil
}
