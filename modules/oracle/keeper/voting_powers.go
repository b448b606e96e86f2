package keeper

import (
	"errors"
	"sort"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	"github.com/cosmos/ethbridge/modules/oracle/types"
)

// GetVotingPowers resolves every sighting in the batch to the fractional
// voting power the reporting validator held at the sighted height. Sightings
// by validators that were not bonded at their height, and sightings at
// heights with no recorded validator set, are left out of the result: their
// votes carry no weight. Only a hard staking store failure is an error.
func (k *Keeper) GetVotingPowers(ctx sdk.Context, updates []types.EventUpdate) (map[types.Sighting]types.FractionalVotingPower, error) {
	heights := make(map[int64][]string)
	for _, update := range updates {
		for _, sighting := range update.Sightings {
			heights[sighting.Height] = append(heights[sighting.Height], sighting.Validator)
		}
	}

	sortedHeights := make([]int64, 0, len(heights))
	for height := range heights {
		sortedHeights = append(sortedHeights, height)
	}
	sort.Slice(sortedHeights, func(i, j int) bool { return sortedHeights[i] < sortedHeights[j] })

	powers := make(map[types.Sighting]types.FractionalVotingPower)
	for _, height := range sortedHeights {
		valset, err := k.getBondedValidatorSet(ctx, height)
		if err != nil {
			if errors.Is(err, stakingtypes.ErrNoHistoricalInfo) {
				k.Logger(ctx).Info("no validator set recorded for sighted height, dropping its votes", "height", height)
				continue
			}
			return nil, errorsmod.Wrapf(types.ErrVotingPowerLookup, "validator set at height %d: %s", height, err)
		}

		total := sdkmath.ZeroInt()
		for _, tokens := range valset {
			total = total.Add(tokens)
		}
		if !total.IsPositive() {
			k.Logger(ctx).Info("validator set at sighted height holds no bonded tokens, dropping its votes", "height", height)
			continue
		}

		for _, validator := range heights[height] {
			tokens, bonded := valset[validator]
			if !bonded {
				continue
			}

			power, err := types.NewFractionalVotingPower(tokens, total)
			if err != nil {
				return nil, errorsmod.Wrapf(types.ErrVotingPowerLookup, "voting power of %s at height %d: %s", validator, height, err)
			}
			powers[types.NewSighting(validator, height)] = power
		}
	}

	return powers, nil
}

// getBondedValidatorSet returns the bonded tokens per validator operator
// address recorded for the given height.
func (k *Keeper) getBondedValidatorSet(ctx sdk.Context, height int64) (map[string]sdkmath.Int, error) {
	histInfo, err := k.stakingKeeper.GetHistoricalInfo(ctx, height)
	if err != nil {
		return nil, err
	}

	valset := make(map[string]sdkmath.Int, len(histInfo.Valset))
	for _, validator := range histInfo.Valset {
		if !validator.IsBonded() {
			continue
		}
		valset[validator.GetOperator()] = validator.BondedTokens()
	}

	return valset, nil
}
