package bridgetesting

import (
	"context"

	sdkmath "cosmossdk.io/math"

	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	"github.com/cosmos/ethbridge/modules/oracle/types"
)

var _ types.StakingKeeper = (*StakingKeeper)(nil)

// StakingKeeper is a map-backed stub of the staking keeper. Tests record a
// validator set per height; heights with no recorded set return
// ErrNoHistoricalInfo exactly like the real keeper.
type StakingKeeper struct {
	historicalInfo map[int64]stakingtypes.HistoricalInfo

	// Err, when set, is returned by every lookup. Used to exercise hard
	// staking store failures.
	Err error
}

// NewStakingKeeper returns a staking keeper stub with no recorded heights.
func NewStakingKeeper() *StakingKeeper {
	return &StakingKeeper{
		historicalInfo: make(map[int64]stakingtypes.HistoricalInfo),
	}
}

// SetValidators records the validator set for the given height.
func (sk *StakingKeeper) SetValidators(height int64, validators ...stakingtypes.Validator) {
	header := sk.historicalInfo[height].Header
	header.Height = height
	sk.historicalInfo[height] = stakingtypes.HistoricalInfo{
		Header: header,
		Valset: validators,
	}
}

// GetHistoricalInfo implements types.StakingKeeper.
func (sk *StakingKeeper) GetHistoricalInfo(_ context.Context, height int64) (stakingtypes.HistoricalInfo, error) {
	if sk.Err != nil {
		return stakingtypes.HistoricalInfo{}, sk.Err
	}

	histInfo, ok := sk.historicalInfo[height]
	if !ok {
		return stakingtypes.HistoricalInfo{}, stakingtypes.ErrNoHistoricalInfo.Wrapf("height %d", height)
	}

	return histInfo, nil
}

// NewBondedValidator returns a bonded validator holding the given number of
// staking tokens.
func NewBondedValidator(operator string, tokens sdkmath.Int) stakingtypes.Validator {
	return stakingtypes.Validator{
		OperatorAddress: operator,
		Status:          stakingtypes.Bonded,
		Tokens:          tokens,
		DelegatorShares: sdkmath.LegacyNewDecFromInt(tokens),
	}
}

// NewUnbondedValidator returns an unbonded validator holding the given number
// of staking tokens. Its votes must carry no weight.
func NewUnbondedValidator(operator string, tokens sdkmath.Int) stakingtypes.Validator {
	return stakingtypes.Validator{
		OperatorAddress: operator,
		Status:          stakingtypes.Unbonded,
		Tokens:          tokens,
		DelegatorShares: sdkmath.LegacyNewDecFromInt(tokens),
	}
}
