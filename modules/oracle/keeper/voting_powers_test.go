package keeper_test

import (
	"errors"

	sdkmath "cosmossdk.io/math"

	"github.com/cosmos/ethbridge/modules/oracle/types"
	bridgetesting "github.com/cosmos/ethbridge/testing"
)

func (suite *KeeperTestSuite) TestGetVotingPowers() {
	valA := bridgetesting.ValidatorAddress(1)
	valB := bridgetesting.ValidatorAddress(2)
	valC := bridgetesting.ValidatorAddress(3)

	suite.setBondedValidators(100, 100, valA, valB, valC)

	updates := []types.EventUpdate{
		types.NewEventUpdate(transfersEvent(1), []types.Sighting{
			types.NewSighting(valA, 100),
			types.NewSighting(valB, 100),
		}),
	}

	powers, err := suite.keeper.GetVotingPowers(suite.ctx, updates)
	suite.Require().NoError(err)
	suite.Require().Len(powers, 2)

	third, err := types.NewFractionalVotingPower(sdkmath.NewInt(1), sdkmath.NewInt(3))
	suite.Require().NoError(err)

	suite.Require().True(powers[types.NewSighting(valA, 100)].Equal(third))
	suite.Require().True(powers[types.NewSighting(valB, 100)].Equal(third))
}

func (suite *KeeperTestSuite) TestGetVotingPowersWeighted() {
	valA := bridgetesting.ValidatorAddress(1)
	valB := bridgetesting.ValidatorAddress(2)

	// 300 of 400 tokens behind valA, 100 behind valB
	suite.stakingKeeper.SetValidators(100,
		bridgetesting.NewBondedValidator(valA, sdkmath.NewInt(300)),
		bridgetesting.NewBondedValidator(valB, sdkmath.NewInt(100)),
	)

	powers, err := suite.keeper.GetVotingPowers(suite.ctx, []types.EventUpdate{
		types.NewEventUpdate(transfersEvent(1), []types.Sighting{
			types.NewSighting(valA, 100),
			types.NewSighting(valB, 100),
		}),
	})
	suite.Require().NoError(err)

	suite.Require().Equal("3/4", powers[types.NewSighting(valA, 100)].String())
	suite.Require().Equal("1/4", powers[types.NewSighting(valB, 100)].String())
}

func (suite *KeeperTestSuite) TestGetVotingPowersExcludesInactiveValidators() {
	valA := bridgetesting.ValidatorAddress(1)
	valB := bridgetesting.ValidatorAddress(2)
	valC := bridgetesting.ValidatorAddress(3)

	suite.stakingKeeper.SetValidators(100,
		bridgetesting.NewBondedValidator(valA, sdkmath.NewInt(100)),
		bridgetesting.NewUnbondedValidator(valB, sdkmath.NewInt(900)),
	)

	powers, err := suite.keeper.GetVotingPowers(suite.ctx, []types.EventUpdate{
		types.NewEventUpdate(transfersEvent(1), []types.Sighting{
			types.NewSighting(valA, 100),
			types.NewSighting(valB, 100), // unbonded at height 100
			types.NewSighting(valC, 100), // not in the set at all
		}),
	})
	suite.Require().NoError(err)
	suite.Require().Len(powers, 1)

	// unbonded tokens do not count towards the total either
	suite.Require().Equal("1/1", powers[types.NewSighting(valA, 100)].String())
}

func (suite *KeeperTestSuite) TestGetVotingPowersMissingHeight() {
	valA := bridgetesting.ValidatorAddress(1)
	valB := bridgetesting.ValidatorAddress(2)

	suite.setBondedValidators(100, 100, valA, valB)

	powers, err := suite.keeper.GetVotingPowers(suite.ctx, []types.EventUpdate{
		types.NewEventUpdate(transfersEvent(1), []types.Sighting{
			types.NewSighting(valA, 100),
			types.NewSighting(valB, 250), // no validator set recorded
		}),
	})
	suite.Require().NoError(err)
	suite.Require().Len(powers, 1)

	_, ok := powers[types.NewSighting(valB, 250)]
	suite.Require().False(ok)
}

func (suite *KeeperTestSuite) TestGetVotingPowersNoBondedTokens() {
	valA := bridgetesting.ValidatorAddress(1)

	suite.stakingKeeper.SetValidators(100,
		bridgetesting.NewBondedValidator(valA, sdkmath.ZeroInt()),
	)

	powers, err := suite.keeper.GetVotingPowers(suite.ctx, []types.EventUpdate{
		types.NewEventUpdate(transfersEvent(1), []types.Sighting{
			types.NewSighting(valA, 100),
		}),
	})
	suite.Require().NoError(err)
	suite.Require().Empty(powers)
}

func (suite *KeeperTestSuite) TestGetVotingPowersStoreFailure() {
	valA := bridgetesting.ValidatorAddress(1)
	suite.stakingKeeper.Err = errors.New("historical info store unreadable")

	_, err := suite.keeper.GetVotingPowers(suite.ctx, []types.EventUpdate{
		types.NewEventUpdate(transfersEvent(1), []types.Sighting{
			types.NewSighting(valA, 100),
		}),
	})
	suite.Require().ErrorIs(err, types.ErrVotingPowerLookup)
}

func (suite *KeeperTestSuite) TestGetVotingPowersMultipleHeights() {
	valA := bridgetesting.ValidatorAddress(1)
	valB := bridgetesting.ValidatorAddress(2)

	// valB only bonds at height 200
	suite.setBondedValidators(100, 100, valA)
	suite.setBondedValidators(200, 100, valA, valB)

	powers, err := suite.keeper.GetVotingPowers(suite.ctx, []types.EventUpdate{
		types.NewEventUpdate(transfersEvent(1), []types.Sighting{
			types.NewSighting(valA, 100),
			types.NewSighting(valB, 200),
		}),
	})
	suite.Require().NoError(err)
	suite.Require().Len(powers, 2)

	suite.Require().Equal("1/1", powers[types.NewSighting(valA, 100)].String())
	suite.Require().Equal("1/2", powers[types.NewSighting(valB, 200)].String())
}
