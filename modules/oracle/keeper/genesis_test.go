package keeper_test

import (
	"sort"

	sdkmath "cosmossdk.io/math"

	"github.com/cosmos/ethbridge/modules/oracle/types"
	bridgetesting "github.com/cosmos/ethbridge/testing"
)

func (suite *KeeperTestSuite) TestExportGenesisFreshChain() {
	exported, err := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(types.DefaultParams(), exported.Params)
	suite.Require().Empty(exported.Tallies)
	suite.Require().Empty(exported.WrappedERC20s)
}

func (suite *KeeperTestSuite) TestInitExportGenesis() {
	valA := bridgetesting.ValidatorAddress(1)
	valB := bridgetesting.ValidatorAddress(2)
	voters := []string{valA, valB}
	sort.Strings(voters)

	receivers := []string{bridgetesting.AccountAddress(1), bridgetesting.AccountAddress(2)}
	sort.Strings(receivers)

	half, err := types.ParseFractionalVotingPower("1/2")
	suite.Require().NoError(err)
	whole, err := types.ParseFractionalVotingPower("1/1")
	suite.Require().NoError(err)

	genState := types.NewGenesisState(
		types.NewParams(true, 25),
		[]types.Tally{
			// an event still accumulating votes keeps its progress
			{Body: transfersEvent(1), VotingPower: half, SeenBy: []string{voters[0]}, Seen: false},
			{Body: transfersEvent(2), VotingPower: whole, SeenBy: voters, Seen: true},
		},
		[]types.WrappedERC20{
			{
				Asset:  bridgetesting.DAIAddress,
				Supply: sdkmath.NewInt(150),
				Balances: []types.ERC20Balance{
					{Receiver: receivers[0], Amount: sdkmath.NewInt(100)},
					{Receiver: receivers[1], Amount: sdkmath.NewInt(50)},
				},
			},
		},
	)
	suite.Require().NoError(genState.Validate())

	suite.Require().NoError(suite.keeper.InitGenesis(suite.ctx, *genState))

	suite.Require().Equal(genState.Params, suite.keeper.GetParams(suite.ctx))

	// a pending tally resumes from its recorded voting power
	tally, err := suite.keeper.GetTally(suite.ctx, eventHash(suite, transfersEvent(1)))
	suite.Require().NoError(err)
	suite.Require().True(tally.VotingPower.Equal(half))
	suite.Require().False(tally.Seen)

	balance, err := suite.keeper.GetWrappedBalance(suite.ctx, bridgetesting.DAIAddress, receivers[1])
	suite.Require().NoError(err)
	suite.Require().Equal(sdkmath.NewInt(50), balance)

	exported, err := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)

	suite.Require().Equal(genState.Params, exported.Params)
	suite.Require().ElementsMatch(genState.Tallies, exported.Tallies)
	suite.Require().ElementsMatch(genState.WrappedERC20s, exported.WrappedERC20s)
}

// State reached through applied batches survives an export/import cycle.
func (suite *KeeperTestSuite) TestGenesisRoundTripAfterActivity() {
	valA := bridgetesting.ValidatorAddress(1)
	valB := bridgetesting.ValidatorAddress(2)
	suite.setBondedValidators(100, 100, valA, valB)

	// one confirmed event, one still pending
	_, err := suite.keeper.ApplyEventUpdates(suite.ctx, []types.EventUpdate{
		types.NewEventUpdate(transfersEvent(1), []types.Sighting{
			types.NewSighting(valA, 100),
			types.NewSighting(valB, 100),
		}),
		types.NewEventUpdate(transfersEvent(2), []types.Sighting{
			types.NewSighting(valA, 100),
		}),
	})
	suite.Require().NoError(err)

	exported, err := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(exported.Validate())
	suite.Require().Len(exported.Tallies, 2)
	suite.Require().Len(exported.WrappedERC20s, 1)

	// import into a fresh store and compare the re-export
	freshCtx := bridgetesting.NewTestContext(suite.T(), suite.storeKey)
	suite.Require().NoError(suite.keeper.InitGenesis(freshCtx, *exported))

	reexported, err := suite.keeper.ExportGenesis(freshCtx)
	suite.Require().NoError(err)
	suite.Require().Equal(exported, reexported)

	// the pending event can still be confirmed after the import
	result, err := suite.keeper.ApplyEventUpdates(freshCtx, []types.EventUpdate{
		types.NewEventUpdate(transfersEvent(2), []types.Sighting{
			types.NewSighting(valB, 100),
		}),
	})
	suite.Require().NoError(err)
	suite.Require().Len(result.Confirmations, 1)
}
