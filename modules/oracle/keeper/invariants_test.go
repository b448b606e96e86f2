package keeper_test

import (
	"github.com/cosmos/ethbridge/modules/oracle/keeper"
	"github.com/cosmos/ethbridge/modules/oracle/types"
	bridgetesting "github.com/cosmos/ethbridge/testing"
)

func (suite *KeeperTestSuite) TestTallyStateInvariant() {
	valA := bridgetesting.ValidatorAddress(1)
	valB := bridgetesting.ValidatorAddress(2)
	suite.setBondedValidators(100, 100, valA, valB)

	event := transfersEvent(1)
	_, err := suite.keeper.ApplyEventUpdates(suite.ctx, []types.EventUpdate{
		types.NewEventUpdate(event, []types.Sighting{types.NewSighting(valA, 100)}),
	})
	suite.Require().NoError(err)

	msg, broken := keeper.TallyStateInvariant(suite.keeper)(suite.ctx)
	suite.Require().False(broken, msg)

	// claim quorum for a tally holding half the voting power
	hash := eventHash(suite, event)
	suite.ctx.KVStore(suite.storeKey).Set(types.TallySeenKey(hash), []byte{1})

	msg, broken = keeper.TallyStateInvariant(suite.keeper)(suite.ctx)
	suite.Require().True(broken, msg)
}

func (suite *KeeperTestSuite) TestTallyStateInvariantBodyMismatch() {
	valA := bridgetesting.ValidatorAddress(1)
	valB := bridgetesting.ValidatorAddress(2)
	suite.setBondedValidators(100, 100, valA, valB)

	event := transfersEvent(1)
	_, err := suite.keeper.ApplyEventUpdates(suite.ctx, []types.EventUpdate{
		types.NewEventUpdate(event, []types.Sighting{types.NewSighting(valA, 100)}),
	})
	suite.Require().NoError(err)

	// swap in the body of a different event under the stored hash
	var body types.EthereumEvent = transfersEvent(2)
	bz, err := types.ModuleCdc.Marshal(&body)
	suite.Require().NoError(err)
	suite.ctx.KVStore(suite.storeKey).Set(types.TallyBodyKey(eventHash(suite, event)), bz)

	msg, broken := keeper.TallyStateInvariant(suite.keeper)(suite.ctx)
	suite.Require().True(broken, msg)
	suite.Require().Contains(msg, "holds the body of event")
}

func (suite *KeeperTestSuite) TestWrappedSupplyInvariant() {
	valA := bridgetesting.ValidatorAddress(1)
	suite.setBondedValidators(100, 100, valA)

	_, err := suite.keeper.ApplyEventUpdates(suite.ctx, []types.EventUpdate{
		types.NewEventUpdate(transfersEvent(1), []types.Sighting{types.NewSighting(valA, 100)}),
	})
	suite.Require().NoError(err)

	msg, broken := keeper.WrappedSupplyInvariant(suite.keeper)(suite.ctx)
	suite.Require().False(broken, msg)

	// inflate a balance without adjusting the supply
	key := types.WrappedERC20BalanceKey(bridgetesting.DAIAddress, bridgetesting.AccountAddress(1))
	suite.ctx.KVStore(suite.storeKey).Set(key, []byte("9000"))

	msg, broken = keeper.WrappedSupplyInvariant(suite.keeper)(suite.ctx)
	suite.Require().True(broken, msg)
}

func (suite *KeeperTestSuite) TestAllInvariants() {
	valA := bridgetesting.ValidatorAddress(1)
	suite.setBondedValidators(100, 100, valA)

	_, err := suite.keeper.ApplyEventUpdates(suite.ctx, []types.EventUpdate{
		types.NewEventUpdate(transfersEvent(1), []types.Sighting{types.NewSighting(valA, 100)}),
	})
	suite.Require().NoError(err)

	msg, broken := keeper.AllInvariants(suite.keeper)(suite.ctx)
	suite.Require().False(broken, msg)
}
