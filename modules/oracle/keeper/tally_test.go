package keeper_test

import (
	"github.com/cosmos/ethbridge/modules/oracle/types"
	bridgetesting "github.com/cosmos/ethbridge/testing"
)

func (suite *KeeperTestSuite) TestSetGetTally() {
	valA := bridgetesting.ValidatorAddress(1)
	valB := bridgetesting.ValidatorAddress(2)
	voters := []string{valA, valB}
	if voters[0] > voters[1] {
		voters[0], voters[1] = voters[1], voters[0]
	}

	third, err := types.ParseFractionalVotingPower("1/3")
	suite.Require().NoError(err)
	whole, err := types.ParseFractionalVotingPower("1/1")
	suite.Require().NoError(err)

	testCases := []struct {
		name  string
		tally types.Tally
	}{
		{"fresh tally", types.NewTally(transfersEvent(1))},
		{"pending tally", types.Tally{Body: transfersEvent(2), VotingPower: third, SeenBy: []string{voters[0]}, Seen: false}},
		{"confirmed tally", types.Tally{Body: transfersEvent(3), VotingPower: whole, SeenBy: voters, Seen: true}},
		{"contract upgrade tally", types.Tally{Body: upgradeEvent("governance"), VotingPower: whole, SeenBy: voters, Seen: true}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			hash := eventHash(suite, tc.tally.Body)

			suite.Require().False(suite.keeper.HasTally(suite.ctx, hash))

			suite.Require().NoError(suite.keeper.SetTally(suite.ctx, hash, tc.tally))
			suite.Require().True(suite.keeper.HasTally(suite.ctx, hash))

			stored, err := suite.keeper.GetTally(suite.ctx, hash)
			suite.Require().NoError(err)

			suite.Require().Equal(tc.tally.Body, stored.Body)
			suite.Require().True(tc.tally.VotingPower.Equal(stored.VotingPower))
			suite.Require().Equal(len(tc.tally.SeenBy), len(stored.SeenBy))
			if len(tc.tally.SeenBy) > 0 {
				suite.Require().Equal(tc.tally.SeenBy, stored.SeenBy)
			}
			suite.Require().Equal(tc.tally.Seen, stored.Seen)
		})
	}
}

func (suite *KeeperTestSuite) TestGetTallyCorrupted() {
	valA := bridgetesting.ValidatorAddress(1)
	event := transfersEvent(1)
	hash := eventHash(suite, event)

	half, err := types.ParseFractionalVotingPower("1/2")
	suite.Require().NoError(err)

	tally := types.Tally{Body: event, VotingPower: half, SeenBy: []string{valA}, Seen: false}

	testCases := []struct {
		name     string
		malleate func()
	}{
		{"missing body", func() {
			suite.ctx.KVStore(suite.storeKey).Delete(types.TallyBodyKey(hash))
		}},
		{"undecodable body", func() {
			suite.ctx.KVStore(suite.storeKey).Set(types.TallyBodyKey(hash), []byte("not amino"))
		}},
		{"invalid seen byte", func() {
			suite.ctx.KVStore(suite.storeKey).Set(types.TallySeenKey(hash), []byte{7})
		}},
		{"oversized seen record", func() {
			suite.ctx.KVStore(suite.storeKey).Set(types.TallySeenKey(hash), []byte{0, 1})
		}},
		{"missing seen_by", func() {
			suite.ctx.KVStore(suite.storeKey).Delete(types.TallySeenByKey(hash))
		}},
		{"unsorted seen_by", func() {
			suite.ctx.KVStore(suite.storeKey).Set(types.TallySeenByKey(hash), []byte("b,a"))
		}},
		{"empty validator in seen_by", func() {
			suite.ctx.KVStore(suite.storeKey).Set(types.TallySeenByKey(hash), []byte("a,,c"))
		}},
		{"missing voting power", func() {
			suite.ctx.KVStore(suite.storeKey).Delete(types.TallyVotingPowerKey(hash))
		}},
		{"undecodable voting power", func() {
			suite.ctx.KVStore(suite.storeKey).Set(types.TallyVotingPowerKey(hash), []byte("fifty percent"))
		}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.Require().NoError(suite.keeper.SetTally(suite.ctx, hash, tally))
			tc.malleate()

			_, err := suite.keeper.GetTally(suite.ctx, hash)
			suite.Require().ErrorIs(err, types.ErrCorruptedTally)
		})
	}
}

func (suite *KeeperTestSuite) TestGetAllTallies() {
	tallies, err := suite.keeper.GetAllTallies(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Empty(tallies)

	events := []types.EthereumEvent{
		transfersEvent(1),
		transfersEvent(2),
		upgradeEvent("bridge"),
	}
	for _, event := range events {
		hash := eventHash(suite, event)
		suite.Require().NoError(suite.keeper.SetTally(suite.ctx, hash, types.NewTally(event)))
	}

	tallies, err = suite.keeper.GetAllTallies(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(tallies, len(events))

	// ascending event hash order
	for i := 1; i < len(tallies); i++ {
		previous := eventHash(suite, tallies[i-1].Body)
		current := eventHash(suite, tallies[i].Body)
		suite.Require().True(string(previous) < string(current))
	}
}

func (suite *KeeperTestSuite) TestGetAllTalliesForeignKey() {
	hash := eventHash(suite, transfersEvent(1))
	suite.Require().NoError(suite.keeper.SetTally(suite.ctx, hash, types.NewTally(transfersEvent(1))))

	// a key under the tally prefix that does not parse fails the scan
	suite.ctx.KVStore(suite.storeKey).Set([]byte("eth_msgs/bogus/seen"), []byte{1})

	_, err := suite.keeper.GetAllTallies(suite.ctx)
	suite.Require().ErrorIs(err, types.ErrInvalidTallyKey)
}
