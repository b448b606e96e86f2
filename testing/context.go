/*
Package bridgetesting provides the shared fixtures for oracle module tests: an
in-memory multistore context, a map-backed staking keeper stub and
deterministic addresses and assets.
*/
package bridgetesting

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"

	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"

	tmproto "github.com/cometbft/cometbft/proto/tendermint/types"
)

// NewTestContext returns a context over a fresh in-memory commit multistore
// with the given store keys mounted.
func NewTestContext(t *testing.T, keys ...storetypes.StoreKey) sdk.Context {
	t.Helper()

	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	}

	err := cms.LoadLatestVersion()
	require.NoError(t, err)

	return sdk.NewContext(cms, tmproto.Header{}, false, log.NewNopLogger())
}
