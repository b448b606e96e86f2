package keeper

import (
	"strings"

	errorsmod "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"

	cmtbytes "github.com/cometbft/cometbft/libs/bytes"

	"github.com/cosmos/ethbridge/modules/oracle/types"
)

// HasTally reports whether a tally exists for the event with the given hash.
// The seen key is the existence probe for the whole record: the four tally
// fields are only ever written together.
func (k *Keeper) HasTally(ctx sdk.Context, eventHash cmtbytes.HexBytes) bool {
	store := ctx.KVStore(k.storeKey)
	return store.Has(types.TallySeenKey(eventHash))
}

// GetTally reads the tally stored for the event with the given hash. Callers
// decide existence with HasTally first; a partially missing or undecodable
// record is reported as corruption, never treated as absent.
func (k *Keeper) GetTally(ctx sdk.Context, eventHash cmtbytes.HexBytes) (types.Tally, error) {
	store := ctx.KVStore(k.storeKey)

	bz := store.Get(types.TallyBodyKey(eventHash))
	if bz == nil {
		return types.Tally{}, errorsmod.Wrapf(types.ErrCorruptedTally, "event %s has no body record", eventHash)
	}
	var body types.EthereumEvent
	if err := k.cdc.Unmarshal(bz, &body); err != nil {
		return types.Tally{}, errorsmod.Wrapf(types.ErrCorruptedTally, "event %s body: %s", eventHash, err)
	}

	bz = store.Get(types.TallySeenKey(eventHash))
	if len(bz) != 1 || bz[0] > 1 {
		return types.Tally{}, errorsmod.Wrapf(types.ErrCorruptedTally, "event %s has seen record %X", eventHash, bz)
	}
	seen := bz[0] == 1

	seenBy, err := parseSeenBy(store.Get(types.TallySeenByKey(eventHash)))
	if err != nil {
		return types.Tally{}, errorsmod.Wrapf(err, "event %s", eventHash)
	}

	bz = store.Get(types.TallyVotingPowerKey(eventHash))
	if bz == nil {
		return types.Tally{}, errorsmod.Wrapf(types.ErrCorruptedTally, "event %s has no voting power record", eventHash)
	}
	votingPower, err := types.ParseFractionalVotingPower(string(bz))
	if err != nil {
		return types.Tally{}, errorsmod.Wrapf(types.ErrCorruptedTally, "event %s voting power: %s", eventHash, err)
	}

	return types.Tally{
		Body:        body,
		VotingPower: votingPower,
		SeenBy:      seenBy,
		Seen:        seen,
	}, nil
}

// SetTally writes the four tally fields under the event's hash prefix.
func (k *Keeper) SetTally(ctx sdk.Context, eventHash cmtbytes.HexBytes, tally types.Tally) error {
	bz, err := k.cdc.Marshal(&tally.Body)
	if err != nil {
		return errorsmod.Wrapf(types.ErrInvalidEvent, "failed to encode %s event: %s", tally.Body.Kind(), err)
	}

	store := ctx.KVStore(k.storeKey)
	store.Set(types.TallyBodyKey(eventHash), bz)

	if tally.Seen {
		store.Set(types.TallySeenKey(eventHash), []byte{1})
	} else {
		store.Set(types.TallySeenKey(eventHash), []byte{0})
	}

	store.Set(types.TallySeenByKey(eventHash), formatSeenBy(tally.SeenBy))
	store.Set(types.TallyVotingPowerKey(eventHash), []byte(tally.VotingPower.String()))

	return nil
}

// GetAllTallies returns every stored tally in ascending event hash order.
// Used in ExportGenesis and by the module invariant.
func (k *Keeper) GetAllTallies(ctx sdk.Context) ([]types.Tally, error) {
	hashes, err := k.tallyHashes(ctx)
	if err != nil {
		return nil, err
	}

	tallies := make([]types.Tally, 0, len(hashes))
	for _, hash := range hashes {
		tally, err := k.GetTally(ctx, hash)
		if err != nil {
			return nil, err
		}
		tallies = append(tallies, tally)
	}

	return tallies, nil
}

// tallyHashes returns the hash of every stored tally in ascending order.
// Hash prefixes are uppercase hex, so key order is hash order.
func (k *Keeper) tallyHashes(ctx sdk.Context) ([]cmtbytes.HexBytes, error) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, []byte(types.TallyKeyPrefix+"/"))
	defer sdk.LogDeferred(k.Logger(ctx), func() error { return iterator.Close() })

	var hashes []cmtbytes.HexBytes
	seen := make(map[string]struct{})
	for ; iterator.Valid(); iterator.Next() {
		hash, _, err := types.ParseTallyKey(iterator.Key())
		if err != nil {
			return nil, err
		}
		if _, ok := seen[hash.String()]; ok {
			continue
		}
		seen[hash.String()] = struct{}{}
		hashes = append(hashes, hash)
	}

	return hashes, nil
}

// formatSeenBy encodes a sorted voter list for storage. Validator operator
// addresses are bech32 strings and never contain the separator.
func formatSeenBy(seenBy []string) []byte {
	return []byte(strings.Join(seenBy, ","))
}

// parseSeenBy decodes a voter list read from storage, checking it is sorted
// and duplicate free.
func parseSeenBy(bz []byte) ([]string, error) {
	if bz == nil {
		return nil, errorsmod.Wrap(types.ErrCorruptedTally, "missing seen_by record")
	}
	if len(bz) == 0 {
		return nil, nil
	}

	seenBy := strings.Split(string(bz), ",")
	for i, validator := range seenBy {
		if validator == "" {
			return nil, errorsmod.Wrap(types.ErrCorruptedTally, "seen_by record holds an empty validator address")
		}
		if i > 0 && seenBy[i-1] >= validator {
			return nil, errorsmod.Wrapf(types.ErrCorruptedTally, "seen_by record is not sorted: %s before %s", seenBy[i-1], validator)
		}
	}

	return seenBy, nil
}
