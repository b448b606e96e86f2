package types

import (
	"sort"

	cmtbytes "github.com/cometbft/cometbft/libs/bytes"
)

// ChangedKeys is the set of store keys touched while applying a batch of
// event updates.
type ChangedKeys map[string]struct{}

// NewChangedKeys returns a set holding the given keys.
func NewChangedKeys(keys ...[]byte) ChangedKeys {
	changed := make(ChangedKeys, len(keys))
	for _, key := range keys {
		changed.Insert(key)
	}
	return changed
}

// Insert adds a key to the set.
func (ck ChangedKeys) Insert(key []byte) {
	ck[string(key)] = struct{}{}
}

// Contains reports whether the key is in the set.
func (ck ChangedKeys) Contains(key []byte) bool {
	_, ok := ck[string(key)]
	return ok
}

// Merge folds every key of other into the set.
func (ck ChangedKeys) Merge(other ChangedKeys) {
	for key := range other {
		ck[key] = struct{}{}
	}
}

// Sorted returns the keys in ascending order.
func (ck ChangedKeys) Sorted() []string {
	keys := make([]string, 0, len(ck))
	for key := range ck {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Confirmation records an event whose tally crossed the quorum threshold in
// the current block, together with the hash identifying its tally.
type Confirmation struct {
	Hash  cmtbytes.HexBytes `json:"hash"`
	Event EthereumEvent     `json:"event"`
}

// NewConfirmation constructs a confirmation for the given event.
func NewConfirmation(hash cmtbytes.HexBytes, event EthereumEvent) Confirmation {
	return Confirmation{
		Hash:  hash,
		Event: event,
	}
}

// ApplyResult reports the effects of applying one block's batch of event
// updates.
type ApplyResult struct {
	// ChangedKeys holds every store key written, including those written
	// by confirmation handlers.
	ChangedKeys ChangedKeys `json:"changed_keys"`

	// Confirmations lists the events newly confirmed by this batch, in
	// ascending event hash order.
	Confirmations []Confirmation `json:"confirmations"`

	// GasUsed is always zero: the batch is derived from validator set
	// state rather than submitted by a gas-metered transaction.
	GasUsed uint64 `json:"gas_used"`
}

// NewApplyResult constructs an ApplyResult.
func NewApplyResult(changedKeys ChangedKeys, confirmations []Confirmation) ApplyResult {
	return ApplyResult{
		ChangedKeys:   changedKeys,
		Confirmations: confirmations,
		GasUsed:       0,
	}
}

// EmptyApplyResult returns the result of applying a batch that touched
// nothing.
func EmptyApplyResult() ApplyResult {
	return NewApplyResult(NewChangedKeys(), nil)
}
