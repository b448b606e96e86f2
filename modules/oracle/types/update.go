package types

import (
	"sort"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Sighting records one validator reporting an event, together with the block
// height whose validator set prices the vote.
type Sighting struct {
	Validator string `json:"validator"`
	Height    int64  `json:"height"`
}

// NewSighting constructs a sighting of an event by a validator.
func NewSighting(validator string, height int64) Sighting {
	return Sighting{
		Validator: validator,
		Height:    height,
	}
}

// Validate checks the sighting fields.
func (s Sighting) Validate() error {
	if _, err := sdk.ValAddressFromBech32(s.Validator); err != nil {
		return errorsmod.Wrapf(ErrInvalidUpdate, "invalid validator address %s: %s", s.Validator, err)
	}
	if s.Height <= 0 {
		return errorsmod.Wrapf(ErrInvalidUpdate, "sighting height must be positive, got %d", s.Height)
	}

	return nil
}

// EventUpdate carries one event body together with the sightings backing it
// in the current block.
type EventUpdate struct {
	Body      EthereumEvent `json:"body"`
	Sightings []Sighting    `json:"sightings"`
}

// NewEventUpdate constructs an event update.
func NewEventUpdate(body EthereumEvent, sightings []Sighting) EventUpdate {
	return EventUpdate{
		Body:      body,
		Sightings: sightings,
	}
}

// ValidateBasic checks that the update carries a well formed event and at
// least one well formed sighting.
func (u EventUpdate) ValidateBasic() error {
	if u.Body == nil {
		return errorsmod.Wrap(ErrInvalidUpdate, "event body cannot be nil")
	}
	if err := u.Body.ValidateBasic(); err != nil {
		return err
	}
	if len(u.Sightings) == 0 {
		return errorsmod.Wrap(ErrInvalidUpdate, "update must carry at least one sighting")
	}
	for _, sighting := range u.Sightings {
		if err := sighting.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// MergeEventUpdates merges updates carrying the same event into a single
// update holding the union of their sightings, and collapses repeated votes
// by one validator for one event down to the sighting with the greatest
// height. The returned updates are sorted by ascending event hash, fixing the
// order in which a block's batch is processed. Collapsed duplicate sightings
// are returned separately so callers can log the anomaly.
func MergeEventUpdates(updates []EventUpdate) ([]EventUpdate, []Sighting, error) {
	type pendingUpdate struct {
		body    EthereumEvent
		heights map[string]int64
	}

	var duplicates []Sighting

	merged := make(map[string]*pendingUpdate)
	for _, update := range updates {
		hash, err := EventHash(update.Body)
		if err != nil {
			return nil, nil, err
		}

		entry, ok := merged[hash.String()]
		if !ok {
			entry = &pendingUpdate{
				body:    update.Body,
				heights: make(map[string]int64),
			}
			merged[hash.String()] = entry
		}

		for _, sighting := range update.Sightings {
			height, voted := entry.heights[sighting.Validator]
			switch {
			case !voted:
				entry.heights[sighting.Validator] = sighting.Height
			case sighting.Height > height:
				entry.heights[sighting.Validator] = sighting.Height
				duplicates = append(duplicates, NewSighting(sighting.Validator, height))
			case sighting.Height < height:
				duplicates = append(duplicates, sighting)
			}
		}
	}

	hashes := make([]string, 0, len(merged))
	for hash := range merged {
		hashes = append(hashes, hash)
	}
	sort.Strings(hashes)

	result := make([]EventUpdate, 0, len(merged))
	for _, hash := range hashes {
		entry := merged[hash]

		sightings := make([]Sighting, 0, len(entry.heights))
		for validator, height := range entry.heights {
			sightings = append(sightings, NewSighting(validator, height))
		}
		sortSightings(sightings)

		result = append(result, NewEventUpdate(entry.body, sightings))
	}

	sortSightings(duplicates)

	return result, duplicates, nil
}

// sortSightings orders sightings by validator address, breaking ties by
// ascending height.
func sortSightings(sightings []Sighting) {
	sort.Slice(sightings, func(i, j int) bool {
		if sightings[i].Validator != sightings[j].Validator {
			return sightings[i].Validator < sightings[j].Validator
		}
		return sightings[i].Height < sightings[j].Height
	})
}
