package types

import (
	"bytes"
	"slices"
	"sort"

	errorsmod "cosmossdk.io/errors"
)

// Tally is the persisted vote state for one ethereum event. It is stored as
// four records sharing the event's hash prefix and is only ever replaced
// wholesale: CalculateUpdatedTally merges new votes into a fresh value and
// ValidateTallyTransition checks the replacement before it is written.
type Tally struct {
	// Body is the event being voted on. It is fixed at the first write.
	Body EthereumEvent `json:"body"`

	// VotingPower is the fraction of the bonded validator set that has
	// voted for the event.
	VotingPower FractionalVotingPower `json:"voting_power"`

	// SeenBy lists the validators whose votes have been counted, in
	// ascending address order.
	SeenBy []string `json:"seen_by"`

	// Seen records whether the event has ever been backed by more than
	// two thirds of the voting power. It never returns to false.
	Seen bool `json:"seen"`
}

// NewTally returns the tally for an event no validator has voted on yet.
func NewTally(body EthereumEvent) Tally {
	return Tally{
		Body:        body,
		VotingPower: ZeroFractionalVotingPower(),
		SeenBy:      nil,
		Seen:        false,
	}
}

// Validate checks that the tally is internally consistent: a well formed
// body, a voting power within [0, 1], a sorted duplicate-free voter list and
// a seen flag matching the quorum state of the voting power.
func (t Tally) Validate() error {
	if t.Body == nil {
		return errorsmod.Wrap(ErrCorruptedTally, "event body cannot be nil")
	}
	if err := t.Body.ValidateBasic(); err != nil {
		return errorsmod.Wrap(ErrCorruptedTally, err.Error())
	}
	if err := t.VotingPower.Validate(); err != nil {
		return errorsmod.Wrap(ErrCorruptedTally, err.Error())
	}

	for i, validator := range t.SeenBy {
		if i > 0 && t.SeenBy[i-1] >= validator {
			return errorsmod.Wrapf(ErrCorruptedTally, "seen_by must be sorted and duplicate free, got %s before %s", t.SeenBy[i-1], validator)
		}
	}

	if len(t.SeenBy) == 0 && !t.VotingPower.Equal(ZeroFractionalVotingPower()) {
		return errorsmod.Wrapf(ErrCorruptedTally, "voting power %s recorded without any voters", t.VotingPower)
	}

	if t.Seen != t.VotingPower.ExceedsTwoThirds() {
		return errorsmod.Wrapf(ErrCorruptedTally, "seen flag %t inconsistent with voting power %s", t.Seen, t.VotingPower)
	}

	return nil
}

// HasVoted reports whether the validator's vote has already been counted.
func (t Tally) HasVoted(validator string) bool {
	return slices.Contains(t.SeenBy, validator)
}

// CalculateUpdatedTally merges the given votes into the previous tally and
// returns the resulting tally. Only the first counted vote by a validator
// contributes weight: validators already present in SeenBy are skipped and
// returned so the caller can log the duplicate. The seen flag flips once the
// merged voting power exceeds two thirds and never flips back.
//
// The result is a pure function of its inputs. Votes are folded in ascending
// validator order, and fraction addition is exact, so every node merging the
// same votes into the same tally computes the same result.
func CalculateUpdatedTally(previous Tally, votes map[string]FractionalVotingPower) (Tally, []string) {
	voters := make([]string, 0, len(votes))
	for validator := range votes {
		voters = append(voters, validator)
	}
	sort.Strings(voters)

	var duplicates []string

	votingPower := previous.VotingPower
	seenBy := make([]string, len(previous.SeenBy))
	copy(seenBy, previous.SeenBy)

	for _, validator := range voters {
		if previous.HasVoted(validator) {
			duplicates = append(duplicates, validator)
			continue
		}

		votingPower = votingPower.Add(votes[validator])
		seenBy = append(seenBy, validator)
	}
	sort.Strings(seenBy)

	return Tally{
		Body:        previous.Body,
		VotingPower: votingPower,
		SeenBy:      seenBy,
		Seen:        previous.Seen || votingPower.ExceedsTwoThirds(),
	}, duplicates
}

// ValidateTallyTransition checks that next is a legal successor of previous
// and returns the store keys whose values differ. firstWrite marks a tally
// being created rather than updated: all four keys change and previous must
// be the zero tally for the event.
//
// A failure here is not a user error. It means the merge producing next is
// broken or the stored previous tally is corrupted, and the batch writing the
// transition must be abandoned.
func ValidateTallyTransition(previous, next Tally, firstWrite bool) (ChangedKeys, error) {
	if previous.Body == nil || next.Body == nil {
		return nil, errorsmod.Wrap(ErrInvalidTransition, "tally body cannot be nil")
	}

	previousHash, err := EventHash(previous.Body)
	if err != nil {
		return nil, err
	}
	nextHash, err := EventHash(next.Body)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(previousHash, nextHash) {
		return nil, errorsmod.Wrapf(ErrInvalidTransition, "tally body changed from %s event %s to %s event %s", previous.Body.Kind(), previousHash, next.Body.Kind(), nextHash)
	}

	changed := NewChangedKeys()

	if firstWrite {
		zero := NewTally(previous.Body)
		if !previous.VotingPower.Equal(zero.VotingPower) || len(previous.SeenBy) != 0 || previous.Seen {
			return nil, errorsmod.Wrapf(ErrInvalidTransition, "first write of event %s starts from a non-zero previous tally", nextHash)
		}
		changed.Insert(TallyBodyKey(nextHash))
	}

	if previous.Seen != next.Seen {
		// seen may only transition from false to true
		if previous.Seen && !next.Seen {
			return nil, errorsmod.Wrapf(ErrInvalidTransition, "seen flag of event %s reverted from true to false", nextHash)
		}
		changed.Insert(TallySeenKey(nextHash))
	}

	if !seenBySetsEqual(previous.SeenBy, next.SeenBy) {
		// the voter list may only grow
		for _, validator := range previous.SeenBy {
			if !next.HasVoted(validator) {
				return nil, errorsmod.Wrapf(ErrInvalidTransition, "validator %s dropped from seen_by of event %s", validator, nextHash)
			}
		}
		changed.Insert(TallySeenByKey(nextHash))
	}

	if !previous.VotingPower.Equal(next.VotingPower) {
		// voting power may only strictly increase
		if !next.VotingPower.GT(previous.VotingPower) {
			return nil, errorsmod.Wrapf(ErrInvalidTransition, "voting power of event %s decreased from %s to %s", nextHash, previous.VotingPower, next.VotingPower)
		}
		changed.Insert(TallyVotingPowerKey(nextHash))
	}

	// reaching quorum and the seen flag must move together
	if next.VotingPower.ExceedsTwoThirds() && !next.Seen {
		return nil, errorsmod.Wrapf(ErrInvalidTransition, "event %s has voting power %s behind it but is not seen", nextHash, next.VotingPower)
	}

	return changed, nil
}

// seenBySetsEqual reports whether two sorted voter lists hold the same
// validators.
func seenBySetsEqual(previous, next []string) bool {
	if len(previous) != len(next) {
		return false
	}
	for i := range previous {
		if previous[i] != next[i] {
			return false
		}
	}
	return true
}
