package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"

	cmtbytes "github.com/cometbft/cometbft/libs/bytes"
	cmttypes "github.com/cometbft/cometbft/types"
)

const (
	// ModuleName defines the oracle module name
	ModuleName = "oracle"

	// StoreKey is the store key string for the oracle module
	StoreKey = ModuleName
)

// Every tally lives under a prefix derived from the hash of the event body:
//
//	eth_msgs/{hash}/body
//	eth_msgs/{hash}/seen
//	eth_msgs/{hash}/seen_by
//	eth_msgs/{hash}/voting_power
//
// The seen key doubles as the existence probe for the whole tally: a tally
// is stored if and only if its seen key is stored.
const (
	// TallyKeyPrefix is the top-level store prefix for event tallies
	TallyKeyPrefix = "eth_msgs"

	// KeySegmentBody is the key segment for the event body field
	KeySegmentBody = "body"

	// KeySegmentSeen is the key segment for the seen flag field
	KeySegmentSeen = "seen"

	// KeySegmentSeenBy is the key segment for the voter list field
	KeySegmentSeenBy = "seen_by"

	// KeySegmentVotingPower is the key segment for the accumulated power field
	KeySegmentVotingPower = "voting_power"
)

// module parameter store keys
var (
	// ParamsKeyEnabled is the store key for the bridge enabled parameter
	ParamsKeyEnabled = []byte("params/enabled")

	// ParamsKeyMinConfirmations is the store key for the minimum Ethereum
	// block confirmations parameter
	ParamsKeyMinConfirmations = []byte("params/min_confirmations")
)

// TallyPrefix returns the store prefix under which all four tally fields of
// the event with the given hash are stored.
func TallyPrefix(eventHash cmtbytes.HexBytes) string {
	return fmt.Sprintf("%s/%s", TallyKeyPrefix, eventHash)
}

// TallyBodyKey returns the store key holding the event body.
func TallyBodyKey(eventHash cmtbytes.HexBytes) []byte {
	return []byte(fmt.Sprintf("%s/%s", TallyPrefix(eventHash), KeySegmentBody))
}

// TallySeenKey returns the store key holding the seen flag.
func TallySeenKey(eventHash cmtbytes.HexBytes) []byte {
	return []byte(fmt.Sprintf("%s/%s", TallyPrefix(eventHash), KeySegmentSeen))
}

// TallySeenByKey returns the store key holding the list of validators that
// have voted for the event.
func TallySeenByKey(eventHash cmtbytes.HexBytes) []byte {
	return []byte(fmt.Sprintf("%s/%s", TallyPrefix(eventHash), KeySegmentSeenBy))
}

// TallyVotingPowerKey returns the store key holding the accumulated
// fractional voting power behind the event.
func TallyVotingPowerKey(eventHash cmtbytes.HexBytes) []byte {
	return []byte(fmt.Sprintf("%s/%s", TallyPrefix(eventHash), KeySegmentVotingPower))
}

// ParseTallyKey splits a raw tally store key of the form
// eth_msgs/{hash}/{segment} into the event hash and the field segment.
func ParseTallyKey(key []byte) (cmtbytes.HexBytes, string, error) {
	parts := strings.Split(string(key), "/")
	if len(parts) != 3 || parts[0] != TallyKeyPrefix {
		return nil, "", errorsmod.Wrapf(ErrInvalidTallyKey, "expected %s/{hash}/{segment}, got %s", TallyKeyPrefix, key)
	}

	hash, err := ParseHexHash(parts[1])
	if err != nil {
		return nil, "", errorsmod.Wrapf(ErrInvalidTallyKey, "invalid event hash %s: %s", parts[1], err)
	}

	switch parts[2] {
	case KeySegmentBody, KeySegmentSeen, KeySegmentSeenBy, KeySegmentVotingPower:
		return hash, parts[2], nil
	default:
		return nil, "", errorsmod.Wrapf(ErrInvalidTallyKey, "unknown tally field segment %s", parts[2])
	}
}

// ParseHexHash parses a hex hash in string format to bytes and validates its correctness.
func ParseHexHash(hexHash string) (cmtbytes.HexBytes, error) {
	hash, err := hex.DecodeString(strings.ToLower(hexHash))
	if err != nil {
		return nil, err
	}

	if err := cmttypes.ValidateHash(hash); err != nil {
		return nil, err
	}

	return hash, nil
}
