package types

// oracle module event types and attribute keys
const (
	// EventTypeTallyUpdated is emitted every time a tally accumulates new
	// votes
	EventTypeTallyUpdated = "tally_updated"

	// EventTypeEventConfirmed is emitted exactly once per event, when its
	// tally first crosses the quorum threshold
	EventTypeEventConfirmed = "ethereum_event_confirmed"

	AttributeKeyEventHash   = "event_hash"
	AttributeKeyEventKind   = "event_kind"
	AttributeKeyVotingPower = "voting_power"
	AttributeKeySeen        = "seen"

	AttributeValueCategory = ModuleName
)
