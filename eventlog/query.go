package eventlog

import (
	cmtquery "github.com/cometbft/cometbft/libs/pubsub/query"

	errorsmod "cosmossdk.io/errors"

	abci "github.com/cometbft/cometbft/abci/types"
)

// QueryMatcher matches single ABCI events against a compiled CometBFT pubsub
// query, e.g. "ethereum_event_confirmed.event_hash = 'ABC123'".
type QueryMatcher struct {
	query *cmtquery.Query
}

// NewQueryMatcher compiles the given pubsub query string.
func NewQueryMatcher(queryString string) (QueryMatcher, error) {
	q, err := cmtquery.New(queryString)
	if err != nil {
		return QueryMatcher{}, errorsmod.Wrapf(err, "invalid event query %q", queryString)
	}

	return QueryMatcher{query: q}, nil
}

// MustNewQueryMatcher compiles the given pubsub query string and panics on
// failure. Intended for statically known queries.
func MustNewQueryMatcher(queryString string) QueryMatcher {
	matcher, err := NewQueryMatcher(queryString)
	if err != nil {
		panic(err)
	}

	return matcher
}

// Matches reports whether the event satisfies the query. The event is
// flattened to the "type.attribute_key" composite form the query engine
// expects, so a query never spans attributes of two distinct events.
func (m QueryMatcher) Matches(event abci.Event) (bool, error) {
	return m.query.Matches(compositeKeys(event))
}

// String returns the canonical form of the compiled query.
func (m QueryMatcher) String() string {
	return m.query.String()
}

func compositeKeys(event abci.Event) map[string][]string {
	keys := make(map[string][]string, len(event.Attributes))
	for _, attr := range event.Attributes {
		key := event.Type + "." + attr.Key
		keys[key] = append(keys[key], attr.Value)
	}

	return keys
}
