package bridgetesting

import (
	"slices"

	testifysuite "github.com/stretchr/testify/suite"

	abci "github.com/cometbft/cometbft/abci/types"
)

// AssertEvents asserts that the expected events were emitted. An expected
// event matches an actual event of the same type carrying every expected
// attribute; actual events may carry additional attributes.
func AssertEvents(suite *testifysuite.Suite, expected, actual []abci.Event) {
	foundEvents := make(map[int]bool)

	for i, expectedEvent := range expected {
		for _, actualEvent := range actual {
			if expectedEvent.Type != actualEvent.Type {
				continue
			}

			attributeMatch := true
			for _, expectedAttr := range expectedEvent.Attributes {
				attributeMatch = attributeMatch && containsAttribute(actualEvent.Attributes, expectedAttr.Key, expectedAttr.Value)
			}

			if attributeMatch {
				foundEvents[i] = true
			}
		}
	}

	for i, expectedEvent := range expected {
		suite.Require().True(foundEvents[i], "event: %s was not found in events", expectedEvent.Type)
	}
}

func containsAttribute(attrs []abci.EventAttribute, key, value string) bool {
	return slices.ContainsFunc(attrs, func(attr abci.EventAttribute) bool {
		return attr.Key == key && attr.Value == value
	})
}
