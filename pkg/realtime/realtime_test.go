package realtime_test

import (
	"testing"

	"northlink/pkg/realtime"

	"github.com/stretchr/testify/assert"
)

func TestChangeEventMatches(t *testing.T) {
	ev := realtime.ChangeEvent{
		Table:  "items",
		Kind:   realtime.EventUpdate,
		RowID:  "i1",
		ListID: "l1",
	}

	assert.True(t, ev.Matches("items", "l1"))
	assert.True(t, ev.Matches("items", ""), "empty list filter matches any list")
	assert.False(t, ev.Matches("items", "l2"))
	assert.False(t, ev.Matches("lists", "l1"))

	// List events carry no ListID; they only match the table-wide filter
	listEv := realtime.ChangeEvent{Table: "lists", Kind: realtime.EventDelete, RowID: "l1"}
	assert.True(t, listEv.Matches("lists", ""))
	assert.False(t, listEv.Matches("lists", "l1"))
}
