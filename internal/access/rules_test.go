package access_test

import (
	"testing"

	"northlink/internal/access"
	"northlink/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanEditList(t *testing.T) {
	list := &models.List{ID: "l1", OwnerUserID: "alice"}

	assert.True(t, access.CanEditList("alice", list))
	assert.False(t, access.CanEditList("bob", list))

	// Absent inputs deny, never error
	assert.False(t, access.CanEditList("", list))
	assert.False(t, access.CanEditList("alice", nil))
}

func TestCanShareList(t *testing.T) {
	list := &models.List{ID: "l1", OwnerUserID: "alice"}
	membership := &models.Membership{GroupID: "g1", UserID: "alice"}

	assert.True(t, access.CanShareList("alice", list, membership))
	assert.False(t, access.CanShareList("alice", list, nil), "owner without a group cannot share")
	assert.False(t, access.CanShareList("bob", list, membership))
}

func TestCanSeeList(t *testing.T) {
	own := &models.List{ID: "l1", OwnerUserID: "alice"}
	shared := &models.List{ID: "l2", OwnerUserID: "bob"}
	accessible := map[string]struct{}{"l2": {}}

	assert.True(t, access.CanSeeList("alice", own, nil), "owner sees own list regardless of shares")
	assert.True(t, access.CanSeeList("alice", shared, accessible))
	assert.False(t, access.CanSeeList("alice", &models.List{ID: "l3", OwnerUserID: "bob"}, accessible))
	assert.False(t, access.CanSeeList("", shared, accessible))
	assert.False(t, access.CanSeeList("alice", nil, accessible))
}

func TestCanTogglePurchased(t *testing.T) {
	list := &models.List{ID: "l1", OwnerUserID: "alice"}

	// Any user who can see the list may toggle, owner included.
	assert.True(t, access.CanTogglePurchased("bob", list, true))
	assert.True(t, access.CanTogglePurchased("alice", list, true))
	assert.False(t, access.CanTogglePurchased("bob", list, false))
	assert.False(t, access.CanTogglePurchased("", list, true))
	assert.False(t, access.CanTogglePurchased("bob", nil, true))
}

func TestSharedWithMe(t *testing.T) {
	rows := []models.AccessibleList{
		{ID: "l1", OwnerUserID: "alice"}, // caller's own list
		{ID: "l2", OwnerUserID: "bob"},
		{ID: "l2", OwnerUserID: "bob"}, // shared via a second group
		{ID: "l3", OwnerUserID: "carol"},
	}

	out := access.SharedWithMe(rows, "alice")

	assert.Len(t, out, 2)
	assert.Equal(t, "l2", out[0].ID)
	assert.Equal(t, "l3", out[1].ID)
	for _, l := range out {
		assert.NotEqual(t, "alice", l.OwnerUserID, "own lists never appear in shared-with-me")
	}
}
