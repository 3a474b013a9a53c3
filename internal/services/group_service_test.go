package services_test

import (
	"testing"

	"northlink/internal/models"
	"northlink/internal/repositories"
	"northlink/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestGroupService_CreateGroup(t *testing.T) {
	groupRepo := repositories.NewMockGroupRepository()
	svc := services.NewGroupService(groupRepo)

	group, err := svc.CreateGroup("alice", "  The Smiths  ")
	assert.NoError(t, err)
	assert.Equal(t, "The Smiths", group.Name)
	assert.NotEmpty(t, group.ID)
	// The group ID doubles as the invite code
	assert.Equal(t, group.ID, group.InviteCode())

	// Creator is enrolled
	m, err := groupRepo.GetMembershipByUser("alice")
	assert.NoError(t, err)
	assert.Equal(t, group.ID, m.GroupID)

	// One membership per user
	_, err = svc.CreateGroup("alice", "Second Family")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already a member")

	_, err = svc.CreateGroup("bob", "   ")
	assert.Error(t, err)
}

func TestGroupService_JoinGroup(t *testing.T) {
	groupRepo := repositories.NewMockGroupRepository()
	svc := services.NewGroupService(groupRepo)

	group, err := svc.CreateGroup("alice", "The Smiths")
	assert.NoError(t, err)

	// Garbage code fails with not-found and leaves no membership behind
	_, err = svc.JoinGroup("bob", "no-such-code")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	_, err = groupRepo.GetMembershipByUser("bob")
	assert.Error(t, err)

	m, err := svc.JoinGroup("bob", group.InviteCode())
	assert.NoError(t, err)
	assert.Equal(t, group.ID, m.GroupID)
	assert.Equal(t, "bob", m.UserID)

	// Joining while already a member conflicts
	_, err = svc.JoinGroup("bob", group.InviteCode())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already a member")

	_, err = svc.JoinGroup("carol", "  ")
	assert.Error(t, err)
}

func TestGroupService_GetMembershipAndLeave(t *testing.T) {
	groupRepo := repositories.NewMockGroupRepository()
	svc := services.NewGroupService(groupRepo)

	// No group: (nil, nil), not an error
	gm, err := svc.GetMembership("alice")
	assert.NoError(t, err)
	assert.Nil(t, gm)

	group, err := svc.CreateGroup("alice", "The Smiths")
	assert.NoError(t, err)

	gm, err = svc.GetMembership("alice")
	assert.NoError(t, err)
	if assert.NotNil(t, gm) {
		assert.Equal(t, group.ID, gm.GroupID)
		assert.Equal(t, "The Smiths", gm.GroupName)
		assert.Equal(t, group.ID, gm.InviteCode)
		assert.Equal(t, "member", gm.Role)
	}

	assert.NoError(t, svc.LeaveGroup("alice"))
	gm, err = svc.GetMembership("alice")
	assert.NoError(t, err)
	assert.Nil(t, gm)
}

func TestGroupService_EnsureDefaultMembership(t *testing.T) {
	groupRepo := repositories.NewMockGroupRepository()
	svc := services.NewGroupService(groupRepo)

	// Default group missing: onboarding surfaces the provisioning error
	assert.Error(t, svc.EnsureDefaultMembership("alice"))

	def := &models.Group{Name: services.DefaultGroupName}
	assert.NoError(t, groupRepo.Create(def))

	assert.NoError(t, svc.EnsureDefaultMembership("alice"))
	m, err := groupRepo.GetMembershipByUser("alice")
	assert.NoError(t, err)
	assert.Equal(t, def.ID, m.GroupID)

	// Idempotent for users who already belong somewhere
	assert.NoError(t, svc.EnsureDefaultMembership("alice"))

	other, err := svc.CreateGroup("bob", "The Does")
	assert.NoError(t, err)
	assert.NoError(t, svc.EnsureDefaultMembership("bob"))
	m, err = groupRepo.GetMembershipByUser("bob")
	assert.NoError(t, err)
	assert.Equal(t, other.ID, m.GroupID, "existing membership left alone")
}
