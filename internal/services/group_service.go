package services

import (
	"fmt"
	"strings"

	"northlink/internal/models"
	"northlink/internal/repositories"
)

// DefaultGroupName is the name of the group every new user is placed in
// until they create or join one of their own.
const DefaultGroupName = "NorthLink Family"

// GroupMembership is the caller's group membership joined with group metadata.
type GroupMembership struct {
	GroupID    string `json:"group_id"`
	GroupName  string `json:"group_name"`
	InviteCode string `json:"invite_code"`
	Role       string `json:"role"`
}

// GroupService handles business logic for family groups and memberships.
type GroupService struct {
	groupRepo repositories.GroupRepository
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo repositories.GroupRepository) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
	}
}

// CreateGroup creates a group with a generated invite code and enrolls the
// creator. A user holds at most one membership.
func (s *GroupService) CreateGroup(callerID, name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("group name is required")
	}
	if existing, err := s.groupRepo.GetMembershipByUser(callerID); err == nil && existing != nil {
		return nil, fmt.Errorf("user %s is already a member of a group", callerID)
	}

	group := &models.Group{Name: name}
	if err := s.groupRepo.Create(group); err != nil {
		return nil, err
	}
	m := &models.Membership{
		GroupID: group.ID,
		UserID:  callerID,
		Role:    "member",
	}
	if err := s.groupRepo.CreateMembership(m); err != nil {
		return nil, fmt.Errorf("failed to enroll creator in group: %w", err)
	}
	return group, nil
}

// JoinGroup enrolls the caller in the group named by the invite code. The
// group is looked up first so a garbage code fails with not-found instead of
// leaving a dangling membership.
func (s *GroupService) JoinGroup(callerID, inviteCode string) (*models.Membership, error) {
	inviteCode = strings.TrimSpace(inviteCode)
	if inviteCode == "" {
		return nil, fmt.Errorf("invite code is required")
	}

	group, err := s.groupRepo.GetByID(inviteCode)
	if err != nil {
		return nil, fmt.Errorf("group for invite code %s not found", inviteCode)
	}
	if existing, err := s.groupRepo.GetMembershipByUser(callerID); err == nil && existing != nil {
		return nil, fmt.Errorf("user %s is already a member of a group", callerID)
	}

	m := &models.Membership{
		GroupID: group.ID,
		UserID:  callerID,
		Role:    "member",
	}
	if err := s.groupRepo.CreateMembership(m); err != nil {
		return nil, err
	}
	return m, nil
}

// LeaveGroup removes the caller's membership.
func (s *GroupService) LeaveGroup(callerID string) error {
	return s.groupRepo.DeleteMembership(callerID)
}

// GetMembership returns the caller's membership with group metadata, or
// (nil, nil) when they belong to no group. Absence is not an error.
func (s *GroupService) GetMembership(userID string) (*GroupMembership, error) {
	m, err := s.groupRepo.GetMembershipByUser(userID)
	if err != nil || m == nil {
		return nil, nil
	}
	group, err := s.groupRepo.GetByID(m.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve group for membership: %w", err)
	}
	return &GroupMembership{
		GroupID:    group.ID,
		GroupName:  group.Name,
		InviteCode: group.InviteCode(),
		Role:       m.Role,
	}, nil
}

// EnsureDefaultMembership places a groupless user into the default group.
// Used during onboarding; existing memberships are left alone.
func (s *GroupService) EnsureDefaultMembership(userID string) error {
	if existing, err := s.groupRepo.GetMembershipByUser(userID); err == nil && existing != nil {
		return nil
	}
	group, err := s.groupRepo.GetByName(DefaultGroupName)
	if err != nil {
		return fmt.Errorf("default group is not provisioned: %w", err)
	}
	m := &models.Membership{
		GroupID: group.ID,
		UserID:  userID,
		Role:    "member",
	}
	return s.groupRepo.CreateMembership(m)
}
