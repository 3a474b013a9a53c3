// Package access holds the visibility and authorization rules for lists and
// items. All rules are pure functions; a nil or absent input denies rather
// than erroring, so callers fall back to "not visible".
package access

import (
	"northlink/internal/models"
)

// CanEditList reports whether the user owns the list.
func CanEditList(userID string, list *models.List) bool {
	if userID == "" || list == nil {
		return false
	}
	return list.OwnerUserID == userID
}

// CanShareList reports whether the user may share the list: they must own it
// and belong to a group to share it with.
func CanShareList(userID string, list *models.List, membership *models.Membership) bool {
	return CanEditList(userID, list) && membership != nil
}

// CanSeeList reports whether the user may view the list: owners always,
// everyone else only while the list is in their accessible set.
func CanSeeList(userID string, list *models.List, accessibleIDs map[string]struct{}) bool {
	if CanEditList(userID, list) {
		return true
	}
	if userID == "" || list == nil || accessibleIDs == nil {
		return false
	}
	_, ok := accessibleIDs[list.ID]
	return ok
}

// CanAddItem reports whether the user may add items to the list.
func CanAddItem(userID string, list *models.List) bool {
	return CanEditList(userID, list)
}

// CanMutateItemMetadata reports whether the user may edit an item's title,
// price, link, notes, or the most_wanted/on_sale flags.
func CanMutateItemMetadata(userID string, list *models.List) bool {
	return CanEditList(userID, list)
}

// CanTogglePurchased reports whether the user may mark an item purchased.
// Anyone who can see the list may toggle, owner included.
func CanTogglePurchased(userID string, list *models.List, canSee bool) bool {
	if userID == "" || list == nil {
		return false
	}
	return canSee
}

// SharedWithMe filters the accessible-lists union down to the "shared with
// me" view: rows owned by the caller are excluded and a list shared to
// several of the caller's groups appears once. Input order is preserved.
func SharedWithMe(lists []models.AccessibleList, userID string) []models.AccessibleList {
	seen := make(map[string]struct{}, len(lists))
	out := make([]models.AccessibleList, 0, len(lists))
	for _, l := range lists {
		if l.OwnerUserID == userID {
			continue
		}
		if _, dup := seen[l.ID]; dup {
			continue
		}
		seen[l.ID] = struct{}{}
		out = append(out, l)
	}
	return out
}

// AccessibleIDs collapses the projection rows into a membership set for
// CanSeeList checks.
func AccessibleIDs(lists []models.AccessibleList) map[string]struct{} {
	ids := make(map[string]struct{}, len(lists))
	for _, l := range lists {
		ids[l.ID] = struct{}{}
	}
	return ids
}
