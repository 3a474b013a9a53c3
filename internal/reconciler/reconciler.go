// Package reconciler keeps a client-side in-memory mirror of one list's
// items consistent with the store while giving the UI immediate feedback.
//
// Every mutation follows one protocol: apply locally first, issue the remote
// write, keep the optimistic state on success, and on failure roll back to
// the pre-mutation snapshot and refetch a fresh canonical copy. Successful
// writes never trigger a redundant refetch. Change-feed notifications are
// treated as "something changed" signals and answered with a full refetch,
// not an incremental merge.
package reconciler

import (
	"fmt"
	"sync"
	"time"

	"northlink/internal/models"
	"northlink/pkg/realtime"
)

// ItemFetcher loads a list's items in canonical order (created_at ascending).
type ItemFetcher interface {
	FetchItems(listID string) ([]models.Item, error)
}

// Mutation rewrites the local item sequence ahead of remote confirmation.
type Mutation func(items []models.Item) []models.Item

// Reconciler mirrors one list's items. The instance owns its sequence
// exclusively; the mutex only guards against the change-feed goroutine.
type Reconciler struct {
	listID  string
	fetcher ItemFetcher

	mu      sync.Mutex
	items   []models.Item
	lastErr string
}

// New creates a reconciler for a list. Call Refresh to load the initial state.
func New(listID string, fetcher ItemFetcher) *Reconciler {
	return &Reconciler{
		listID:  listID,
		fetcher: fetcher,
	}
}

// Refresh replaces the local sequence with the canonical one.
func (r *Reconciler) Refresh() error {
	items, err := r.fetcher.FetchItems(r.listID)
	if err != nil {
		return fmt.Errorf("failed to refresh items for list %s: %w", r.listID, err)
	}
	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
	return nil
}

// Items returns a copy of the current local sequence.
func (r *Reconciler) Items() []models.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Item, len(r.items))
	copy(out, r.items)
	return out
}

// LastError returns the message surfaced by the most recent failed mutation,
// or "" when the last mutation committed.
func (r *Reconciler) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Apply runs the optimistic protocol for one mutation. The snapshot is taken
// fresh per call, so overlapping mutations each roll back against their own
// pre-mutation state.
func (r *Reconciler) Apply(mutate Mutation, write func() error) error {
	r.mu.Lock()
	snapshot := make([]models.Item, len(r.items))
	copy(snapshot, r.items)
	working := make([]models.Item, len(r.items))
	copy(working, r.items)
	r.items = mutate(working)
	r.lastErr = ""
	r.mu.Unlock()

	if err := write(); err != nil {
		r.mu.Lock()
		r.items = snapshot
		r.lastErr = err.Error()
		r.mu.Unlock()
		// Reconcile against a fresh canonical snapshot after failure. Best
		// effort: if the refetch also fails, the rollback state stands.
		if refreshErr := r.Refresh(); refreshErr != nil {
			return err
		}
		return err
	}
	return nil
}

// HandleChange is the change-feed hook: any item event for this list
// triggers a full refetch. Events for other lists or tables are ignored.
func (r *Reconciler) HandleChange(ev realtime.ChangeEvent) error {
	if !ev.Matches("items", r.listID) {
		return nil
	}
	return r.Refresh()
}

// Append is a Mutation adding an item at the end of the sequence, matching
// canonical creation order.
func Append(item models.Item) Mutation {
	return func(items []models.Item) []models.Item {
		return append(items, item)
	}
}

// Remove is a Mutation deleting the item with the given ID.
func Remove(itemID string) Mutation {
	return func(items []models.Item) []models.Item {
		out := items[:0]
		for _, it := range items {
			if it.ID != itemID {
				out = append(out, it)
			}
		}
		return out
	}
}

// SetPurchased is a Mutation flipping an item's purchase state, keeping the
// three purchase fields coupled.
func SetPurchased(itemID string, next bool, by string, at time.Time) Mutation {
	return Update(itemID, func(it *models.Item) {
		if next {
			it.Purchased = true
			it.PurchasedBy = &by
			it.PurchasedAt = &at
		} else {
			it.Purchased = false
			it.PurchasedBy = nil
			it.PurchasedAt = nil
		}
	})
}

// Update is a Mutation applying fn to the item with the given ID.
func Update(itemID string, fn func(it *models.Item)) Mutation {
	return func(items []models.Item) []models.Item {
		for i := range items {
			if items[i].ID == itemID {
				fn(&items[i])
			}
		}
		return items
	}
}
