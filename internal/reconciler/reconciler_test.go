package reconciler_test

import (
	"errors"
	"testing"
	"time"

	"northlink/internal/models"
	"northlink/internal/reconciler"
	"northlink/pkg/realtime"

	"github.com/stretchr/testify/assert"
)

// stubFetcher serves a fixed canonical sequence and counts fetches.
type stubFetcher struct {
	items   []models.Item
	err     error
	fetches int
}

func (f *stubFetcher) FetchItems(listID string) ([]models.Item, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Item, len(f.items))
	copy(out, f.items)
	return out, nil
}

func TestReconciler_Refresh(t *testing.T) {
	fetcher := &stubFetcher{items: []models.Item{
		{ID: "i1", Title: "Bike"},
		{ID: "i2", Title: "Socks"},
	}}
	r := reconciler.New("l1", fetcher)

	assert.Empty(t, r.Items())
	assert.NoError(t, r.Refresh())
	assert.Len(t, r.Items(), 2)

	fetcher.err = errors.New("connection reset")
	err := r.Refresh()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "l1")
	// Failed refresh keeps the previous local state
	assert.Len(t, r.Items(), 2)
}

func TestReconciler_ApplyCommit(t *testing.T) {
	fetcher := &stubFetcher{items: []models.Item{{ID: "i1", Title: "Bike"}}}
	r := reconciler.New("l1", fetcher)
	assert.NoError(t, r.Refresh())
	fetches := fetcher.fetches

	err := r.Apply(
		reconciler.Append(models.Item{ID: "i2", Title: "Socks"}),
		func() error { return nil },
	)
	assert.NoError(t, err)
	assert.Equal(t, "", r.LastError())

	items := r.Items()
	if assert.Len(t, items, 2) {
		assert.Equal(t, "i2", items[1].ID, "optimistic append lands at the end")
	}
	// A committed write never triggers a redundant refetch
	assert.Equal(t, fetches, fetcher.fetches)
}

func TestReconciler_ApplyRollback(t *testing.T) {
	fetcher := &stubFetcher{items: []models.Item{{ID: "i1", Title: "Bike"}}}
	r := reconciler.New("l1", fetcher)
	assert.NoError(t, r.Refresh())
	fetches := fetcher.fetches

	// Toggle: locally purchased at once, then the write fails
	err := r.Apply(
		reconciler.SetPurchased("i1", true, "bob", time.Now()),
		func() error {
			// The optimistic state is visible before the write resolves
			items := r.Items()
			assert.True(t, items[0].Purchased)
			return errors.New("permission denied")
		},
	)
	assert.Error(t, err)
	assert.Equal(t, "permission denied", r.LastError())

	// Rolled back to the pre-mutation state
	items := r.Items()
	if assert.Len(t, items, 1) {
		assert.False(t, items[0].Purchased)
		assert.Nil(t, items[0].PurchasedBy)
	}
	// Failure is answered with exactly one reconciling refetch
	assert.Equal(t, fetches+1, fetcher.fetches)
}

func TestReconciler_ApplyRollbackWhenRefetchFails(t *testing.T) {
	fetcher := &stubFetcher{items: []models.Item{{ID: "i1", Title: "Bike"}}}
	r := reconciler.New("l1", fetcher)
	assert.NoError(t, r.Refresh())

	fetcher.err = errors.New("connection reset")
	err := r.Apply(
		reconciler.Remove("i1"),
		func() error { return errors.New("write failed") },
	)
	// The write error wins; the failed refetch leaves the rollback standing
	assert.Error(t, err)
	assert.Equal(t, "write failed", r.LastError())
	items := r.Items()
	if assert.Len(t, items, 1) {
		assert.Equal(t, "i1", items[0].ID)
	}
}

func TestReconciler_SuccessClearsLastError(t *testing.T) {
	fetcher := &stubFetcher{items: []models.Item{{ID: "i1", Title: "Bike"}}}
	r := reconciler.New("l1", fetcher)
	assert.NoError(t, r.Refresh())

	_ = r.Apply(reconciler.Remove("i1"), func() error { return errors.New("boom") })
	assert.Equal(t, "boom", r.LastError())

	assert.NoError(t, r.Apply(
		reconciler.Update("i1", func(it *models.Item) { it.OnSale = true }),
		func() error { return nil },
	))
	assert.Equal(t, "", r.LastError())
}

func TestReconciler_HandleChange(t *testing.T) {
	fetcher := &stubFetcher{items: []models.Item{{ID: "i1", Title: "Bike"}}}
	r := reconciler.New("l1", fetcher)
	assert.NoError(t, r.Refresh())
	fetches := fetcher.fetches

	// Events for other lists or tables are ignored
	assert.NoError(t, r.HandleChange(realtime.ChangeEvent{Table: "items", Kind: realtime.EventUpdate, ListID: "other"}))
	assert.NoError(t, r.HandleChange(realtime.ChangeEvent{Table: "lists", Kind: realtime.EventUpdate, RowID: "l1"}))
	assert.Equal(t, fetches, fetcher.fetches)

	// A matching item event is answered with a full refetch
	fetcher.items = append(fetcher.items, models.Item{ID: "i2", Title: "Socks"})
	assert.NoError(t, r.HandleChange(realtime.ChangeEvent{Table: "items", Kind: realtime.EventInsert, RowID: "i2", ListID: "l1"}))
	assert.Equal(t, fetches+1, fetcher.fetches)
	assert.Len(t, r.Items(), 2)
}
