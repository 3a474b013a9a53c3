package services_test

import (
	"testing"
	"time"

	"northlink/internal/models"
	"northlink/internal/services"

	"github.com/stretchr/testify/assert"
)

func cents(v int64) *int64 { return &v }

func TestListProgressAndPercent(t *testing.T) {
	items := []models.Item{
		{ID: "1", Purchased: true},
		{ID: "2", Purchased: false},
		{ID: "3", Purchased: true},
	}

	p := services.ListProgress(items)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 2, p.Purchased)
	assert.Equal(t, 67, services.PercentPurchased(p))

	// Empty list reports 0, not a division error
	empty := services.ListProgress(nil)
	assert.Equal(t, 0, services.PercentPurchased(empty))

	// Always within [0, 100]
	assert.Equal(t, 100, services.PercentPurchased(services.Progress{Total: 5, Purchased: 5}))
	assert.Equal(t, 0, services.PercentPurchased(services.Progress{Total: 5, Purchased: 0}))
}

func TestFilterItems(t *testing.T) {
	items := []models.Item{
		{ID: "sale", OnSale: true},
		{ID: "wanted", MostWanted: true},
		{ID: "both", OnSale: true, MostWanted: true},
		{ID: "plain"},
	}

	// Neither flag: pass through unchanged
	assert.Equal(t, items, services.FilterItems(items, false, false))

	onSale := services.FilterItems(items, true, false)
	assert.Len(t, onSale, 2)

	wanted := services.FilterItems(items, false, true)
	assert.Len(t, wanted, 2)

	// Both flags combine with OR: the union of the single-filter results
	both := services.FilterItems(items, true, true)
	assert.Len(t, both, 3)
	ids := make(map[string]bool)
	for _, it := range both {
		ids[it.ID] = true
	}
	assert.False(t, ids["plain"])
	for _, it := range append(onSale, wanted...) {
		assert.True(t, ids[it.ID], "combined filter must contain %s", it.ID)
	}
}

func TestSortItems(t *testing.T) {
	items := []models.Item{
		{ID: "mid", PriceCents: cents(2000)},
		{ID: "nil1"},
		{ID: "cheap", PriceCents: cents(500)},
		{ID: "dear", PriceCents: cents(9900)},
		{ID: "nil2"},
	}

	asc := services.SortItems(items, services.SortPriceAsc)
	assert.Equal(t, "cheap", asc[0].ID)
	assert.Equal(t, "mid", asc[1].ID)
	assert.Equal(t, "dear", asc[2].ID)
	// Unpriced items sort last in both directions
	assert.Nil(t, asc[3].PriceCents)
	assert.Nil(t, asc[4].PriceCents)

	desc := services.SortItems(items, services.SortPriceDesc)
	assert.Equal(t, "dear", desc[0].ID)
	assert.Equal(t, "mid", desc[1].ID)
	assert.Equal(t, "cheap", desc[2].ID)
	assert.Nil(t, desc[3].PriceCents)
	assert.Nil(t, desc[4].PriceCents)

	// Idempotent: sorting an already-sorted sequence changes nothing
	assert.Equal(t, asc, services.SortItems(asc, services.SortPriceAsc))
	assert.Equal(t, desc, services.SortItems(desc, services.SortPriceDesc))

	// Default preserves input order and returns a copy
	def := services.SortItems(items, services.SortDefault)
	assert.Equal(t, items, def)
	def[0].ID = "mutated"
	assert.Equal(t, "mid", items[0].ID)
}

func TestNewPurchaseCount(t *testing.T) {
	t0 := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(24 * time.Hour)  // after last view
	t2 := t0.Add(-24 * time.Hour) // before last view

	items := []models.Item{
		{ID: "new", Purchased: true, PurchasedAt: &t1},
		{ID: "old", Purchased: true, PurchasedAt: &t2},
		{ID: "open"},
	}

	assert.Equal(t, 1, services.NewPurchaseCount(items, &t0))

	// Never-viewed list reports 0
	assert.Equal(t, 0, services.NewPurchaseCount(items, nil))
}
