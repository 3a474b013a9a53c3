package services

import (
	"math"
	"sort"
	"time"

	"northlink/internal/models"
)

// Progress summarizes how much of a list has been bought.
type Progress struct {
	Total     int `json:"total"`
	Purchased int `json:"purchased"`
}

// SortMode selects the display order for a list's items.
type SortMode string

const (
	SortDefault   SortMode = "default"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
)

// ListProgress counts a list's items and how many are purchased.
func ListProgress(items []models.Item) Progress {
	p := Progress{Total: len(items)}
	for _, it := range items {
		if it.Purchased {
			p.Purchased++
		}
	}
	return p
}

// PercentPurchased converts a Progress into a 0-100 percentage. The
// denominator is floored at 1 so an empty list reports 0, not a division
// error.
func PercentPurchased(p Progress) int {
	total := p.Total
	if total < 1 {
		total = 1
	}
	return int(math.Round(100 * float64(p.Purchased) / float64(total)))
}

// FilterItems applies the on-sale / most-wanted display filters. With both
// flags set the filters combine with OR: an item matching either survives.
func FilterItems(items []models.Item, onSaleOnly, mostWantedOnly bool) []models.Item {
	if !onSaleOnly && !mostWantedOnly {
		return items
	}
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		switch {
		case onSaleOnly && mostWantedOnly:
			if it.OnSale || it.MostWanted {
				out = append(out, it)
			}
		case onSaleOnly:
			if it.OnSale {
				out = append(out, it)
			}
		default:
			if it.MostWanted {
				out = append(out, it)
			}
		}
	}
	return out
}

// SortItems returns a copy of items in the requested display order. Default
// preserves the canonical creation order. Price sorts put unpriced items
// last in both directions.
func SortItems(items []models.Item, mode SortMode) []models.Item {
	out := make([]models.Item, len(items))
	copy(out, items)
	if mode != SortPriceAsc && mode != SortPriceDesc {
		return out
	}

	price := func(it models.Item) int64 {
		if it.PriceCents == nil {
			if mode == SortPriceAsc {
				return math.MaxInt64
			}
			return math.MinInt64
		}
		return *it.PriceCents
	}
	sort.SliceStable(out, func(i, j int) bool {
		if mode == SortPriceAsc {
			return price(out[i]) < price(out[j])
		}
		return price(out[i]) > price(out[j])
	})
	return out
}

// NewPurchaseCount counts items purchased since the owner's last visit.
// Returns 0 when the list has never been viewed.
func NewPurchaseCount(items []models.Item, lastViewedAt *time.Time) int {
	if lastViewedAt == nil {
		return 0
	}
	count := 0
	for _, it := range items {
		if it.Purchased && it.PurchasedAt != nil && it.PurchasedAt.After(*lastViewedAt) {
			count++
		}
	}
	return count
}
