package web

import (
	"sort"
	"strings"
	"time"

	"shramba/internal/model"
)

// Sort keys for the inventory page.
const (
	SortUpdated  = "updated"
	SortName     = "name"
	SortQuantity = "quantity"
	SortExpiry   = "expiry"
)

// ExpiryWindowDays is how far ahead the expiring-soon warning looks.
const ExpiryWindowDays = 7

// ListOptions are the view-level projections over the store's listing:
// filtering and sorting happen here, not in the store.
type ListOptions struct {
	Category  string
	ShowEmpty bool
	SortBy    string
}

// ApplyListOptions filters and sorts a listing for display. The input order
// (most recently updated first) is preserved unless a sort key overrides it.
func ApplyListOptions(items []model.Item, opts ListOptions) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		if !opts.ShowEmpty && item.Quantity == 0 {
			continue
		}
		if opts.Category != "" && item.Category != opts.Category {
			continue
		}
		out = append(out, item)
	}

	switch opts.SortBy {
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].ProductName) < strings.ToLower(out[j].ProductName)
		})
	case SortQuantity:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Quantity < out[j].Quantity
		})
	case SortExpiry:
		// Soonest expiry first; items without one go last.
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].ExpiryDate, out[j].ExpiryDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	}

	return out
}

// Categories returns the distinct non-empty categories, sorted, for the
// filter dropdown.
func Categories(items []model.Item) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		out = append(out, item.Category)
	}
	sort.Strings(out)
	return out
}

// ExpiryAlert pairs an item with its (possibly negative) days to expiry.
type ExpiryAlert struct {
	Item model.Item
	Days int
}

// ExpiryAlerts splits items into expired and expiring-soon groups.
// Items without an expiry date are ignored.
func ExpiryAlerts(items []model.Item, now time.Time) (expired, expiring []ExpiryAlert) {
	for _, item := range items {
		days, ok := item.DaysToExpiry(now)
		if !ok {
			continue
		}
		switch {
		case days < 0:
			expired = append(expired, ExpiryAlert{Item: item, Days: days})
		case days <= ExpiryWindowDays:
			expiring = append(expiring, ExpiryAlert{Item: item, Days: days})
		}
	}
	return expired, expiring
}
