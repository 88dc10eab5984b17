package domain

import "time"

// Product categories form a fixed enumeration; anything else is rejected
// at product creation time.
const (
	CategorySmartphones = "smartphones"
	CategoryAudio       = "audio"
	CategoryWearables   = "wearables"
	CategoryTablets     = "tablets"
	CategoryAccessories = "accessories"
)

var categories = []string{
	CategorySmartphones,
	CategoryAudio,
	CategoryWearables,
	CategoryTablets,
	CategoryAccessories,
}

// Categories returns the fixed category list in display order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// ValidCategory reports whether name is one of the known categories.
func ValidCategory(name string) bool {
	for _, c := range categories {
		if c == name {
			return true
		}
	}
	return false
}

// ProductSpecs holds the free-text hardware specs shown on detail pages.
type ProductSpecs struct {
	Storage string `json:"storage,omitempty"`
	RAM     string `json:"ram,omitempty"`
	Camera  string `json:"camera,omitempty"`
	Battery string `json:"battery,omitempty"`
}

// Product is a catalog entry. Prices are integer cents. OriginalPriceCents
// is set only for discounted products and must be >= PriceCents.
type Product struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Brand              string        `json:"brand"`
	Category           string        `json:"category"`
	PriceCents         int64         `json:"priceCents"`
	OriginalPriceCents *int64        `json:"originalPriceCents,omitempty"`
	Image              string        `json:"image"`
	Description        string        `json:"description,omitempty"`
	Specs              *ProductSpecs `json:"specs,omitempty"`
	Badges             []string      `json:"badges,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
}

// Discounted reports whether the product carries a meaningful discount.
func (p Product) Discounted() bool {
	return p.OriginalPriceCents != nil && *p.OriginalPriceCents > p.PriceCents
}
