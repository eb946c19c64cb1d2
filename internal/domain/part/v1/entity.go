package partv1

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Category is the kind of hardware a part belongs to.
type Category string

const (
	CategoryGPU       Category = "gpu"
	CategoryCPU       Category = "cpu"
	CategorySSD       Category = "ssd"
	CategoryMainboard Category = "mainboard"
)

// ValidCategory reports whether c is a known category.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryGPU, CategoryCPU, CategorySSD, CategoryMainboard:
		return true
	}
	return false
}

// Part is a catalog entry for a hardware component.
type Part struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	Specs     string    `json:"specs"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPart creates a catalog entry.
func NewPart(name string, category Category, brand, model, specs string) *Part {
	now := time.Now().UTC()
	return &Part{
		ID:        ulid.Make().String(),
		Name:      name,
		Category:  category,
		Brand:     brand,
		Model:     model,
		Specs:     specs,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
