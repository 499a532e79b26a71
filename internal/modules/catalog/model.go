package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Product is a bakery catalog entry. VariantLabel is free text entered by
// catalog managers and is the sole signal used for flavor classification
// in reports.
type Product struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	VariantLabel string    `json:"variant_label"`
	RegularPrice float64   `json:"regular_price"`
	SpecialPrice *float64  `json:"special_price,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
