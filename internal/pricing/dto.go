package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TierInput is one admin-supplied price band on a config replacement.
type TierInput struct {
	Range           string          `json:"range" validate:"required"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// ReplaceConfigInput carries the full replacement discount configuration.
type ReplaceConfigInput struct {
	WarrantyDiscountPercent decimal.Decimal `json:"warranty_discount_percent"`
	Tiers                   []TierInput     `json:"tiers" validate:"dive"`
}

// TierView is the serialized form of one configured band.
type TierView struct {
	Range           string          `json:"range"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// ConfigView is the serialized discount configuration.
type ConfigView struct {
	ID                      uuid.UUID       `json:"id"`
	Version                 int             `json:"version"`
	WarrantyDiscountPercent decimal.Decimal `json:"warranty_discount_percent"`
	Tiers                   []TierView      `json:"tiers"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// QuoteInput asks the engine to price a hypothetical listing.
type QuoteInput struct {
	Price       decimal.Decimal `json:"price"`
	HasWarranty bool            `json:"has_warranty"`
}

// QuoteView is the engine's answer for a quote request.
type QuoteView struct {
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
}

// RecomputeResult summarizes a bulk recompute sweep. Failed counts products
// whose rewrite was skipped or errored; the sweep itself keeps going.
type RecomputeResult struct {
	Total         int `json:"total"`
	Updated       int `json:"updated"`
	Failed        int `json:"failed"`
	ConfigVersion int `json:"config_version"`
}
