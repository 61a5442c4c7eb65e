package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
)

// CreateProductInput carries a new listing from a seller.
type CreateProductInput struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description *string         `json:"description" validate:"omitempty,max=2000"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Warranty    *string         `json:"warranty" validate:"omitempty,max=200"`
	Images      []string        `json:"images" validate:"omitempty,dive,url"`
}

// UpdateProductInput carries the seller-editable listing fields.
type UpdateProductInput struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	Warranty    *string          `json:"warranty" validate:"omitempty,max=200"`
	Images      *[]string        `json:"images" validate:"omitempty,dive,url"`
}

// ProductView is the serialized listing.
type ProductView struct {
	ID              uuid.UUID       `json:"id"`
	SellerID        uuid.UUID       `json:"seller_id"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	Stock           int             `json:"stock"`
	Warranty        *string         `json:"warranty,omitempty"`
	Verified        bool            `json:"verified"`
	Images          []string        `json:"images"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ListFilters narrows product listings.
type ListFilters struct {
	Search       string
	SellerID     uuid.UUID
	VerifiedOnly bool
}

// ProductList is one page of listings.
type ProductList struct {
	Items      []ProductView `json:"items"`
	NextCursor *string       `json:"next_cursor,omitempty"`
}

func productView(p *models.Product) ProductView {
	return ProductView{
		ID:              p.ID,
		SellerID:        p.SellerID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice,
		Stock:           p.Stock,
		Warranty:        p.Warranty,
		Verified:        p.Verified,
		Images:          p.Images,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
