package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/solbazaar/solbazaar-backend/internal/identity"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	dbtypes "github.com/solbazaar/solbazaar-backend/pkg/db/types"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Pricer computes the cached discounted price for a listing.
type Pricer interface {
	PriceListing(ctx context.Context, price decimal.Decimal, hasWarranty bool) (decimal.Decimal, error)
}

type service struct {
	repo     Repository
	accounts identity.Repository
	pricer   Pricer
	tx       txRunner
	logg     *logger.Logger
}

// NewService builds the catalog service with the required dependencies.
func NewService(repo Repository, accounts identity.Repository, pricer Pricer, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if accounts == nil {
		return nil, fmt.Errorf("identity repository required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricer required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		accounts: accounts,
		pricer:   pricer,
		tx:       tx,
		logg:     logg,
	}, nil
}

func (s *service) CreateProduct(ctx context.Context, sellerID uuid.UUID, input CreateProductInput) (*ProductView, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	seller, err := s.accounts.FindSellerByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller")
	}

	product := &models.Product{
		ID:          uuid.New(),
		SellerID:    seller.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Warranty:    input.Warranty,
		Verified:    true,
		Images:      pq.StringArray(input.Images),
	}

	discounted, err := s.pricer.PriceListing(ctx, product.Price, product.HasWarranty())
	if err != nil {
		return nil, err
	}
	product.DiscountedPrice = discounted

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		accounts := s.accounts.WithTx(tx)

		if err := repo.CreateProduct(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
		}

		inventory := append(dbtypes.UUIDArray{}, seller.InventoryIDs...)
		inventory = append(inventory, product.ID)
		if err := accounts.UpdateSeller(ctx, seller.ID, map[string]any{"inventory_ids": inventory}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update seller inventory")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := productView(product)
	return &view, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	view := productView(product)
	return &view, nil
}

func (s *service) UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, input UpdateProductInput) (*ProductView, error) {
	product, err := s.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Stock != nil {
		updates["stock"] = *input.Stock
	}
	if input.Images != nil {
		updates["images"] = pq.StringArray(*input.Images)
	}

	price := product.Price
	warranty := product.Warranty
	repriced := false
	if input.Price != nil && !input.Price.Equal(product.Price) {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		price = *input.Price
		updates["price"] = price
		repriced = true
	}
	if input.Warranty != nil {
		warranty = input.Warranty
		updates["warranty"] = *input.Warranty
		repriced = true
	}

	if repriced {
		hasWarranty := warranty != nil && *warranty != ""
		discounted, err := s.pricer.PriceListing(ctx, price, hasWarranty)
		if err != nil {
			return nil, err
		}
		updates["discounted_price"] = discounted
	}

	if len(updates) == 0 {
		view := productView(product)
		return &view, nil
	}

	if err := s.repo.UpdateProduct(ctx, product.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return s.GetProduct(ctx, product.ID)
}

func (s *service) DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error {
	product, err := s.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return err
	}

	seller, err := s.accounts.FindSellerByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		accounts := s.accounts.WithTx(tx)

		if _, err := repo.DeleteProduct(ctx, product.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
		}
		if err := accounts.UpdateSeller(ctx, seller.ID, map[string]any{"inventory_ids": seller.InventoryIDs.Without(product.ID)}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update seller inventory")
		}
		return nil
	})
}

func (s *service) ListPublic(ctx context.Context, params pagination.Params, search string) (*ProductList, error) {
	return s.list(ctx, params, ListFilters{Search: search, VerifiedOnly: true})
}

// ListAll skips the verified gate so admins see unreviewed listings too.
func (s *service) ListAll(ctx context.Context, params pagination.Params, search string) (*ProductList, error) {
	return s.list(ctx, params, ListFilters{Search: search})
}

func (s *service) ListSellerProducts(ctx context.Context, sellerID uuid.UUID, params pagination.Params) (*ProductList, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}
	return s.list(ctx, params, ListFilters{SellerID: sellerID})
}

func (s *service) SetProductVerified(ctx context.Context, productID uuid.UUID, verified bool) (*ProductView, error) {
	if _, err := s.repo.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.UpdateProduct(ctx, productID, map[string]any{"verified": verified}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product verification")
	}
	return s.GetProduct(ctx, productID)
}

func (s *service) list(ctx context.Context, params pagination.Params, filters ListFilters) (*ProductList, error) {
	products, err := s.repo.ListProducts(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &ProductList{Items: make([]ProductView, 0, len(products))}
	for i := range products {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: products[limit-1].CreatedAt,
				ID:        products[limit-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		list.Items = append(list.Items, productView(&products[i]))
	}
	return list, nil
}

func (s *service) ownedProduct(ctx context.Context, sellerID, productID uuid.UUID) (*models.Product, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}

	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product does not belong to seller")
	}
	return product, nil
}
