package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds the orders service with the required dependencies.
func NewService(repo Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*OrderView, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}

	order := &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: enums.OrderStatusPending,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		total := decimal.Zero
		for _, item := range input.Items {
			product, err := repo.FindProductByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", item.ProductID))
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
			}
			if !product.Verified {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("product %s is not available", product.ID))
			}

			if order.SellerID == uuid.Nil {
				order.SellerID = product.SellerID
			} else if order.SellerID != product.SellerID {
				return pkgerrors.New(pkgerrors.CodeValidation, "all items must belong to the same seller")
			}

			ok, err := repo.DecrementStock(ctx, product.ID, item.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("insufficient stock for product %s", product.ID))
			}

			// The discounted price at order time is the charged price.
			order.LineItems = append(order.LineItems, models.OrderLineItem{
				ID:          uuid.New(),
				OrderID:     order.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.DiscountedPrice,
				Quantity:    item.Quantity,
			})
			total = total.Add(product.DiscountedPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order.TotalAmount = total.Round(2)
		if err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := orderView(order)
	return &view, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	view := orderView(order)
	return &view, nil
}

// UpdateStatus validates the requested status against the known set and
// applies it. Any member-to-member move is allowed, including re-opening a
// cancelled order; only unknown status values are rejected.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*OrderView, error) {
	status, err := enums.ParseOrderStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("unknown order status %q", input.Status))
	}

	if _, err := s.loadOrder(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	return s.GetOrder(ctx, id)
}

func (s *service) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.DeleteOrder(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return nil
}

func (s *service) Invoice(ctx context.Context, id uuid.UUID) (*InvoiceView, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	invoice := &InvoiceView{
		OrderID:     order.ID,
		IssuedAt:    time.Now().UTC(),
		UserID:      order.UserID,
		SellerID:    order.SellerID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
	}
	for i := range order.LineItems {
		invoice.LineItems = append(invoice.LineItems, lineItemView(&order.LineItems[i]))
	}
	return invoice, nil
}

func (s *service) ListOrders(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error) {
	orders, err := s.repo.ListOrders(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &OrderList{Items: make([]OrderView, 0, len(orders))}
	for i := range orders {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: orders[limit-1].CreatedAt,
				ID:        orders[limit-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		list.Items = append(list.Items, orderView(&orders[i]))
	}
	return list, nil
}

func (s *service) loadOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}
