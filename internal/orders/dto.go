package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
)

// OrderItemInput is one requested product line.
type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderInput carries a new order. All items must belong to one seller.
type PlaceOrderInput struct {
	Items []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateStatusInput carries the requested order status transition.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// LineItemView is one serialized purchased line.
type LineItemView struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderView is the serialized order.
type OrderView struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	SellerID    uuid.UUID         `json:"seller_id"`
	Status      enums.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	LineItems   []LineItemView    `json:"line_items"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// OrderList is one page of orders.
type OrderList struct {
	Items      []OrderView `json:"items"`
	NextCursor *string     `json:"next_cursor,omitempty"`
}

// InvoiceView is the printable summary for a completed or pending order.
type InvoiceView struct {
	OrderID     uuid.UUID         `json:"order_id"`
	IssuedAt    time.Time         `json:"issued_at"`
	UserID      uuid.UUID         `json:"user_id"`
	SellerID    uuid.UUID         `json:"seller_id"`
	Status      enums.OrderStatus `json:"status"`
	LineItems   []LineItemView    `json:"line_items"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
}

// ListFilters narrows order listings.
type ListFilters struct {
	UserID   uuid.UUID
	SellerID uuid.UUID
	Status   *enums.OrderStatus
}

func lineItemView(item *models.OrderLineItem) LineItemView {
	return LineItemView{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		UnitPrice:   item.UnitPrice,
		Quantity:    item.Quantity,
		LineTotal:   item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}

func orderView(order *models.Order) OrderView {
	view := OrderView{
		ID:          order.ID,
		UserID:      order.UserID,
		SellerID:    order.SellerID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	for i := range order.LineItems {
		view.LineItems = append(view.LineItems, lineItemView(&order.LineItems[i]))
	}
	return view
}
