package orders

import "time"

// Order statuses. New orders always start PENDING.
const (
	StatusPending   = "PENDING"
	StatusShipped   = "SHIPPED"
	StatusDelivered = "DELIVERED"
	StatusCancelled = "CANCELLED"
)

// Order is a placed purchase with its line items. Unit prices are
// snapshotted at purchase time so later catalog changes never alter a
// past order.
type Order struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"user_id"`
	OrderDate    time.Time   `json:"order_date"`
	Status       string      `json:"status"`
	TotalAmount  float64     `json:"total_amount"`
	ShippingCost float64     `json:"shipping_cost"`
	Items        []OrderItem `json:"items"`
}

// OrderItem is a single product line within an order.
type OrderItem struct {
	ID              int64   `json:"id"`
	ProductID       int64   `json:"product_id"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
}
