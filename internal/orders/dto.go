package orders

// CreateOrderInput is the request payload for placing an order.
type CreateOrderInput struct {
	UserID int64             `json:"user_id" validate:"required,gt=0"`
	Items  []CreateOrderItem `json:"items" validate:"required,min=1,dive"`
}

// CreateOrderItem is a requested product line.
type CreateOrderItem struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}
