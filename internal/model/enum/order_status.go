package enum

// OrderStatus values stored on an order record.
const (
	OrderStatusSuccess = "success"
)
