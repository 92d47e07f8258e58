package cart

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/PaquitoSoft/small-shop/internal/catalog"
)

// Cart is the session-scoped collection of order items. Absence in the
// session store is equivalent to a fresh empty cart.
type Cart struct {
	OrderID    string      `json:"orderId"`
	OrderItems []OrderItem `json:"orderItems"`
}

// OrderItem is one cart line. The (ProductID, ColorID, SizeID) triple is the
// line's identity for merging; Detail is the product snapshot frozen when
// the line was first added and is never re-fetched.
type OrderItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	ColorID   string          `json:"colorId"`
	SizeID    string          `json:"sizeId"`
	Quantity  int             `json:"quantity"`
	Detail    catalog.Product `json:"detail"`
}

// Order is the immutable record checkout carves out of a cart.
type Order struct {
	ID                string          `json:"id"`
	OrderItems        []OrderItem     `json:"orderItems"`
	Address           json.RawMessage `json:"address"`
	PaymentMethodCode string          `json:"paymentMethodCode"`
}

func newCart() *Cart {
	return &Cart{
		OrderID:    uuid.NewString(),
		OrderItems: []OrderItem{},
	}
}

// matches reports whether the item is the line for the given identity triple.
func (i OrderItem) matches(productID, colorID, sizeID string) bool {
	return i.ProductID == productID && i.ColorID == colorID && i.SizeID == sizeID
}
