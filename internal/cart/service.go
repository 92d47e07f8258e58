package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PaquitoSoft/small-shop/internal/catalog"
	"github.com/PaquitoSoft/small-shop/internal/session"
	pkgerrors "github.com/PaquitoSoft/small-shop/pkg/errors"
)

// cartSlot is the session store key the serialized cart lives under.
const cartSlot = "shop-cart"

const itemNotFoundMessage = "Order Item not found in shop cart"

type productFinder interface {
	FindProductByID(ctx context.Context, id string) (*catalog.Product, error)
}

type orderRecorder interface {
	Record(ctx context.Context, sessionID string, order Order) error
}

// AddItemInput identifies the product variant to add and how many of it.
type AddItemInput struct {
	ProductID string
	ColorID   string
	SizeID    string
	Quantity  int
}

// CheckoutInput carries the shopper-supplied order data, opaque to the core.
type CheckoutInput struct {
	Address           json.RawMessage
	PaymentMethodCode string
}

// Service is the cart state machine. Every operation loads the session's
// cart, applies one transition and writes the whole value back; failed
// validation writes nothing.
type Service interface {
	GetCart(ctx context.Context, sessionID string) (*Cart, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*Cart, error)
	UpdateItem(ctx context.Context, sessionID, itemID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*Cart, error)
	Checkout(ctx context.Context, sessionID string, input CheckoutInput) (string, error)
}

type service struct {
	sessions      session.Store
	products      productFinder
	archive       orderRecorder
	checkoutDelay time.Duration
}

// NewService builds the cart service backed by the provided stack.
func NewService(sessions session.Store, products productFinder, archive orderRecorder, checkoutDelay time.Duration) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if archive == nil {
		return nil, fmt.Errorf("order archive required")
	}
	if checkoutDelay < 0 {
		return nil, fmt.Errorf("checkout delay must not be negative")
	}
	return &service{
		sessions:      sessions,
		products:      products,
		archive:       archive,
		checkoutDelay: checkoutDelay,
	}, nil
}

// GetCart returns the session's cart, persisting a fresh empty one when the
// session holds none yet.
func (s *service) GetCart(ctx context.Context, sessionID string) (*Cart, error) {
	shopCart, created, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if created {
		if err := s.saveCart(ctx, sessionID, shopCart); err != nil {
			return nil, err
		}
	}
	return shopCart, nil
}

// AddItem validates the product, then merges by identity triple: an existing
// line accumulates quantity and keeps its id and detail snapshot; a new line
// snapshots the product as it is right now.
func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*Cart, error) {
	product, err := s.products.FindProductByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	shopCart, _, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range shopCart.OrderItems {
		if shopCart.OrderItems[i].matches(input.ProductID, input.ColorID, input.SizeID) {
			shopCart.OrderItems[i].Quantity += input.Quantity
			merged = true
			break
		}
	}
	if !merged {
		shopCart.OrderItems = append(shopCart.OrderItems, OrderItem{
			ID:        uuid.NewString(),
			ProductID: input.ProductID,
			ColorID:   input.ColorID,
			SizeID:    input.SizeID,
			Quantity:  input.Quantity,
			Detail:    *product,
		})
	}

	if err := s.saveCart(ctx, sessionID, shopCart); err != nil {
		return nil, err
	}
	return shopCart, nil
}

// UpdateItem sets the line's quantity absolutely, unlike AddItem's
// accumulate rule.
func (s *service) UpdateItem(ctx context.Context, sessionID, itemID string, quantity int) (*Cart, error) {
	shopCart, _, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	index := indexOfItem(shopCart.OrderItems, itemID)
	if index == -1 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, itemNotFoundMessage)
	}
	shopCart.OrderItems[index].Quantity = quantity

	if err := s.saveCart(ctx, sessionID, shopCart); err != nil {
		return nil, err
	}
	return shopCart, nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID, itemID string) (*Cart, error) {
	shopCart, _, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	index := indexOfItem(shopCart.OrderItems, itemID)
	if index == -1 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, itemNotFoundMessage)
	}
	shopCart.OrderItems = append(shopCart.OrderItems[:index], shopCart.OrderItems[index+1:]...)

	if err := s.saveCart(ctx, sessionID, shopCart); err != nil {
		return nil, err
	}
	return shopCart, nil
}

// Checkout snapshots the cart, waits out the simulated processing delay,
// then archives the order and resets the session to a fresh empty cart.
// Nothing is written before the delay elapses; an abandoned request leaves
// the cart as it was.
func (s *service) Checkout(ctx context.Context, sessionID string, input CheckoutInput) (string, error) {
	shopCart, _, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return "", err
	}

	order := Order{
		ID:                shopCart.OrderID,
		OrderItems:        shopCart.OrderItems,
		Address:           input.Address,
		PaymentMethodCode: input.PaymentMethodCode,
	}

	if err := s.waitProcessing(ctx); err != nil {
		return "", err
	}

	if err := s.archive.Record(ctx, sessionID, order); err != nil {
		return "", err
	}
	if err := s.saveCart(ctx, sessionID, newCart()); err != nil {
		return "", err
	}
	return order.ID, nil
}

func (s *service) waitProcessing(ctx context.Context) error {
	if s.checkoutDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.checkoutDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return pkgerrors.Wrap(pkgerrors.CodeInternal, ctx.Err(), "checkout interrupted")
	case <-timer.C:
		return nil
	}
}

func (s *service) loadCart(ctx context.Context, sessionID string) (*Cart, bool, error) {
	raw, ok, err := s.sessions.Get(ctx, sessionID, cartSlot)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading shop cart")
	}
	if !ok {
		return newCart(), true, nil
	}
	var shopCart Cart
	if err := json.Unmarshal(raw, &shopCart); err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding shop cart")
	}
	if shopCart.OrderItems == nil {
		shopCart.OrderItems = []OrderItem{}
	}
	return &shopCart, false, nil
}

func (s *service) saveCart(ctx context.Context, sessionID string, shopCart *Cart) error {
	raw, err := json.Marshal(shopCart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding shop cart")
	}
	if err := s.sessions.Set(ctx, sessionID, cartSlot, raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving shop cart")
	}
	return nil
}

func indexOfItem(items []OrderItem, itemID string) int {
	for i := range items {
		if items[i].ID == itemID {
			return i
		}
	}
	return -1
}
