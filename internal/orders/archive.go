package orders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PaquitoSoft/small-shop/internal/cart"
	"github.com/PaquitoSoft/small-shop/internal/session"
	pkgerrors "github.com/PaquitoSoft/small-shop/pkg/errors"
)

// ordersSlot is the session store key the order map lives under.
const ordersSlot = "shop-orders"

// Archive keeps the orders finalized by checkout, scoped to one session.
// Orders are keyed by order id and never mutated after recording.
type Archive interface {
	Record(ctx context.Context, sessionID string, order cart.Order) error
	Get(ctx context.Context, sessionID, orderID string) (*cart.Order, error)
}

type archive struct {
	sessions session.Store
}

// NewArchive builds the session-backed order archive.
func NewArchive(sessions session.Store) (Archive, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	return &archive{sessions: sessions}, nil
}

// Record inserts or overwrites the order under its id. The archive has no
// size bound; it lives and dies with the session.
func (a *archive) Record(ctx context.Context, sessionID string, order cart.Order) error {
	byID, err := a.load(ctx, sessionID)
	if err != nil {
		return err
	}
	byID[order.ID] = order

	raw, err := json.Marshal(byID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding order archive")
	}
	if err := a.sessions.Set(ctx, sessionID, ordersSlot, raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving order archive")
	}
	return nil
}

func (a *archive) Get(ctx context.Context, sessionID, orderID string) (*cart.Order, error) {
	byID, err := a.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	order, ok := byID[orderID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Order (%s) not found", orderID))
	}
	return &order, nil
}

func (a *archive) load(ctx context.Context, sessionID string) (map[string]cart.Order, error) {
	raw, ok, err := a.sessions.Get(ctx, sessionID, ordersSlot)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order archive")
	}
	if !ok {
		return map[string]cart.Order{}, nil
	}
	byID := map[string]cart.Order{}
	if err := json.Unmarshal(raw, &byID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding order archive")
	}
	return byID, nil
}
