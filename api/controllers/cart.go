package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PaquitoSoft/small-shop/api/middleware"
	"github.com/PaquitoSoft/small-shop/api/responses"
	"github.com/PaquitoSoft/small-shop/api/validators"
	"github.com/PaquitoSoft/small-shop/internal/cart"
	"github.com/PaquitoSoft/small-shop/internal/orders"
	pkgerrors "github.com/PaquitoSoft/small-shop/pkg/errors"
	"github.com/PaquitoSoft/small-shop/pkg/logger"
)

type addProductPayload struct {
	ProductID string `json:"productId" validate:"required"`
	ColorID   string `json:"colorId" validate:"required"`
	SizeID    string `json:"sizeId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type updateOrderItemPayload struct {
	ID       string `json:"id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type checkoutPayload struct {
	Address           json.RawMessage `json:"orderAddress"`
	PaymentMethodCode string          `json:"paymentMethodCode"`
}

// CartFetch returns the session's cart, creating an empty one on first
// contact.
func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session not resolved"))
			return
		}

		shopCart, err := svc.GetCart(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, shopCart)
	}
}

// CartAddProduct adds a product variant to the cart, merging with an
// existing line for the same variant.
func CartAddProduct(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session not resolved"))
			return
		}

		var payload addProductPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		shopCart, err := svc.AddItem(ctx, sessionID, cart.AddItemInput{
			ProductID: payload.ProductID,
			ColorID:   payload.ColorID,
			SizeID:    payload.SizeID,
			Quantity:  payload.Quantity,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, shopCart)
	}
}

// CartUpdateOrderItem sets the quantity of one cart line.
func CartUpdateOrderItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session not resolved"))
			return
		}

		var payload updateOrderItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		shopCart, err := svc.UpdateItem(ctx, sessionID, payload.ID, payload.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, shopCart)
	}
}

// CartRemoveOrderItem deletes one cart line.
func CartRemoveOrderItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session not resolved"))
			return
		}

		orderItemID := chi.URLParam(r, "orderItemId")
		shopCart, err := svc.RemoveItem(ctx, sessionID, orderItemID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, shopCart)
	}
}

// CartCheckout finalizes the cart into an archived order and resets the
// session's cart.
func CartCheckout(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session not resolved"))
			return
		}

		var payload checkoutPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		orderID, err := svc.Checkout(ctx, sessionID, cart.CheckoutInput{
			Address:           payload.Address,
			PaymentMethodCode: payload.PaymentMethodCode,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"orderId": orderID})
	}
}

// OrderDetail returns an archived order by id, scoped to the session.
func OrderDetail(archive orders.Archive, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session not resolved"))
			return
		}

		orderID := chi.URLParam(r, "orderId")
		order, err := archive.Get(ctx, sessionID, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
