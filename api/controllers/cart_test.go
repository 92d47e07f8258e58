package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/PaquitoSoft/small-shop/api/middleware"
	cartsvc "github.com/PaquitoSoft/small-shop/internal/cart"
	pkgerrors "github.com/PaquitoSoft/small-shop/pkg/errors"
)

type stubCartService struct {
	cart          *cartsvc.Cart
	orderID       string
	err           error
	gotSessionID  string
	gotAddInput   cartsvc.AddItemInput
	gotItemID     string
	gotQuantity   int
	gotCheckout   cartsvc.CheckoutInput
	calledMethods []string
}

func (s *stubCartService) GetCart(ctx context.Context, sessionID string) (*cartsvc.Cart, error) {
	s.gotSessionID = sessionID
	s.calledMethods = append(s.calledMethods, "GetCart")
	return s.cart, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, sessionID string, input cartsvc.AddItemInput) (*cartsvc.Cart, error) {
	s.gotSessionID = sessionID
	s.gotAddInput = input
	s.calledMethods = append(s.calledMethods, "AddItem")
	return s.cart, s.err
}

func (s *stubCartService) UpdateItem(ctx context.Context, sessionID, itemID string, quantity int) (*cartsvc.Cart, error) {
	s.gotSessionID = sessionID
	s.gotItemID = itemID
	s.gotQuantity = quantity
	s.calledMethods = append(s.calledMethods, "UpdateItem")
	return s.cart, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, sessionID, itemID string) (*cartsvc.Cart, error) {
	s.gotSessionID = sessionID
	s.gotItemID = itemID
	s.calledMethods = append(s.calledMethods, "RemoveItem")
	return s.cart, s.err
}

func (s *stubCartService) Checkout(ctx context.Context, sessionID string, input cartsvc.CheckoutInput) (string, error) {
	s.gotSessionID = sessionID
	s.gotCheckout = input
	s.calledMethods = append(s.calledMethods, "Checkout")
	return s.orderID, s.err
}

type stubArchive struct {
	order *cartsvc.Order
	err   error
}

func (s stubArchive) Record(ctx context.Context, sessionID string, order cartsvc.Order) error {
	return nil
}

func (s stubArchive) Get(ctx context.Context, sessionID, orderID string) (*cartsvc.Order, error) {
	return s.order, s.err
}

func withSession(req *http.Request, sessionID string) *http.Request {
	return req.WithContext(middleware.WithSessionID(req.Context(), sessionID))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCartFetchSuccess(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{cart: &cartsvc.Cart{OrderID: "order-1", OrderItems: []cartsvc.OrderItem{}}}
	handler := CartFetch(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/shop-cart", nil), "session-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotSessionID != "session-1" {
		t.Fatalf("expected session-1, got %q", svc.gotSessionID)
	}

	var body cartsvc.Cart
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.OrderID != "order-1" {
		t.Fatalf("unexpected order id: %q", body.OrderID)
	}
}

func TestCartFetchMissingSession(t *testing.T) {
	t.Parallel()

	handler := CartFetch(&stubCartService{}, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/shop-cart", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}

func TestCartAddProductForwardsPayload(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{cart: &cartsvc.Cart{OrderID: "order-1"}}
	handler := CartAddProduct(svc, nil)

	body := `{"productId":"0202017039","colorId":"0202017007","sizeId":"005","quantity":2}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/shop-cart/product", strings.NewReader(body)), "session-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	want := cartsvc.AddItemInput{ProductID: "0202017039", ColorID: "0202017007", SizeID: "005", Quantity: 2}
	if svc.gotAddInput != want {
		t.Fatalf("unexpected input: %+v", svc.gotAddInput)
	}
}

func TestCartAddProductRejectsInvalidPayload(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{}
	handler := CartAddProduct(svc, nil)

	body := `{"productId":"0202017039","colorId":"0202017007","sizeId":"005","quantity":0}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/shop-cart/product", strings.NewReader(body)), "session-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if len(svc.calledMethods) != 0 {
		t.Fatalf("service must not be called on invalid payload, got %v", svc.calledMethods)
	}
}

func TestCartAddProductUnknownProduct(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")}
	handler := CartAddProduct(svc, nil)

	body := `{"productId":"nope","colorId":"c","sizeId":"s","quantity":1}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/shop-cart/product", strings.NewReader(body)), "session-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}

	var errBody struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if errBody.Message != "Product not found" {
		t.Fatalf("unexpected message: %q", errBody.Message)
	}
}

func TestCartUpdateOrderItemForwardsPayload(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{cart: &cartsvc.Cart{OrderID: "order-1"}}
	handler := CartUpdateOrderItem(svc, nil)

	body := `{"id":"item-7","quantity":5}`
	req := withSession(httptest.NewRequest(http.MethodPut, "/shop-cart/order-item", strings.NewReader(body)), "session-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotItemID != "item-7" || svc.gotQuantity != 5 {
		t.Fatalf("unexpected forwarded values: %q %d", svc.gotItemID, svc.gotQuantity)
	}
}

func TestCartRemoveOrderItemReadsURLParam(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{cart: &cartsvc.Cart{OrderID: "order-1"}}
	handler := CartRemoveOrderItem(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/shop-cart/order-item/item-9", nil), "session-1")
	req = withURLParam(req, "orderItemId", "item-9")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotItemID != "item-9" {
		t.Fatalf("unexpected item id: %q", svc.gotItemID)
	}
}

func TestCartCheckoutReturnsOrderID(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{orderID: "order-42"}
	handler := CartCheckout(svc, nil)

	body := `{"orderAddress":{"city":"Madrid"},"paymentMethodCode":"visa"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/shop-cart/checkout", strings.NewReader(body)), "session-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["orderId"] != "order-42" {
		t.Fatalf("unexpected body: %v", payload)
	}
	if svc.gotCheckout.PaymentMethodCode != "visa" {
		t.Fatalf("payment method not forwarded: %+v", svc.gotCheckout)
	}
}

func TestOrderDetailNotFoundLiteral(t *testing.T) {
	t.Parallel()

	archive := stubArchive{err: pkgerrors.New(pkgerrors.CodeNotFound, "Order (a1b2c3) not found")}
	handler := OrderDetail(archive, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/shop-cart/order-detail/a1b2c3", nil), "session-1")
	req = withURLParam(req, "orderId", "a1b2c3")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}

	var errBody struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if errBody.Message != "Order (a1b2c3) not found" {
		t.Fatalf("unexpected message: %q", errBody.Message)
	}
}

func TestOrderDetailSuccess(t *testing.T) {
	t.Parallel()

	order := &cartsvc.Order{ID: "order-42", PaymentMethodCode: "visa"}
	handler := OrderDetail(stubArchive{order: order}, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/shop-cart/order-detail/order-42", nil), "session-1")
	req = withURLParam(req, "orderId", "order-42")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var body cartsvc.Order
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.ID != "order-42" {
		t.Fatalf("unexpected order: %+v", body)
	}
}
