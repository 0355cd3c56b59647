// Package checkout turns a filled checkout form plus the current cart into an
// order submission, and runs the single-shot submission attempt.
package checkout

import (
	"errors"

	"github.com/shopbee/backend/internal/cart"
	"github.com/shopbee/backend/internal/pricing"
)

// StatusProcessing is the fixed initial status of every submitted order.
const StatusProcessing = "processing"

var (
	ErrMissingAddress = errors.New("shipping address is required")
	ErrUnknownPayment = errors.New("unknown payment method")
)

// payment methods offered at checkout; the admin back-office accepts a wider
// set when editing historical orders.
var paymentMethods = map[string]struct{}{
	"visa":        {},
	"mastercard":  {},
	"credit-card": {},
	"paypal":      {},
}

// Form carries the user-entered checkout fields. It lives for one checkout
// attempt; the coupon code is captured but not validated.
type Form struct {
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
	CouponCode      string `json:"coupon_code"`
}

func (f Form) Validate() error {
	if f.ShippingAddress == "" {
		return ErrMissingAddress
	}
	if _, ok := paymentMethods[f.PaymentMethod]; !ok {
		return ErrUnknownPayment
	}
	return nil
}

type OrderItem struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

// OrderRequest is the wire shape accepted by POST /orders/place-order.
type OrderRequest struct {
	Status          string      `json:"status"`
	ShippingAddress string      `json:"shipping_address"`
	CouponCode      string      `json:"coupon_code"`
	ShippingFee     float64     `json:"shipping_fee"`
	PaymentMethod   string      `json:"payment_method"`
	OrderItems      []OrderItem `json:"order_items"`
}

// BuildOrder assembles the submission payload: order-level fields from the
// form, one {product_id, quantity} pair per cart line in cart order, and the
// shipping fee derived from the current subtotal.
func BuildOrder(f Form, lines []cart.Line) OrderRequest {
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItem{
			ProductID: l.ProductID,
			Quantity:  l.QuantitySelected,
		})
	}

	return OrderRequest{
		Status:          StatusProcessing,
		ShippingAddress: f.ShippingAddress,
		CouponCode:      f.CouponCode,
		ShippingFee:     pricing.ShippingFee(pricing.Subtotal(lines)),
		PaymentMethod:   f.PaymentMethod,
		OrderItems:      items,
	}
}
