package checkout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopbee/backend/internal/cart"
)

func TestFormValidate(t *testing.T) {
	require.ErrorIs(t, Form{PaymentMethod: "visa"}.Validate(), ErrMissingAddress)
	require.ErrorIs(t, Form{ShippingAddress: "12 Main St"}.Validate(), ErrUnknownPayment)
	require.ErrorIs(t, Form{ShippingAddress: "12 Main St", PaymentMethod: "cash"}.Validate(), ErrUnknownPayment)
	require.NoError(t, Form{ShippingAddress: "12 Main St", PaymentMethod: "paypal"}.Validate())
}

func TestBuildOrder(t *testing.T) {
	lines := []cart.Line{
		{ProductID: 1, ProductName: "keyboard", UnitPrice: 10, QuantitySelected: 2},
		{ProductID: 2, ProductName: "mouse", UnitPrice: 5, QuantitySelected: 1},
	}
	form := Form{
		ShippingAddress: "12 Main St",
		PaymentMethod:   "visa",
		CouponCode:      "WELCOME",
	}

	req := BuildOrder(form, lines)

	require.Equal(t, "processing", req.Status)
	require.Equal(t, "12 Main St", req.ShippingAddress)
	require.Equal(t, "visa", req.PaymentMethod)
	require.Equal(t, "WELCOME", req.CouponCode)
	require.Equal(t, 0.5, req.ShippingFee)
	require.Equal(t, []OrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}, req.OrderItems)
}

func TestBuildOrderPreservesDuplicateLines(t *testing.T) {
	lines := []cart.Line{
		{ProductID: 7, UnitPrice: 3, QuantitySelected: 1},
		{ProductID: 7, UnitPrice: 3, QuantitySelected: 4},
	}

	req := BuildOrder(Form{}, lines)

	require.Equal(t, []OrderItem{
		{ProductID: 7, Quantity: 1},
		{ProductID: 7, Quantity: 4},
	}, req.OrderItems)
}
