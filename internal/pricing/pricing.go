// Package pricing derives monetary aggregates from cart contents. Everything
// here is a pure fold over the lines passed in; totals are recomputed on every
// call rather than cached.
package pricing

import (
	"math"

	"github.com/shopbee/backend/internal/cart"
)

// ShippingRate is applied to the subtotal unconditionally. The storefront
// banner advertises free shipping over $50, but no threshold has ever been
// checked here; the mismatch is tracked on the product side.
const ShippingRate = 0.02

// Round2 rounds half-up to two decimal places. Amounts are never negative.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func LineTotal(l cart.Line) float64 {
	return Round2(l.UnitPrice * float64(l.QuantitySelected))
}

// Subtotal is the sum of line totals; zero for an empty cart.
func Subtotal(lines []cart.Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += LineTotal(l)
	}
	return Round2(sum)
}

func ShippingFee(subtotal float64) float64 {
	return Round2(subtotal * ShippingRate)
}

// CartTotal is what the cart page shows: the bare subtotal.
func CartTotal(lines []cart.Line) float64 {
	return Subtotal(lines)
}

// GrandTotal is the checkout amount due: subtotal plus shipping fee.
func GrandTotal(lines []cart.Line) float64 {
	sub := Subtotal(lines)
	return Round2(sub + ShippingFee(sub))
}
