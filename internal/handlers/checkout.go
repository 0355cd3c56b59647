package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopbee/backend/internal/cart"
	"github.com/shopbee/backend/internal/checkout"
	"github.com/shopbee/backend/internal/orders"
	"github.com/shopbee/backend/internal/service/token"
)

// CheckoutHandler drives the two order surfaces: the server-side checkout
// flow (form + session cart) and the raw place-order endpoint for clients
// that assemble the payload themselves.
type CheckoutHandler struct {
	Carts     *cart.Registry
	Submitter *checkout.Submitter
	Orders    *orders.Service
}

// Checkout validates the form, assembles the order from the session cart and
// submits it. The cart is cleared only on success; any failure leaves the
// cart intact so the user can resubmit.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	var form checkout.Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store := h.Carts.Get(userID)
	order, err := h.Submitter.Submit(c.Request().Context(), userID, form, store)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrMissingAddress),
			errors.Is(err, checkout.ErrUnknownPayment),
			errors.Is(err, checkout.ErrEmptyCart):
			return errorResponse(c, http.StatusBadRequest, err)
		case errors.Is(err, checkout.ErrSubmissionInFlight):
			return errorResponse(c, http.StatusConflict, err)
		case errors.Is(err, orders.ErrProductNotFound),
			errors.Is(err, orders.ErrBadQuantity):
			return errorResponse(c, http.StatusBadRequest, err)
		default:
			return errorResponse(c, http.StatusInternalServerError, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "order placed successfully",
		"order":   order,
	})
}

// PlaceOrder accepts the fully assembled submission payload. The response is
// a bare success indicator plus message; no structured error codes.
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	var req checkout.OrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.Orders.PlaceOrder(c.Request().Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrEmptyOrder),
			errors.Is(err, orders.ErrBadQuantity),
			errors.Is(err, orders.ErrProductNotFound):
			return errorResponse(c, http.StatusBadRequest, err)
		default:
			return errorResponse(c, http.StatusInternalServerError, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"message":      "order placed successfully",
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})
}
