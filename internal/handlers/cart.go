package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/shopbee/backend/internal/cart"
	"github.com/shopbee/backend/internal/events"
	"github.com/shopbee/backend/internal/models"
	"github.com/shopbee/backend/internal/pricing"
	"github.com/shopbee/backend/internal/service/token"
	"github.com/shopbee/backend/internal/transport"
)

// CartHandler exposes the per-session in-memory cart. The header preview, the
// cart page and checkout all read the same store; nothing here touches the
// database except the price snapshot taken on add.
type CartHandler struct {
	DB       *gorm.DB
	Carts    *cart.Registry
	Producer events.Publisher
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	lines := h.Carts.Get(userID).Lines()
	return c.JSON(http.StatusOK, echo.Map{
		"items": lines,
		"count": len(lines),
		"total": pricing.CartTotal(lines),
	})
}

// AddToCart snapshots the product's current name and price into a new cart
// line. Re-adding a product appends a second line rather than merging.
func (h *CartHandler) AddToCart(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if req.Quantity > product.Quantity {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity exceeds available stock")
	}

	line := cart.Line{
		ProductID:        product.ID,
		ProductName:      product.ProductName,
		UnitPrice:        product.Price,
		QuantitySelected: req.Quantity,
		Images:           product.Images,
	}
	h.Carts.Get(userID).Add(line)

	h.publish(c, map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": product.ID,
		"quantity":  req.Quantity,
	})

	return c.JSON(http.StatusOK, line)
}

// RemoveFromCart drops every line for the given product id; removing an
// absent product is a no-op and still returns the remaining lines.
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	productID, err := pathID(c)
	if err != nil {
		return err
	}

	store := h.Carts.Get(userID)
	store.Remove(productID)

	h.publish(c, map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": productID,
	})

	lines := store.Lines()
	return c.JSON(http.StatusOK, echo.Map{
		"items": lines,
		"count": len(lines),
		"total": pricing.CartTotal(lines),
	})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	h.Carts.Get(userID).Clear()

	h.publish(c, map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
