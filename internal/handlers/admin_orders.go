package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/shopbee/backend/internal/checkout"
	"github.com/shopbee/backend/internal/models"
	"github.com/shopbee/backend/internal/pricing"
	"github.com/shopbee/backend/internal/transport"
)

// statuses the back-office may move an order to; "processing" is the fixed
// initial value set at placement.
var orderStatuses = map[string]struct{}{
	"processing": {},
	"shipped":    {},
	"cancelled":  {},
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	var orders []models.Order
	if err := h.DB.Order("id DESC").Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, orders)
}

// CreateOrder is the back-office manual entry path. Items are priced from the
// catalog the same way storefront placement does; the fee is taken as sent.
func (h *AdminHandler) CreateOrder(c echo.Context) error {
	var form transport.OrderForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(form.OrderItems) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "order_items is required")
	}

	status := form.Status
	if status == "" {
		status = checkout.StatusProcessing
	}
	if _, ok := orderStatuses[status]; !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	orderDate := time.Now().Unix()
	if form.OrderDate != "" {
		d, err := time.Parse("2006-01-02", form.OrderDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid order_date")
		}
		orderDate = d.Unix()
	}

	var order models.Order
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var subtotal float64
		for _, it := range form.OrderItems {
			if it.Quantity < 1 {
				return echo.NewHTTPError(http.StatusBadRequest, "item quantity must be at least 1")
			}
			var p models.Product
			if err := tx.First(&p, it.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusBadRequest, "unknown product")
				}
				return err
			}
			subtotal += pricing.Round2(p.Price * float64(it.Quantity))
		}
		subtotal = pricing.Round2(subtotal)

		order = models.Order{
			OrderNumber:     uuid.NewString(),
			Status:          status,
			ShippingAddress: form.ShippingAddress,
			CouponCode:      form.CouponCode,
			PaymentMethod:   form.PaymentMethod,
			Subtotal:        subtotal,
			ShippingFee:     form.ShippingFee,
			Total:           pricing.Round2(subtotal + form.ShippingFee),
			OrderDate:       orderDate,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, it := range form.OrderItems {
			oi := models.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		var he *echo.HTTPError
		if errors.As(txErr, &he) {
			return he
		}
		return echo.NewHTTPError(http.StatusInternalServerError, txErr.Error())
	}

	h.publish(c, "order_events", map[string]any{
		"type":         "order_created",
		"id":           order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total,
	})

	return c.JSON(http.StatusCreated, order)
}

func (h *AdminHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}

	var items []models.OrderItem
	if err := h.DB.Where("order_id = ?", order.ID).Order("id ASC").Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"order": order,
		"items": items,
	})
}

func (h *AdminHandler) UpdateOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var form transport.OrderForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}

	if form.Status != "" {
		if _, ok := orderStatuses[form.Status]; !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
		}
		order.Status = form.Status
	}
	if form.ShippingAddress != "" {
		order.ShippingAddress = form.ShippingAddress
	}
	if form.PaymentMethod != "" {
		order.PaymentMethod = form.PaymentMethod
	}
	if form.CouponCode != "" {
		order.CouponCode = form.CouponCode
	}
	if form.OrderDate != "" {
		d, err := time.Parse("2006-01-02", form.OrderDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid order_date")
		}
		order.OrderDate = d.Unix()
	}

	if err := h.DB.Save(&order).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, "order_events", map[string]any{
		"type":   "order_updated",
		"id":     order.ID,
		"status": order.Status,
	})

	return c.JSON(http.StatusOK, order)
}

func (h *AdminHandler) DeleteOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.DB.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Delete(&models.Order{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
