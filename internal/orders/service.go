package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopbee/backend/internal/checkout"
	"github.com/shopbee/backend/internal/events"
	"github.com/shopbee/backend/internal/logging"
	"github.com/shopbee/backend/internal/models"
	"github.com/shopbee/backend/internal/pricing"
)

var (
	ErrEmptyOrder      = errors.New("order has no items")
	ErrBadQuantity     = errors.New("item quantity must be at least 1")
	ErrProductNotFound = errors.New("product not found")
)

// Service persists assembled orders. Placement is all-or-nothing: either the
// order row and every item row are created, or nothing is.
type Service struct {
	DB       *gorm.DB
	Producer events.Publisher
}

// PlaceOrder prices each submitted item from the catalog at placement time
// (the payload carries product ids and quantities only), creates the Order and
// its OrderItems in one transaction, and publishes order_created. The
// submitted shipping fee is recorded as-is; the grand total is subtotal plus
// fee.
func (s *Service) PlaceOrder(ctx context.Context, userID uint, req checkout.OrderRequest) (*models.Order, error) {
	if len(req.OrderItems) == 0 {
		return nil, ErrEmptyOrder
	}

	status := req.Status
	if status == "" {
		status = checkout.StatusProcessing
	}

	var order models.Order
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subtotal float64
		for _, it := range req.OrderItems {
			if it.Quantity < 1 {
				return ErrBadQuantity
			}
			var p models.Product
			if err := tx.First(&p, it.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return fmt.Errorf("load product %d: %w", it.ProductID, err)
			}
			subtotal += pricing.Round2(p.Price * float64(it.Quantity))
		}
		subtotal = pricing.Round2(subtotal)

		order = models.Order{
			OrderNumber:     uuid.NewString(),
			UserID:          userID,
			Status:          status,
			ShippingAddress: req.ShippingAddress,
			CouponCode:      req.CouponCode,
			PaymentMethod:   req.PaymentMethod,
			Subtotal:        subtotal,
			ShippingFee:     req.ShippingFee,
			Total:           pricing.Round2(subtotal + req.ShippingFee),
			OrderDate:       time.Now().Unix(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, it := range req.OrderItems {
			oi := models.OrderItem{
				OrderID:   order.ID,
				UserID:    userID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.publish(ctx, map[string]any{
		"type":         "order_created",
		"userID":       userID,
		"orderID":      order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total,
	})

	return &order, nil
}

// Items returns the item rows of an order in creation order.
func (s *Service) Items(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := s.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) publish(ctx context.Context, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "order_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}
