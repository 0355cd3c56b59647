package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/shopbee/backend/internal/events"
)

// AdminHandler backs the back-office CRUD screens. All routes behind it are
// gated by the admin middleware.
type AdminHandler struct {
	DB       *gorm.DB
	Producer events.Publisher
}

func (h *AdminHandler) publish(c echo.Context, topic string, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	key := fmt.Sprint(event["id"])
	if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
