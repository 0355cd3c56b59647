package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/shopbee/backend/internal/models"
	"github.com/shopbee/backend/internal/util"
)

// ProductHandler serves the storefront catalog reads.
type ProductHandler struct {
	DB *gorm.DB
}

// Dashboard backs the home page grid: a sliced product listing under "result".
func (h *ProductHandler) Dashboard(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.Product
	if err := h.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"result": items,
		"meta": echo.Map{
			"page":     page,
			"size":     limit,
			"total":    total,
			"has_next": int64(offset+limit) < total,
		},
	})
}

// DisplayProduct returns the fields the client needs to build a cart line:
// id, product_name, price, quantity (available stock), images and description.
func (h *ProductHandler) DisplayProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	return c.JSON(http.StatusOK, product)
}
