package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/shopbee/backend/internal/models"
	"github.com/shopbee/backend/internal/transport"
)

func (h *AdminHandler) ListProducts(c echo.Context) error {
	var products []models.Product
	if err := h.DB.Order("id ASC").Find(&products).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, products)
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var form transport.ProductForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if form.ProductName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product_name is required")
	}
	if form.Price < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}

	categoryID, err := h.resolveCategory(form.CategoryName)
	if err != nil {
		return err
	}

	product := models.Product{
		ProductName:        form.ProductName,
		ProductDescription: form.ProductDescription,
		Price:              form.Price,
		Quantity:           form.Quantity,
		Images:             form.Images,
		CategoryID:         categoryID,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, "product_events", map[string]any{
		"type":         "product_created",
		"id":           product.ID,
		"product_name": product.ProductName,
	})

	return c.JSON(http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var form transport.ProductForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if form.Price < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	if form.CategoryName != "" {
		categoryID, err := h.resolveCategory(form.CategoryName)
		if err != nil {
			return err
		}
		product.CategoryID = categoryID
	}

	// zero-valued fields were absent from the payload; leave them alone
	if form.ProductName != "" {
		product.ProductName = form.ProductName
	}
	if form.ProductDescription != "" {
		product.ProductDescription = form.ProductDescription
	}
	if form.Price > 0 {
		product.Price = form.Price
	}
	if form.Quantity > 0 {
		product.Quantity = form.Quantity
	}
	if form.Images != "" {
		product.Images = form.Images
	}

	if err := h.DB.Save(&product).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, "product_events", map[string]any{
		"type":         "product_updated",
		"id":           product.ID,
		"product_name": product.ProductName,
	})

	return c.JSON(http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.DB.Delete(&models.Product{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, "product_events", map[string]any{
		"type": "product_deleted",
		"id":   id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) resolveCategory(name string) (uint, error) {
	if name == "" {
		return 0, nil
	}
	var category models.Category
	if err := h.DB.Where("category_name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, echo.NewHTTPError(http.StatusBadRequest, "unknown category")
		}
		return 0, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return category.ID, nil
}
