package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopbee/backend/internal/cart"
	"github.com/shopbee/backend/internal/transport"
)

type cartResponse struct {
	Items []cart.Line `json:"items"`
	Count int         `json:"count"`
	Total float64     `json:"total"`
}

func TestAddToCartSnapshotsProduct(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct("keyboard", 10, 5)

	rec, c := env.doJSONRequest(http.MethodPost, "/cart", transport.AddToCartRequest{
		ProductID: product.ID,
		Quantity:  2,
	})
	asUser(c, 1, "user")
	require.NoError(t, env.Cart.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	line := decodeJSON[cart.Line](t, rec)
	require.Equal(t, product.ID, line.ProductID)
	require.Equal(t, "keyboard", line.ProductName)
	require.Equal(t, float64(10), line.UnitPrice)
	require.Equal(t, uint(2), line.QuantitySelected)

	require.Len(t, env.Pub.byType("cart_item_added"), 1)
}

func TestAddToCartRejectsOverstock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct("mouse", 5, 3)

	_, c := env.doJSONRequest(http.MethodPost, "/cart", transport.AddToCartRequest{
		ProductID: product.ID,
		Quantity:  4,
	})
	asUser(c, 1, "user")
	requireHTTPError(t, env.Cart.AddToCart(c), http.StatusBadRequest)
	require.Equal(t, 0, env.Carts.Get(1).Len())
}

func TestAddToCartUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/cart", transport.AddToCartRequest{
		ProductID: 99,
		Quantity:  1,
	})
	asUser(c, 1, "user")
	requireHTTPError(t, env.Cart.AddToCart(c), http.StatusNotFound)
}

func TestAddToCartTwiceKeepsTwoLines(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct("keyboard", 10, 10)

	for _, qty := range []uint{2, 3} {
		rec, c := env.doJSONRequest(http.MethodPost, "/cart", transport.AddToCartRequest{
			ProductID: product.ID,
			Quantity:  qty,
		})
		asUser(c, 1, "user")
		require.NoError(t, env.Cart.AddToCart(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, c := env.doJSONRequest(http.MethodGet, "/cart", nil)
	asUser(c, 1, "user")
	require.NoError(t, env.Cart.GetCart(c))

	resp := decodeJSON[cartResponse](t, rec)
	require.Equal(t, 2, resp.Count)
	require.Equal(t, uint(2), resp.Items[0].QuantitySelected)
	require.Equal(t, uint(3), resp.Items[1].QuantitySelected)
	require.Equal(t, float64(50), resp.Total)
}

func TestRemoveFromCartDropsAllLinesForProduct(t *testing.T) {
	env := newTestEnv(t)
	store := env.Carts.Get(1)
	store.Add(cart.Line{ProductID: 1, UnitPrice: 10, QuantitySelected: 2})
	store.Add(cart.Line{ProductID: 2, UnitPrice: 5, QuantitySelected: 1})
	store.Add(cart.Line{ProductID: 1, UnitPrice: 10, QuantitySelected: 1})

	rec, c := env.doJSONRequest(http.MethodDelete, "/cart/1", nil)
	asUser(c, 1, "user")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Cart.RemoveFromCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[cartResponse](t, rec)
	require.Equal(t, 1, resp.Count)
	require.Equal(t, uint(2), resp.Items[0].ProductID)
	require.Equal(t, float64(5), resp.Total)
}

func TestRemoveAbsentProductLeavesCartUnchanged(t *testing.T) {
	env := newTestEnv(t)
	store := env.Carts.Get(1)
	store.Add(cart.Line{ProductID: 1, UnitPrice: 10, QuantitySelected: 2})

	rec, c := env.doJSONRequest(http.MethodDelete, "/cart/99", nil)
	asUser(c, 1, "user")
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, env.Cart.RemoveFromCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[cartResponse](t, rec)
	require.Equal(t, 1, resp.Count)
}

func TestClearCart(t *testing.T) {
	env := newTestEnv(t)
	store := env.Carts.Get(1)
	store.Add(cart.Line{ProductID: 1, UnitPrice: 10, QuantitySelected: 2})
	store.Add(cart.Line{ProductID: 2, UnitPrice: 5, QuantitySelected: 1})

	rec, c := env.doJSONRequest(http.MethodDelete, "/cart", nil)
	asUser(c, 1, "user")
	require.NoError(t, env.Cart.ClearCart(c))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, 0, store.Len())
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	env := newTestEnv(t)
	env.Carts.Get(1).Add(cart.Line{ProductID: 1, UnitPrice: 10, QuantitySelected: 1})

	rec, c := env.doJSONRequest(http.MethodGet, "/cart", nil)
	asUser(c, 2, "user")
	require.NoError(t, env.Cart.GetCart(c))

	resp := decodeJSON[cartResponse](t, rec)
	require.Equal(t, 0, resp.Count)
}
