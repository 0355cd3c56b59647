package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/shopbee/backend/internal/handlers"
	"github.com/shopbee/backend/internal/service/token"
)

type Deps struct {
	AuthHandler     *handlers.AuthHandler
	ProductHandler  *handlers.ProductHandler
	CartHandler     *handlers.CartHandler
	CheckoutHandler *handlers.CheckoutHandler
	SearchHandler   *handlers.SearchHandler
	AdminHandler    *handlers.AdminHandler
	Tokens          *token.Service
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	// storefront
	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/refresh", d.AuthHandler.Refresh)
	e.GET("/dashboard", d.ProductHandler.Dashboard)
	e.GET("/display-product/:id", d.ProductHandler.DisplayProduct)
	e.GET("/search", d.SearchHandler.Search)

	cart := e.Group("/cart", d.Tokens.RequireUser)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart) // :id is the product id

	e.POST("/checkout", d.CheckoutHandler.Checkout, d.Tokens.RequireUser)
	e.POST("/orders/place-order", d.CheckoutHandler.PlaceOrder, d.Tokens.RequireUser)

	// back-office
	e.POST("/admin/login", d.AuthHandler.AdminLogin)

	admin := e.Group("/admin", d.Tokens.RequireAdmin)
	admin.POST("/sign-out", d.AuthHandler.SignOut)
	admin.POST("/change-password", d.AuthHandler.ChangePassword)

	admin.GET("/categories", d.AdminHandler.ListCategories)
	admin.POST("/categories", d.AdminHandler.CreateCategory)
	admin.PUT("/categories/:id", d.AdminHandler.UpdateCategory)
	admin.DELETE("/categories/:id", d.AdminHandler.DeleteCategory)

	admin.GET("/products", d.AdminHandler.ListProducts)
	admin.POST("/products", d.AdminHandler.CreateProduct)
	admin.PUT("/products/:id", d.AdminHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.AdminHandler.DeleteProduct)

	admin.GET("/orders", d.AdminHandler.ListOrders)
	admin.POST("/orders", d.AdminHandler.CreateOrder)
	admin.GET("/orders/:id", d.AdminHandler.GetOrder)
	admin.PUT("/orders/:id", d.AdminHandler.UpdateOrder)
	admin.DELETE("/orders/:id", d.AdminHandler.DeleteOrder)

	admin.GET("/users", d.AdminHandler.ListUsers)
	admin.POST("/users", d.AdminHandler.CreateUser)
	admin.PUT("/users/:id", d.AdminHandler.UpdateUser)
	admin.DELETE("/users/:id", d.AdminHandler.DeleteUser)
}
