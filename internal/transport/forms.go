// Package transport defines the typed request shapes bound from JSON bodies.
// Every form is an explicit struct so field-name drift between the client and
// the API (product_name vs name and friends) breaks at compile time instead of
// silently binding nothing.
package transport

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CategoryForm struct {
	CategoryName string `json:"category_name"`
}

type ProductForm struct {
	ProductName        string  `json:"product_name"`
	ProductDescription string  `json:"product_description"`
	Price              float64 `json:"price"`
	Quantity           uint    `json:"quantity"`
	Images             string  `json:"images"`
	CategoryName       string  `json:"category_name"`
}

type OrderForm struct {
	OrderDate       string          `json:"order_date"`
	ShippingAddress string          `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	Status          string          `json:"status"`
	CouponCode      string          `json:"coupon_code"`
	ShippingFee     float64         `json:"shipping_fee"`
	OrderItems      []OrderItemForm `json:"order_items"`
}

type OrderItemForm struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type UserForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
