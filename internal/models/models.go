package models

type Category struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryName string `gorm:"unique;not null"          json:"category_name"`
}

type Product struct {
	ID                 uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName        string  `gorm:"not null"                 json:"product_name"`
	ProductDescription string  `json:"product_description"`
	Price              float64 `gorm:"not null"                 json:"price"`
	Quantity           uint    `json:"quantity"`
	Images             string  `json:"images"`
	CategoryID         uint    `gorm:"index"                    json:"category_id"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type Order struct {
	ID              uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber     string  `gorm:"unique;not null"          json:"order_number"`
	UserID          uint    `gorm:"index;not null"           json:"user_id"`
	Status          string  `gorm:"not null"                 json:"status"`
	ShippingAddress string  `json:"shipping_address"`
	CouponCode      string  `json:"coupon_code"`
	PaymentMethod   string  `json:"payment_method"`
	Subtotal        float64 `json:"subtotal"`
	ShippingFee     float64 `json:"shipping_fee"`
	Total           float64 `json:"total"`
	OrderDate       int64   `json:"order_date"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint `gorm:"index;not null"           json:"order_id"`
	UserID    uint `gorm:"index;not null"           json:"user_id"`
	ProductID uint `gorm:"not null"                 json:"product_id"`
	Quantity  uint `gorm:"check:quantity>0"         json:"quantity"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	Role      string `gorm:"not null"        json:"role"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}
