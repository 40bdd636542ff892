package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// Payment status constants.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusApproved  = "approved"
	PaymentStatusRejected  = "rejected"
	PaymentStatusCancelled = "cancelled"
)

// User is an account holder. Password stores the bcrypt hash and is never
// serialized.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(128);not null" json:"name"`
	Email     string    `gorm:"type:varchar(256);not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"type:varchar(128);not null" json:"-"`
	Role      string    `gorm:"type:varchar(16);not null;default:'client'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	Orders    []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`
}

// Category groups products.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(128);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// Product is a catalog entry. The purchasable variants live in Sizes.
type Product struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(256);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Price       float64    `gorm:"not null" json:"price"`
	Image       string     `gorm:"type:varchar(1024)" json:"image"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Category *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Sizes    []ProductSize `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes,omitempty"`
}

// ProductSize is a purchasable variant carrying its own stock and shipping
// weight. Dimensions are optional and only used for volumetric quotes.
type ProductSize struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Size      string    `gorm:"type:varchar(10);not null" json:"size"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	Weight    float64   `gorm:"not null" json:"weight"` // kg
	Length    *float64  `json:"length,omitempty"`       // cm
	Width     *float64  `json:"width,omitempty"`
	Height    *float64  `json:"height,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// Cart is a user's working set of selections. One per user.
type Cart struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User  *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// CartItem is a product-size selection inside a cart.
type CartItem struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CartID        uuid.UUID `gorm:"type:uuid;not null;index" json:"cart_id"`
	ProductSizeID uuid.UUID `gorm:"type:uuid;not null" json:"product_size_id"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Cart        *Cart        `gorm:"foreignKey:CartID" json:"cart,omitempty"`
	ProductSize *ProductSize `gorm:"foreignKey:ProductSizeID" json:"product_size,omitempty"`
}

// Shipping is a shipping method. A non-empty CarrierServiceCode switches the
// method from flat-rate pricing to live carrier quotes.
type Shipping struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name               string    `gorm:"type:varchar(128);not null" json:"name"`
	BasePrice          float64   `gorm:"not null" json:"base_price"`
	PricePerKilo       float64   `gorm:"not null" json:"price_per_kilo"`
	EstimatedDays      int       `json:"estimated_days"`
	CarrierServiceCode string    `gorm:"type:varchar(64)" json:"carrier_service_code,omitempty"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Order is a placed checkout. Total always equals Subtotal + ShippingCost;
// all three are computed server-side at creation.
type Order struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ShippingID   uuid.UUID      `gorm:"type:uuid;not null" json:"shipping_id"`
	AddressID    *uuid.UUID     `gorm:"type:uuid" json:"address_id,omitempty"`
	Subtotal     float64        `gorm:"not null" json:"subtotal"`
	ShippingCost float64        `gorm:"not null" json:"shipping_cost"`
	Total        float64        `gorm:"not null" json:"total"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	User     *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Shipping *Shipping   `gorm:"foreignKey:ShippingID" json:"shipping,omitempty"`
	Address  *Address    `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payment  *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"`
}

// OrderItem captures the unit price at order time, decoupled from later
// product price changes.
type OrderItem struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	ProductSizeID uuid.UUID `gorm:"type:uuid;not null" json:"product_size_id"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Price         float64   `gorm:"not null" json:"price"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Order       *Order       `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	ProductSize *ProductSize `gorm:"foreignKey:ProductSizeID" json:"product_size,omitempty"`
}

// Payment belongs to exactly one order. An approved payment freezes the
// order's items.
type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	PaymentMethod string    `gorm:"type:varchar(64);not null" json:"payment_method"`
	Status        string    `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	Amount        float64   `gorm:"not null" json:"amount"`
	TransactionID *string   `gorm:"type:varchar(256)" json:"transaction_id,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

// Address is a user's mailing address. At most one per user carries
// IsDefault; writes that set it clear the flag on the user's others.
type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Street     string    `gorm:"type:varchar(256);not null" json:"street"`
	City       string    `gorm:"type:varchar(128);not null" json:"city"`
	State      string    `gorm:"type:varchar(128);not null" json:"state"`
	Country    string    `gorm:"type:varchar(128);not null" json:"country"`
	PostalCode string    `gorm:"type:varchar(32);not null" json:"postal_code"`
	Phone      string    `gorm:"type:varchar(32)" json:"phone,omitempty"`
	IsDefault  bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ValidPaymentStatus reports whether s is one of the allowed payment states.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected, PaymentStatusCancelled:
		return true
	}
	return false
}
