package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User roles. The admin role is what staff checks look for.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Order statuses. Only pending -> paid is driven by this service;
// shipped/delivered/cancelled are administrative.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentMethodCreditCard = "credit_card"
	PaymentMethodPayPal     = "paypal"
)

const (
	MessageTypeAdminToUser = "admin_to_user"
	MessageTypeAdminToAll  = "admin_to_all"
	MessageTypeUserToAdmin = "user_to_admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:254" json:"email"`
	FirstName    string    `gorm:"size:150" json:"first_name"`
	LastName     string    `gorm:"size:150" json:"last_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin
}

// ArtPicture is a sellable catalog item. Customers never delete these;
// unavailable pictures stay hidden from non-staff callers.
type ArtPicture struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	ImageURL    string          `gorm:"size:500" json:"image_url,omitempty"`
	IsAvailable bool            `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// Cart holds the single active cart for a user, created lazily.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`

	// Derived at read time, never persisted.
	TotalPrice decimal.Decimal `gorm:"-" json:"total_price"`
}

// ComputeTotal sums line subtotals from the currently loaded items.
func (c *Cart) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

type CartItem struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CartID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_cart_picture" json:"cart_id"`
	ArtPictureID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_cart_picture" json:"art_picture_id"`
	Quantity     int        `gorm:"not null;default:1" json:"quantity"`
	AddedAt      time.Time  `gorm:"autoCreateTime" json:"added_at"`
	ArtPicture   ArtPicture `gorm:"foreignKey:ArtPictureID" json:"art_picture"`

	// Derived at read time, never persisted.
	SubtotalPrice decimal.Decimal `gorm:"-" json:"subtotal"`
}

func (ci *CartItem) Subtotal() decimal.Decimal {
	return ci.ArtPicture.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// Address rows are immutable once created; orders keep a reference, and the
// same row may back several orders.
type Address struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Street    string     `gorm:"size:255;not null" json:"street"`
	City      string     `gorm:"size:100;not null" json:"city"`
	State     string     `gorm:"size:100;not null" json:"state"`
	Zipcode   string     `gorm:"size:20;not null" json:"zipcode"`
	Country   string     `gorm:"size:100;not null;default:'United States'" json:"country"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// FullAddress renders the flat-text form persisted on orders for
// backward compatibility.
func (a *Address) FullAddress() string {
	return strings.Join([]string{a.Street, a.City, a.State + " " + a.Zipcode, a.Country}, ", ")
}

// Order is immutable once paid. The user FK and order number never change
// after creation, and TotalPrice is a snapshot computed at checkout.
type Order struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	OrderNumber   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"order_number"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentMethod string    `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentID     string    `gorm:"size:100" json:"payment_id,omitempty"`
	// Provider-specific blob (e.g. PayPal transaction data).
	PaymentDetails json.RawMessage `gorm:"type:jsonb" json:"payment_details,omitempty"`

	// Legacy flat-text addresses, always populated for existing readers.
	ShippingAddress string `gorm:"type:text" json:"shipping_address"`
	BillingAddress  string `gorm:"type:text" json:"billing_address"`

	// Structured address references.
	ShippingAddressID  *uuid.UUID `gorm:"type:uuid" json:"shipping_address_id,omitempty"`
	BillingAddressID   *uuid.UUID `gorm:"type:uuid" json:"billing_address_id,omitempty"`
	ShippingAddressObj *Address   `gorm:"foreignKey:ShippingAddressID;constraint:OnDelete:SET NULL" json:"shipping_address_obj,omitempty"`
	BillingAddressObj  *Address   `gorm:"foreignKey:BillingAddressID;constraint:OnDelete:SET NULL" json:"billing_address_obj,omitempty"`

	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem freezes price and quantity at checkout time; later catalog price
// changes never touch it.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ArtPictureID uuid.UUID       `gorm:"type:uuid;not null" json:"art_picture_id"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Quantity     int             `gorm:"not null;default:1" json:"quantity"`
	ArtPicture   ArtPicture      `gorm:"foreignKey:ArtPictureID" json:"art_picture"`

	// Derived at read time, never persisted.
	SubtotalPrice decimal.Decimal `gorm:"-" json:"subtotal"`
}

func (oi *OrderItem) Subtotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

// Message carries admin<->user mail. A nil recipient with type admin_to_all
// is a broadcast visible to everyone.
type Message struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SenderID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID *uuid.UUID `gorm:"type:uuid;index" json:"recipient_id,omitempty"`
	Subject     string     `gorm:"size:200;not null" json:"subject"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	MessageType string     `gorm:"type:varchar(20);not null;index" json:"message_type"`
	IsRead      bool       `gorm:"not null;default:false" json:"is_read"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Sender    User  `gorm:"foreignKey:SenderID" json:"-"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"-"`

	SenderUsername    string `gorm:"-" json:"sender_username,omitempty"`
	RecipientUsername string `gorm:"-" json:"recipient_username,omitempty"`
}
