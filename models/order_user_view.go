package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderUserView maps the read-only SQL view joining orders with their owning
// user's profile fields. It must never be written through.
type OrderUserView struct {
	ID                uuid.UUID       `json:"id"`
	OrderNumber       uuid.UUID       `json:"order_number"`
	Status            string          `json:"status"`
	PaymentMethod     string          `json:"payment_method"`
	PaymentID         string          `json:"payment_id,omitempty"`
	PaymentDetails    json.RawMessage `json:"payment_details,omitempty"`
	ShippingAddress   string          `json:"shipping_address"`
	BillingAddress    string          `json:"billing_address"`
	ShippingAddressID *uuid.UUID      `json:"shipping_address_id,omitempty"`
	BillingAddressID  *uuid.UUID      `json:"billing_address_id,omitempty"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	CreatedAt         time.Time       `json:"created_at"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	UserID            uuid.UUID       `json:"user_id"`
	Username          string          `json:"username"`
	Email             string          `json:"email"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	DisplayName       string          `json:"display_name"`
}

func (OrderUserView) TableName() string {
	return "order_user_view"
}
