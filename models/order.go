package models

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing" // set at placement
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// ParseOrderStatus maps a case-insensitive name to a known status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range []OrderStatus{OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled} {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// Order is a priced snapshot of a cart. Receiver fields are captured at order
// time and are independent of the user's stored profile.
type Order struct {
	ID                  uint        `gorm:"primaryKey" json:"id"`
	OrderRef            string      `gorm:"size:64;uniqueIndex;not null" json:"order_ref"`
	UserID              uint        `gorm:"not null;index" json:"user_id"`
	TotalPrice          Money       `gorm:"type:decimal(10,2);not null" json:"total_price"`
	ReceiverStreet      string      `gorm:"size:255;not null" json:"receiver_street"`
	ReceiverHouseNumber string      `gorm:"size:64;not null" json:"receiver_house_number"`
	ReceiverPhoneNumber string      `gorm:"size:32;not null" json:"receiver_phone_number"`
	Status              OrderStatus `gorm:"type:VARCHAR(20);not null;default:'Processing'" json:"status"`
	Items               []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt           time.Time   `json:"created_at"`
}

// OrderItem copies a cart line at placement; later cart changes do not touch it.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Quantity  int     `gorm:"not null;check:quantity >= 1" json:"quantity"`
	UnitPrice Money   `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}
