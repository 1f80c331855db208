package models

import (
	"github.com/shopspring/decimal"
)

// Fulfilment lifecycle, written by admins.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
)

// Payment outcome, written only by the payment endpoint.
const (
	PaymentStatusUnpaid     = "unpaid"
	PaymentStatusProcessing = "processing"
	PaymentStatusPaid       = "paid"
	PaymentStatusFailed     = "failed"
)

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusRefunded,
}

func IsOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if status == s {
			return true
		}
	}
	return false
}

type Order struct {
	Base
	UserID        *uint           `json:"userId"`
	FullName      string          `json:"fullName" gorm:"not null"`
	Email         string          `json:"email" gorm:"not null"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address" gorm:"not null"`
	City          string          `json:"city" gorm:"not null"`
	State         string          `json:"state" gorm:"not null"`
	ZipCode       string          `json:"zipCode" gorm:"not null"`
	TotalAmount   decimal.Decimal `json:"totalAmount" gorm:"type:numeric(10,2);not null"`
	Status        string          `json:"status" gorm:"index;size:32;not null;default:pending"`
	PaymentStatus string          `json:"paymentStatus" gorm:"size:32;not null;default:unpaid"`
	PaymentID     *string         `json:"paymentId"`
	OrderItems    []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem copies name and price from the product at checkout so later
// catalog edits never rewrite order history.
type OrderItem struct {
	Base
	OrderID     uint            `json:"orderId" gorm:"index;not null"`
	ProductID   uint            `json:"productId" gorm:"not null"`
	ProductName string          `json:"productName" gorm:"not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
