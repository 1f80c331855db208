package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ShippingLabel struct {
	Base
	OrderID        uint            `json:"orderId" gorm:"index;not null"`
	TrackingNumber string          `json:"trackingNumber" gorm:"uniqueIndex;size:64;not null"`
	Carrier        string          `json:"carrier" gorm:"not null"`
	Service        string          `json:"service" gorm:"not null"`
	PackageSize    string          `json:"packageSize" gorm:"not null"`
	Weight         decimal.Decimal `json:"weight" gorm:"type:numeric(6,2)"`
	Cost           decimal.Decimal `json:"cost" gorm:"type:numeric(10,2);not null"`
	Details        datatypes.JSON  `json:"details"`
	CreatedBy      uint            `json:"createdBy"`
}
