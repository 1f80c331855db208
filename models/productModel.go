package models

import "github.com/shopspring/decimal"

type ProductSpecification struct {
	Base
	ProductID uint   `json:"productId" gorm:"index;not null"`
	Key       string `json:"key" gorm:"not null"`
	Value     string `json:"value" gorm:"not null"`
}

type ProductImage struct {
	Base
	ProductID uint   `json:"productId" gorm:"index;not null"`
	Url       string `json:"url" gorm:"not null"`
	IsMain    bool   `json:"isMain"`
}

type Product struct {
	Base
	Name           string           `json:"name" gorm:"not null"`
	Slug           string           `json:"slug" gorm:"uniqueIndex;size:191;not null"`
	Description    string           `json:"description" gorm:"type:text;not null"`
	Price          decimal.Decimal  `json:"price" gorm:"type:numeric(10,2);not null"`
	CompareAtPrice *decimal.Decimal `json:"compareAtPrice" gorm:"type:numeric(10,2)"`
	ImageUrl       string           `json:"imageUrl" gorm:"not null"`
	CategoryID     uint             `json:"categoryId" gorm:"index;not null"`
	Inventory      int              `json:"inventory" gorm:"not null;default:0"`
	Featured       bool             `json:"featured" gorm:"not null;default:false"`
	IsNew          bool             `json:"isNew" gorm:"not null;default:false"`
	IsSale         bool             `json:"isSale" gorm:"not null;default:false"`
	Rating         decimal.Decimal  `json:"rating" gorm:"type:numeric(3,2);not null;default:0"`
	ReviewCount    int              `json:"reviewCount" gorm:"not null;default:0"`
}

type Category struct {
	Base
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:191;not null"`
	Description string `json:"description"`
	ImageUrl    string `json:"imageUrl"`
}

// InventoryAdjustment is the audit row written for every admin stock change.
type InventoryAdjustment struct {
	Base
	ProductID uint   `json:"productId" gorm:"index;not null"`
	Previous  int    `json:"previous"`
	Current   int    `json:"current"`
	AdminID   uint   `json:"adminId"`
	Reason    string `json:"reason"`
}
