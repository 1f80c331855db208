package models

import "time"

// Base replaces gorm.Model for every table. Rows are hard-deleted, so a
// re-added cart line or a recreated slug never collides with a tombstone.
type Base struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// All lists every table in migration order.
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Product{},
		&ProductSpecification{},
		&ProductImage{},
		&InventoryAdjustment{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&ShippingLabel{},
		&ContactMessage{},
		&NewsletterSubscriber{},
		&BlogCategory{},
		&BlogPost{},
		&BlogPostCategory{},
	}
}
