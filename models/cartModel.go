package models

type CartItem struct {
	Base
	SessionID string `json:"sessionId" gorm:"uniqueIndex:idx_cart_session_product;size:191;not null"`
	ProductID uint   `json:"productId" gorm:"uniqueIndex:idx_cart_session_product;not null"`
	Quantity  int    `json:"quantity" gorm:"not null;default:1"`
}

// CartLine is a cart row joined with its live product for display.
type CartLine struct {
	CartItem
	Product *Product `json:"product"`
}
