package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Kariqs/justdrops-api/models"
	"github.com/Kariqs/justdrops-api/store"
	"github.com/shopspring/decimal"
)

type CartView struct {
	Items    []models.CartLine `json:"items"`
	Subtotal decimal.Decimal   `json:"subtotal"`
}

type AddToCartInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  *int `json:"quantity"`
}

type CartService struct {
	store store.Storage
}

func NewCartService(s store.Storage) *CartService {
	return &CartService{store: s}
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return invalid("Session ID required")
	}
	return nil
}

// Get returns the session's cart joined with live product data. The subtotal
// is informational only; order totals come from the checkout request.
func (c *CartService) Get(ctx context.Context, sessionID string) (*CartView, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	items, err := c.store.ListCartItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]models.CartLine, 0, len(items)), Subtotal: decimal.Zero}
	for _, item := range items {
		line := models.CartLine{CartItem: item}
		product, err := c.store.GetProduct(ctx, item.ProductID)
		switch {
		case err == nil:
			line.Product = product
			view.Subtotal = view.Subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		case !errors.Is(err, store.ErrNotFound):
			return nil, err
		}
		view.Items = append(view.Items, line)
	}
	return view, nil
}

// Add inserts a line or increments the existing one. The bool reports
// whether a new row was created.
func (c *CartService) Add(ctx context.Context, sessionID string, in AddToCartInput) (*models.CartItem, bool, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, false, err
	}
	if err := validateStruct(&in); err != nil {
		return nil, false, err
	}
	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if quantity < 1 {
		return nil, false, invalid("Quantity must be at least 1")
	}

	if _, err := c.store.GetProduct(ctx, in.ProductID); err != nil {
		return nil, false, notFound(err, "Product not found")
	}
	return c.store.AddCartItem(ctx, sessionID, in.ProductID, quantity)
}

func (c *CartService) SetQuantity(ctx context.Context, id uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, invalid("Invalid quantity")
	}
	item, err := c.store.SetCartItemQuantity(ctx, id, quantity)
	if err != nil {
		return nil, notFound(err, "Cart item not found")
	}
	return item, nil
}

func (c *CartService) Remove(ctx context.Context, id uint) error {
	return notFound(c.store.DeleteCartItem(ctx, id), "Cart item not found")
}

func (c *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	return c.store.ClearCart(ctx, sessionID)
}
