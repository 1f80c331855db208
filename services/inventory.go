package services

import (
	"context"
	"errors"
	"log"

	"github.com/Kariqs/justdrops-api/models"
	"github.com/Kariqs/justdrops-api/store"
)

type InventoryInput struct {
	Inventory *int `json:"inventory" binding:"required"`
	// ExpectedInventory, when sent, must match the stored level or the
	// write is refused.
	ExpectedInventory *int   `json:"expectedInventory"`
	Reason            string `json:"reason" binding:"max=255"`
}

type InventoryService struct {
	store store.Storage
}

func NewInventoryService(s store.Storage) *InventoryService {
	return &InventoryService{store: s}
}

// Adjust overwrites a product's stock level and records who changed it.
func (i *InventoryService) Adjust(ctx context.Context, admin Admin, productID uint, in InventoryInput) (*models.Product, error) {
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	if *in.Inventory < 0 {
		return nil, invalid("Inventory cannot be negative")
	}

	var product *models.Product
	err := i.store.WithTx(ctx, func(tx store.Storage) error {
		previous, err := tx.SetInventory(ctx, productID, in.ExpectedInventory, *in.Inventory)
		if errors.Is(err, store.ErrConflict) {
			return newError(ErrConflict, "Inventory changed to %d since it was read", previous)
		}
		if err != nil {
			return notFound(err, "Product not found")
		}

		adjustment := &models.InventoryAdjustment{
			ProductID: productID,
			Previous:  previous,
			Current:   *in.Inventory,
			AdminID:   admin.UserID,
			Reason:    in.Reason,
		}
		if err := tx.CreateInventoryAdjustment(ctx, adjustment); err != nil {
			return err
		}

		product, err = tx.GetProduct(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Printf("admin %s (id=%d) set product %d inventory to %d", admin.Username, admin.UserID, productID, *in.Inventory)
	return product, nil
}

func (i *InventoryService) History(ctx context.Context, productID uint) ([]models.InventoryAdjustment, error) {
	if _, err := i.store.GetProduct(ctx, productID); err != nil {
		return nil, notFound(err, "Product not found")
	}
	return i.store.ListInventoryAdjustments(ctx, productID)
}
