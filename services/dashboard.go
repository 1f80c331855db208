package services

import (
	"context"

	"github.com/Kariqs/justdrops-api/models"
	"github.com/Kariqs/justdrops-api/store"
	"github.com/shopspring/decimal"
)

const lowStockThreshold = 5

type Stats struct {
	TotalOrders    int             `json:"totalOrders"`
	OrdersByStatus map[string]int  `json:"ordersByStatus"`
	PaidOrders     int             `json:"paidOrders"`
	TotalSales     decimal.Decimal `json:"totalSales"`
	PaidSales      decimal.Decimal `json:"paidSales"`
	TotalProducts  int             `json:"totalProducts"`
	TotalInventory int             `json:"totalInventory"`
	LowStockCount  int             `json:"lowStockCount"`
	OutOfStock     int             `json:"outOfStockCount"`
}

type DashboardService struct {
	store store.Storage
}

func NewDashboardService(s store.Storage) *DashboardService {
	return &DashboardService{store: s}
}

// Stats summarises orders and stock. TotalSales sums every order total,
// paid or not; PaidSales only counts captured payments.
func (d *DashboardService) Stats(ctx context.Context) (*Stats, error) {
	orders, err := d.store.ListOrders(ctx, store.OrderFilter{})
	if err != nil {
		return nil, err
	}
	products, err := d.store.ListProducts(ctx, store.ProductFilter{})
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		OrdersByStatus: make(map[string]int, len(models.OrderStatuses)),
		TotalSales:     decimal.Zero,
		PaidSales:      decimal.Zero,
	}
	for _, status := range models.OrderStatuses {
		stats.OrdersByStatus[status] = 0
	}
	for _, order := range orders {
		stats.TotalOrders++
		stats.OrdersByStatus[order.Status]++
		stats.TotalSales = stats.TotalSales.Add(order.TotalAmount)
		if order.PaymentStatus == models.PaymentStatusPaid {
			stats.PaidOrders++
			stats.PaidSales = stats.PaidSales.Add(order.TotalAmount)
		}
	}

	for _, product := range products {
		stats.TotalProducts++
		stats.TotalInventory += product.Inventory
		switch {
		case product.Inventory <= 0:
			stats.OutOfStock++
		case product.Inventory <= lowStockThreshold:
			stats.LowStockCount++
		}
	}
	return stats, nil
}
