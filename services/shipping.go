package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/Kariqs/justdrops-api/models"
	"github.com/Kariqs/justdrops-api/store"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ShippingOption struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	DaysToDeliver string          `json:"daysToDeliver"`
}

type PackageSize struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Dimensions string `json:"dimensions"`
	Weight     string `json:"weight"`
}

var ShippingOptions = []ShippingOption{
	{ID: "usps_priority", Name: "USPS Priority Mail", Price: decimal.RequireFromString("7.95"), DaysToDeliver: "1-3"},
	{ID: "usps_priority_express", Name: "USPS Priority Mail Express", Price: decimal.RequireFromString("26.95"), DaysToDeliver: "1-2"},
	{ID: "usps_first_class", Name: "USPS First Class Package", Price: decimal.RequireFromString("4.95"), DaysToDeliver: "2-5"},
	{ID: "usps_ground_advantage", Name: "USPS Ground Advantage", Price: decimal.RequireFromString("5.95"), DaysToDeliver: "2-5"},
}

var PackageSizes = []PackageSize{
	{ID: "small", Name: "Small", Dimensions: `8" x 5" x 2"`, Weight: "Up to 1 lb"},
	{ID: "medium", Name: "Medium", Dimensions: `11" x 8.5" x 5.5"`, Weight: "Up to 5 lbs"},
	{ID: "large", Name: "Large", Dimensions: `12" x 12" x 8"`, Weight: "Up to 10 lbs"},
	{ID: "custom", Name: "Custom Size", Dimensions: "Custom", Weight: "Custom"},
}

type ShippingAddress struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone,omitempty"`
}

var DefaultShipFrom = ShippingAddress{
	Name:    "JustDrops Store",
	Company: "JustDrops.xyz",
	Address: "123 Main St",
	City:    "Phoenix",
	State:   "AZ",
	Zip:     "85001",
}

type LabelInput struct {
	Service     string           `json:"service" binding:"required"`
	PackageSize string           `json:"packageSize" binding:"required"`
	Weight      decimal.Decimal  `json:"weight"`
	From        *ShippingAddress `json:"from"`
	Signature   bool             `json:"signature"`
	Insurance   bool             `json:"insurance"`
	Contents    string           `json:"contents"`
}

type labelDetails struct {
	ServiceName   string          `json:"serviceName"`
	DaysToDeliver string          `json:"daysToDeliver"`
	Dimensions    string          `json:"dimensions"`
	From          ShippingAddress `json:"from"`
	To            ShippingAddress `json:"to"`
	Signature     bool            `json:"signature"`
	Insurance     bool            `json:"insurance"`
	Contents      string          `json:"contents,omitempty"`
}

type ShippingService struct {
	store store.Storage
	delay time.Duration
	now   func() time.Time
}

func NewShippingService(s store.Storage, delay time.Duration) *ShippingService {
	return &ShippingService{store: s, delay: delay, now: time.Now}
}

func findShippingOption(id string) (ShippingOption, bool) {
	for _, option := range ShippingOptions {
		if option.ID == id {
			return option, true
		}
	}
	return ShippingOption{}, false
}

func findPackageSize(id string) (PackageSize, bool) {
	for _, size := range PackageSizes {
		if size.ID == id {
			return size, true
		}
	}
	return PackageSize{}, false
}

func (s *ShippingService) trackingNumber() string {
	return fmt.Sprintf("USPS-%d-%d", s.now().UnixMilli(), rand.IntN(1000))
}

// CreateLabel simulates purchasing a carrier label: it validates the request,
// waits out the artificial carrier latency, then stores the label and marks
// the order shipped in one transaction.
func (s *ShippingService) CreateLabel(ctx context.Context, admin Admin, orderID uint, in LabelInput) (*models.ShippingLabel, error) {
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	option, ok := findShippingOption(in.Service)
	if !ok {
		return nil, invalid("Unknown shipping service %q", in.Service)
	}
	size, ok := findPackageSize(in.PackageSize)
	if !ok {
		return nil, invalid("Unknown package size %q", in.PackageSize)
	}
	if !in.Weight.IsPositive() {
		return nil, invalid("Weight must be greater than 0")
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "Order not found")
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	from := DefaultShipFrom
	if in.From != nil {
		from = *in.From
	}
	details, err := json.Marshal(labelDetails{
		ServiceName:   option.Name,
		DaysToDeliver: option.DaysToDeliver,
		Dimensions:    size.Dimensions,
		From:          from,
		To: ShippingAddress{
			Name:    order.FullName,
			Address: order.Address,
			City:    order.City,
			State:   order.State,
			Zip:     order.ZipCode,
			Phone:   order.Phone,
		},
		Signature: in.Signature,
		Insurance: in.Insurance,
		Contents:  in.Contents,
	})
	if err != nil {
		return nil, err
	}

	label := &models.ShippingLabel{
		OrderID:        order.ID,
		TrackingNumber: s.trackingNumber(),
		Carrier:        "USPS",
		Service:        option.ID,
		PackageSize:    size.ID,
		Weight:         in.Weight,
		Cost:           option.Price,
		Details:        datatypes.JSON(details),
		CreatedBy:      admin.UserID,
	}
	err = s.store.WithTx(ctx, func(tx store.Storage) error {
		if err := tx.CreateShippingLabel(ctx, label); err != nil {
			return conflict(err, "Tracking number collision, retry the request")
		}
		return notFound(tx.UpdateOrderStatus(ctx, order.ID, models.OrderStatusShipped), "Order not found")
	})
	if err != nil {
		return nil, err
	}
	log.Printf("admin %s (id=%d) created label %s for order %d", admin.Username, admin.UserID, label.TrackingNumber, order.ID)
	return label, nil
}

func (s *ShippingService) Labels(ctx context.Context, orderID uint) ([]models.ShippingLabel, error) {
	if _, err := s.store.GetOrder(ctx, orderID); err != nil {
		return nil, notFound(err, "Order not found")
	}
	return s.store.ListShippingLabels(ctx, orderID)
}
