package services

import (
	"time"

	"github.com/Kariqs/justdrops-api/payments"
	"github.com/Kariqs/justdrops-api/store"
	"github.com/Kariqs/justdrops-api/utils"
)

type Deps struct {
	Store         store.Storage
	Gateway       payments.Gateway
	Mailer        utils.Mailer
	Uploader      utils.Uploader
	JWTSecret     string
	SessionTTL    time.Duration
	LabelDelay    time.Duration
	EnforceTotals bool
	LogoURL       string
}

// Services bundles every workflow the HTTP layer calls into.
type Services struct {
	Catalog   *CatalogService
	Cart      *CartService
	Orders    *OrderService
	Inventory *InventoryService
	Shipping  *ShippingService
	Dashboard *DashboardService
	Auth      *AuthService
	Blog      *BlogService
	Inbox     *InboxService
}

func New(deps Deps) *Services {
	return &Services{
		Catalog: NewCatalogService(deps.Store, deps.Uploader),
		Cart:    NewCartService(deps.Store),
		Orders: NewOrderService(deps.Store, deps.Gateway, deps.Mailer, OrderOptions{
			EnforceTotals: deps.EnforceTotals,
			LogoURL:       deps.LogoURL,
		}),
		Inventory: NewInventoryService(deps.Store),
		Shipping:  NewShippingService(deps.Store, deps.LabelDelay),
		Dashboard: NewDashboardService(deps.Store),
		Auth:      NewAuthService(deps.Store, deps.JWTSecret, deps.SessionTTL),
		Blog:      NewBlogService(deps.Store),
		Inbox:     NewInboxService(deps.Store),
	}
}
