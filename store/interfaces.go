package store

import (
	"context"
	"errors"

	"github.com/Kariqs/justdrops-api/models"
)

var (
	ErrNotFound = errors.New("store: record not found")
	ErrConflict = errors.New("store: record conflicts with existing data")
)

// ProductFilter narrows ListProducts. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID *uint
	Featured   *bool
	Search     string
}

type OrderFilter struct {
	Status string
}

type BlogPostFilter struct {
	PublishedOnly bool
	CategoryID    *uint
}

type CatalogStore interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error

	ListSpecifications(ctx context.Context, productID uint) ([]models.ProductSpecification, error)
	CreateSpecification(ctx context.Context, spec *models.ProductSpecification) error
	ListImages(ctx context.Context, productID uint) ([]models.ProductImage, error)
	CreateImage(ctx context.Context, image *models.ProductImage) error

	// SetInventory overwrites the stock level and returns the previous value.
	// When expected is non-nil the write only happens if the stored value
	// still equals *expected, otherwise ErrConflict is returned.
	SetInventory(ctx context.Context, productID uint, expected *int, value int) (int, error)
	CreateInventoryAdjustment(ctx context.Context, adj *models.InventoryAdjustment) error
	ListInventoryAdjustments(ctx context.Context, productID uint) ([]models.InventoryAdjustment, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error
}

type CartStore interface {
	ListCartItems(ctx context.Context, sessionID string) ([]models.CartItem, error)
	GetCartItem(ctx context.Context, id uint) (*models.CartItem, error)
	// AddCartItem inserts a row for (sessionID, productID) or increments the
	// existing one. The bool reports whether a new row was created.
	AddCartItem(ctx context.Context, sessionID string, productID uint, quantity int) (*models.CartItem, bool, error)
	SetCartItemQuantity(ctx context.Context, id uint, quantity int) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, id uint) error
	ClearCart(ctx context.Context, sessionID string) error
}

type OrderStore interface {
	// CreateOrder persists the header and its OrderItems.
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status string) error
	// ClaimOrderPayment moves an unpaid or failed order to processing. It
	// fails with ErrConflict when the order is paid or another charge holds it.
	ClaimOrderPayment(ctx context.Context, id uint) error
	// MarkOrderPaid fails with ErrConflict when the order is already paid.
	MarkOrderPaid(ctx context.Context, id uint, paymentID string) error
	MarkOrderPaymentFailed(ctx context.Context, id uint) error

	CreateShippingLabel(ctx context.Context, label *models.ShippingLabel) error
	ListShippingLabels(ctx context.Context, orderID uint) ([]models.ShippingLabel, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

type InboxStore interface {
	CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error
	ListContactMessages(ctx context.Context) ([]models.ContactMessage, error)
	CreateSubscriber(ctx context.Context, sub *models.NewsletterSubscriber) error
	GetSubscriberByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	ListSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error)
}

type BlogStore interface {
	ListPosts(ctx context.Context, filter BlogPostFilter) ([]models.BlogPost, error)
	GetPost(ctx context.Context, id uint) (*models.BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	CreatePost(ctx context.Context, post *models.BlogPost) error
	UpdatePost(ctx context.Context, post *models.BlogPost) error
	DeletePost(ctx context.Context, id uint) error
	SetPostCategories(ctx context.Context, postID uint, categoryIDs []uint) error
	ListPostCategories(ctx context.Context, postID uint) ([]models.BlogCategory, error)

	ListBlogCategories(ctx context.Context) ([]models.BlogCategory, error)
	GetBlogCategoryBySlug(ctx context.Context, slug string) (*models.BlogCategory, error)
	CreateBlogCategory(ctx context.Context, category *models.BlogCategory) error
}

// Storage is everything the services need from persistence.
type Storage interface {
	CatalogStore
	CartStore
	OrderStore
	UserStore
	InboxStore
	BlogStore

	// WithTx runs fn against a transactional view of the store. Returning an
	// error from fn rolls every write back.
	WithTx(ctx context.Context, fn func(tx Storage) error) error
	PingContext(ctx context.Context) error
}
