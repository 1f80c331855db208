package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kariqs/justdrops-api/models"
	"gorm.io/gorm"
)

// GormStore implements Storage on top of any gorm dialector (MySQL, Postgres
// or SQLite).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB exposes the underlying handle for migrations and seeding.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func (s *GormStore) WithTx(ctx context.Context, fn func(tx Storage) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) PingContext(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("store: unwrap sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// translate maps driver and gorm errors onto the package sentinels.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return fmt.Errorf("store: %s: %w", op, ErrConflict)
	}
	return fmt.Errorf("store: %s: %w", op, err)
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

func (s *GormStore) exists(ctx context.Context, model any, id uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return translate("exists", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) deleteByID(ctx context.Context, model any, id uint) error {
	res := s.db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return translate("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Catalog

func (s *GormStore) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	products := []models.Product{}
	if err := query.Order("id").Find(&products).Error; err != nil {
		return nil, translate("list products", err)
	}
	return products, nil
}

func (s *GormStore) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translate("get product", err)
	}
	return &product, nil
}

func (s *GormStore) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, translate("get product by slug", err)
	}
	return &product, nil
}

func (s *GormStore) CreateProduct(ctx context.Context, product *models.Product) error {
	return translate("create product", s.db.WithContext(ctx).Create(product).Error)
}

func (s *GormStore) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := s.exists(ctx, &models.Product{}, product.ID); err != nil {
		return err
	}
	return translate("update product", s.db.WithContext(ctx).Save(product).Error)
}

func (s *GormStore) DeleteProduct(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductSpecification{}).Error; err != nil {
			return translate("delete product specifications", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return translate("delete product images", err)
		}
		return (&GormStore{db: tx}).deleteByID(ctx, &models.Product{}, id)
	})
}

func (s *GormStore) ListSpecifications(ctx context.Context, productID uint) ([]models.ProductSpecification, error) {
	specs := []models.ProductSpecification{}
	err := s.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&specs).Error
	return specs, translate("list specifications", err)
}

func (s *GormStore) CreateSpecification(ctx context.Context, spec *models.ProductSpecification) error {
	return translate("create specification", s.db.WithContext(ctx).Create(spec).Error)
}

func (s *GormStore) ListImages(ctx context.Context, productID uint) ([]models.ProductImage, error) {
	images := []models.ProductImage{}
	err := s.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&images).Error
	return images, translate("list images", err)
}

func (s *GormStore) CreateImage(ctx context.Context, image *models.ProductImage) error {
	return translate("create image", s.db.WithContext(ctx).Create(image).Error)
}

func (s *GormStore) SetInventory(ctx context.Context, productID uint, expected *int, value int) (int, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	previous := product.Inventory
	if expected != nil && *expected != previous {
		return previous, ErrConflict
	}
	if value == previous {
		return previous, nil
	}

	// Guard on the value we read so a concurrent writer is reported, not overwritten.
	res := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND inventory = ?", productID, previous).
		Update("inventory", value)
	if res.Error != nil {
		return previous, translate("set inventory", res.Error)
	}
	if res.RowsAffected == 0 {
		if err := s.exists(ctx, &models.Product{}, productID); err != nil {
			return previous, err
		}
		return previous, ErrConflict
	}
	return previous, nil
}

func (s *GormStore) CreateInventoryAdjustment(ctx context.Context, adj *models.InventoryAdjustment) error {
	return translate("create inventory adjustment", s.db.WithContext(ctx).Create(adj).Error)
}

func (s *GormStore) ListInventoryAdjustments(ctx context.Context, productID uint) ([]models.InventoryAdjustment, error) {
	adjustments := []models.InventoryAdjustment{}
	err := s.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&adjustments).Error
	return adjustments, translate("list inventory adjustments", err)
}

func (s *GormStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.db.WithContext(ctx).Order("id").Find(&categories).Error
	return categories, translate("list categories", err)
}

func (s *GormStore) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translate("get category", err)
	}
	return &category, nil
}

func (s *GormStore) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, translate("get category by slug", err)
	}
	return &category, nil
}

func (s *GormStore) CreateCategory(ctx context.Context, category *models.Category) error {
	return translate("create category", s.db.WithContext(ctx).Create(category).Error)
}

func (s *GormStore) UpdateCategory(ctx context.Context, category *models.Category) error {
	if err := s.exists(ctx, &models.Category{}, category.ID); err != nil {
		return err
	}
	return translate("update category", s.db.WithContext(ctx).Save(category).Error)
}

func (s *GormStore) DeleteCategory(ctx context.Context, id uint) error {
	return s.deleteByID(ctx, &models.Category{}, id)
}

// Cart

func (s *GormStore) ListCartItems(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	items := []models.CartItem{}
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("id").Find(&items).Error
	return items, translate("list cart items", err)
}

func (s *GormStore) GetCartItem(ctx context.Context, id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate("get cart item", err)
	}
	return &item, nil
}

func (s *GormStore) incrementCartItem(ctx context.Context, sessionID string, productID uint, quantity int) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if res.Error != nil {
		return false, translate("increment cart item", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) AddCartItem(ctx context.Context, sessionID string, productID uint, quantity int) (*models.CartItem, bool, error) {
	incremented, err := s.incrementCartItem(ctx, sessionID, productID, quantity)
	if err != nil {
		return nil, false, err
	}

	if !incremented {
		item := models.CartItem{SessionID: sessionID, ProductID: productID, Quantity: quantity}
		err := translate("create cart item", s.db.WithContext(ctx).Create(&item).Error)
		if err == nil {
			return &item, true, nil
		}
		if !errors.Is(err, ErrConflict) {
			return nil, false, err
		}
		// Another request inserted the row first; fold into it.
		if _, err := s.incrementCartItem(ctx, sessionID, productID, quantity); err != nil {
			return nil, false, err
		}
	}

	var item models.CartItem
	err = s.db.WithContext(ctx).Where("session_id = ? AND product_id = ?", sessionID, productID).First(&item).Error
	if err != nil {
		return nil, false, translate("reload cart item", err)
	}
	return &item, false, nil
}

func (s *GormStore) SetCartItemQuantity(ctx context.Context, id uint, quantity int) (*models.CartItem, error) {
	item, err := s.GetCartItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(item).Update("quantity", quantity).Error; err != nil {
		return nil, translate("set cart item quantity", err)
	}
	item.Quantity = quantity
	return item, nil
}

func (s *GormStore) DeleteCartItem(ctx context.Context, id uint) error {
	return s.deleteByID(ctx, &models.CartItem{}, id)
}

func (s *GormStore) ClearCart(ctx context.Context, sessionID string) error {
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error
	return translate("clear cart", err)
}

// Orders

func (s *GormStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return translate("create order", s.db.WithContext(ctx).Create(order).Error)
}

func (s *GormStore) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&order, id).Error
	if err != nil {
		return nil, translate("get order", err)
	}
	return &order, nil
}

func (s *GormStore) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	query := s.db.WithContext(ctx).Preload("OrderItems")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	orders := []models.Order{}
	err := query.Order("created_at DESC, id DESC").Find(&orders).Error
	return orders, translate("list orders", err)
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	if err := s.exists(ctx, &models.Order{}, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error
	return translate("update order status", err)
}

func (s *GormStore) ClaimOrderPayment(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND payment_status IN ?", id, []string{models.PaymentStatusUnpaid, models.PaymentStatusFailed}).
		Update("payment_status", models.PaymentStatusProcessing)
	if res.Error != nil {
		return translate("claim order payment", res.Error)
	}
	if res.RowsAffected == 0 {
		if err := s.exists(ctx, &models.Order{}, id); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

func (s *GormStore) MarkOrderPaid(ctx context.Context, id uint, paymentID string) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND payment_status <> ?", id, models.PaymentStatusPaid).
		Updates(map[string]any{
			"payment_status": models.PaymentStatusPaid,
			"payment_id":     paymentID,
		})
	if res.Error != nil {
		return translate("mark order paid", res.Error)
	}
	if res.RowsAffected == 0 {
		if err := s.exists(ctx, &models.Order{}, id); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

func (s *GormStore) MarkOrderPaymentFailed(ctx context.Context, id uint) error {
	if err := s.exists(ctx, &models.Order{}, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND payment_status <> ?", id, models.PaymentStatusPaid).
		Update("payment_status", models.PaymentStatusFailed).Error
	return translate("mark order payment failed", err)
}

func (s *GormStore) CreateShippingLabel(ctx context.Context, label *models.ShippingLabel) error {
	return translate("create shipping label", s.db.WithContext(ctx).Create(label).Error)
}

func (s *GormStore) ListShippingLabels(ctx context.Context, orderID uint) ([]models.ShippingLabel, error) {
	labels := []models.ShippingLabel{}
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&labels).Error
	return labels, translate("list shipping labels", err)
}

// Users

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	return translate("create user", s.db.WithContext(ctx).Create(user).Error)
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate("get user", err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate("get user by username", err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate("get user by email", err)
	}
	return &user, nil
}

func (s *GormStore) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, translate("count users", err)
}

// Inbox

func (s *GormStore) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	return translate("create contact message", s.db.WithContext(ctx).Create(msg).Error)
}

func (s *GormStore) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	messages := []models.ContactMessage{}
	err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&messages).Error
	return messages, translate("list contact messages", err)
}

func (s *GormStore) CreateSubscriber(ctx context.Context, sub *models.NewsletterSubscriber) error {
	return translate("create subscriber", s.db.WithContext(ctx).Create(sub).Error)
}

func (s *GormStore) GetSubscriberByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	var sub models.NewsletterSubscriber
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&sub).Error; err != nil {
		return nil, translate("get subscriber", err)
	}
	return &sub, nil
}

func (s *GormStore) ListSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	subs := []models.NewsletterSubscriber{}
	err := s.db.WithContext(ctx).Order("id").Find(&subs).Error
	return subs, translate("list subscribers", err)
}

// Blog

func (s *GormStore) ListPosts(ctx context.Context, filter BlogPostFilter) ([]models.BlogPost, error) {
	query := s.db.WithContext(ctx).Model(&models.BlogPost{})
	if filter.PublishedOnly {
		query = query.Where("published = ?", true)
	}
	if filter.CategoryID != nil {
		postIDs := s.db.Model(&models.BlogPostCategory{}).Select("post_id").Where("category_id = ?", *filter.CategoryID)
		query = query.Where("id IN (?)", postIDs)
	}
	posts := []models.BlogPost{}
	err := query.Order("created_at DESC, id DESC").Find(&posts).Error
	return posts, translate("list posts", err)
}

func (s *GormStore) GetPost(ctx context.Context, id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translate("get post", err)
	}
	return &post, nil
}

func (s *GormStore) GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, translate("get post by slug", err)
	}
	return &post, nil
}

func (s *GormStore) CreatePost(ctx context.Context, post *models.BlogPost) error {
	return translate("create post", s.db.WithContext(ctx).Create(post).Error)
}

func (s *GormStore) UpdatePost(ctx context.Context, post *models.BlogPost) error {
	if err := s.exists(ctx, &models.BlogPost{}, post.ID); err != nil {
		return err
	}
	return translate("update post", s.db.WithContext(ctx).Save(post).Error)
}

func (s *GormStore) DeletePost(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.BlogPostCategory{}).Error; err != nil {
			return translate("delete post categories", err)
		}
		return (&GormStore{db: tx}).deleteByID(ctx, &models.BlogPost{}, id)
	})
}

func (s *GormStore) SetPostCategories(ctx context.Context, postID uint, categoryIDs []uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.BlogPostCategory{}).Error; err != nil {
			return translate("reset post categories", err)
		}
		for _, categoryID := range categoryIDs {
			link := models.BlogPostCategory{PostID: postID, CategoryID: categoryID}
			if err := tx.Create(&link).Error; err != nil {
				return translate("link post category", err)
			}
		}
		return nil
	})
}

func (s *GormStore) ListPostCategories(ctx context.Context, postID uint) ([]models.BlogCategory, error) {
	categories := []models.BlogCategory{}
	err := s.db.WithContext(ctx).
		Select("blog_categories.*").
		Joins("JOIN blog_post_categories ON blog_post_categories.category_id = blog_categories.id").
		Where("blog_post_categories.post_id = ?", postID).
		Order("blog_categories.id").
		Find(&categories).Error
	return categories, translate("list post categories", err)
}

func (s *GormStore) ListBlogCategories(ctx context.Context) ([]models.BlogCategory, error) {
	categories := []models.BlogCategory{}
	err := s.db.WithContext(ctx).Order("id").Find(&categories).Error
	return categories, translate("list blog categories", err)
}

func (s *GormStore) GetBlogCategoryBySlug(ctx context.Context, slug string) (*models.BlogCategory, error) {
	var category models.BlogCategory
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, translate("get blog category", err)
	}
	return &category, nil
}

func (s *GormStore) CreateBlogCategory(ctx context.Context, category *models.BlogCategory) error {
	return translate("create blog category", s.db.WithContext(ctx).Create(category).Error)
}

var _ Storage = (*GormStore)(nil)
