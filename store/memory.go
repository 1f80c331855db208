package store

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Kariqs/justdrops-api/models"
)

type memoryTables struct {
	seq            map[string]uint
	products       map[uint]models.Product
	specs          map[uint]models.ProductSpecification
	images         map[uint]models.ProductImage
	adjustments    map[uint]models.InventoryAdjustment
	categories     map[uint]models.Category
	cartItems      map[uint]models.CartItem
	orders         map[uint]models.Order
	orderItems     map[uint]models.OrderItem
	labels         map[uint]models.ShippingLabel
	users          map[uint]models.User
	messages       map[uint]models.ContactMessage
	subscribers    map[uint]models.NewsletterSubscriber
	posts          map[uint]models.BlogPost
	blogCategories map[uint]models.BlogCategory
	postCategories map[uint]models.BlogPostCategory
}

func newMemoryTables() *memoryTables {
	return &memoryTables{
		seq:            map[string]uint{},
		products:       map[uint]models.Product{},
		specs:          map[uint]models.ProductSpecification{},
		images:         map[uint]models.ProductImage{},
		adjustments:    map[uint]models.InventoryAdjustment{},
		categories:     map[uint]models.Category{},
		cartItems:      map[uint]models.CartItem{},
		orders:         map[uint]models.Order{},
		orderItems:     map[uint]models.OrderItem{},
		labels:         map[uint]models.ShippingLabel{},
		users:          map[uint]models.User{},
		messages:       map[uint]models.ContactMessage{},
		subscribers:    map[uint]models.NewsletterSubscriber{},
		posts:          map[uint]models.BlogPost{},
		blogCategories: map[uint]models.BlogCategory{},
		postCategories: map[uint]models.BlogPostCategory{},
	}
}

func (t *memoryTables) clone() *memoryTables {
	return &memoryTables{
		seq:            maps.Clone(t.seq),
		products:       maps.Clone(t.products),
		specs:          maps.Clone(t.specs),
		images:         maps.Clone(t.images),
		adjustments:    maps.Clone(t.adjustments),
		categories:     maps.Clone(t.categories),
		cartItems:      maps.Clone(t.cartItems),
		orders:         maps.Clone(t.orders),
		orderItems:     maps.Clone(t.orderItems),
		labels:         maps.Clone(t.labels),
		users:          maps.Clone(t.users),
		messages:       maps.Clone(t.messages),
		subscribers:    maps.Clone(t.subscribers),
		posts:          maps.Clone(t.posts),
		blogCategories: maps.Clone(t.blogCategories),
		postCategories: maps.Clone(t.postCategories),
	}
}

func (t *memoryTables) next(table string) uint {
	t.seq[table]++
	return t.seq[table]
}

// MemoryStore keeps every table in process memory. It backs the service and
// handler tests and throwaway local runs (DB_DRIVER=memory).
type MemoryStore struct {
	mu   sync.Mutex
	txMu sync.Mutex // held by open transactions and by every writer
	t    *memoryTables
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{t: newMemoryTables()}
}

// WithTx runs fn against a private copy of the tables and publishes the copy
// only when fn succeeds. Writers on s wait for the transaction to finish, so
// a commit never overwrites their changes and a rollback never discards them.
func (s *MemoryStore) WithTx(ctx context.Context, fn func(tx Storage) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	tx := &MemoryStore{t: s.t.clone()}
	s.mu.Unlock()

	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	s.t = tx.t
	s.mu.Unlock()
	return nil
}

// lockWrite takes the writer lock: it waits for any open transaction before
// taking the table lock.
func (s *MemoryStore) lockWrite() func() {
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

func (s *MemoryStore) PingContext(ctx context.Context) error {
	return ctx.Err()
}

func sortedByID[V any](m map[uint]V, keep func(V) bool) []V {
	ids := slices.Sorted(maps.Keys(m))
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		if keep == nil || keep(m[id]) {
			out = append(out, m[id])
		}
	}
	return out
}

func stamp(b *models.Base, id uint) {
	now := time.Now()
	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Catalog

func (s *MemoryStore) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	return sortedByID(s.t.products, func(p models.Product) bool {
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			return false
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			return false
		}
		return true
	}), nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.t.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.t.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) productSlugTaken(slug string, except uint) bool {
	for id, p := range s.t.products {
		if p.Slug == slug && id != except {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreateProduct(ctx context.Context, product *models.Product) error {
	defer s.lockWrite()()
	if s.productSlugTaken(product.Slug, 0) {
		return ErrConflict
	}
	stamp(&product.Base, s.t.next("products"))
	s.t.products[product.ID] = *product
	return nil
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, product *models.Product) error {
	defer s.lockWrite()()
	existing, ok := s.t.products[product.ID]
	if !ok {
		return ErrNotFound
	}
	if s.productSlugTaken(product.Slug, product.ID) {
		return ErrConflict
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	s.t.products[product.ID] = *product
	return nil
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id uint) error {
	defer s.lockWrite()()
	if _, ok := s.t.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.t.products, id)
	maps.DeleteFunc(s.t.specs, func(_ uint, v models.ProductSpecification) bool { return v.ProductID == id })
	maps.DeleteFunc(s.t.images, func(_ uint, v models.ProductImage) bool { return v.ProductID == id })
	return nil
}

func (s *MemoryStore) ListSpecifications(ctx context.Context, productID uint) ([]models.ProductSpecification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByID(s.t.specs, func(v models.ProductSpecification) bool { return v.ProductID == productID }), nil
}

func (s *MemoryStore) CreateSpecification(ctx context.Context, spec *models.ProductSpecification) error {
	defer s.lockWrite()()
	stamp(&spec.Base, s.t.next("specs"))
	s.t.specs[spec.ID] = *spec
	return nil
}

func (s *MemoryStore) ListImages(ctx context.Context, productID uint) ([]models.ProductImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByID(s.t.images, func(v models.ProductImage) bool { return v.ProductID == productID }), nil
}

func (s *MemoryStore) CreateImage(ctx context.Context, image *models.ProductImage) error {
	defer s.lockWrite()()
	stamp(&image.Base, s.t.next("images"))
	s.t.images[image.ID] = *image
	return nil
}

func (s *MemoryStore) SetInventory(ctx context.Context, productID uint, expected *int, value int) (int, error) {
	defer s.lockWrite()()
	p, ok := s.t.products[productID]
	if !ok {
		return 0, ErrNotFound
	}
	previous := p.Inventory
	if expected != nil && *expected != previous {
		return previous, ErrConflict
	}
	p.Inventory = value
	p.UpdatedAt = time.Now()
	s.t.products[productID] = p
	return previous, nil
}

func (s *MemoryStore) CreateInventoryAdjustment(ctx context.Context, adj *models.InventoryAdjustment) error {
	defer s.lockWrite()()
	stamp(&adj.Base, s.t.next("adjustments"))
	s.t.adjustments[adj.ID] = *adj
	return nil
}

func (s *MemoryStore) ListInventoryAdjustments(ctx context.Context, productID uint) ([]models.InventoryAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByID(s.t.adjustments, func(v models.InventoryAdjustment) bool { return v.ProductID == productID }), nil
}

func (s *MemoryStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByID(s.t.categories, nil), nil
}

func (s *MemoryStore) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.t.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.t.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) categorySlugTaken(slug string, except uint) bool {
	for id, c := range s.t.categories {
		if c.Slug == slug && id != except {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreateCategory(ctx context.Context, category *models.Category) error {
	defer s.lockWrite()()
	if s.categorySlugTaken(category.Slug, 0) {
		return ErrConflict
	}
	stamp(&category.Base, s.t.next("categories"))
	s.t.categories[category.ID] = *category
	return nil
}

func (s *MemoryStore) UpdateCategory(ctx context.Context, category *models.Category) error {
	defer s.lockWrite()()
	existing, ok := s.t.categories[category.ID]
	if !ok {
		return ErrNotFound
	}
	if s.categorySlugTaken(category.Slug, category.ID) {
		return ErrConflict
	}
	category.CreatedAt = existing.CreatedAt
	category.UpdatedAt = time.Now()
	s.t.categories[category.ID] = *category
	return nil
}

func (s *MemoryStore) DeleteCategory(ctx context.Context, id uint) error {
	defer s.lockWrite()()
	if _, ok := s.t.categories[id]; !ok {
		return ErrNotFound
	}
	delete(s.t.categories, id)
	return nil
}

// Cart

func (s *MemoryStore) ListCartItems(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByID(s.t.cartItems, func(v models.CartItem) bool { return v.SessionID == sessionID }), nil
}

func (s *MemoryStore) GetCartItem(ctx context.Context, id uint) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.t.cartItems[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (s *MemoryStore) AddCartItem(ctx context.Context, sessionID string, productID uint, quantity int) (*models.CartItem, bool, error) {
	defer s.lockWrite()()
	for id, item := range s.t.cartItems {
		if item.SessionID == sessionID && item.ProductID == productID {
			item.Quantity += quantity
			item.UpdatedAt = time.Now()
			s.t.cartItems[id] = item
			return &item, false, nil
		}
	}
	item := models.CartItem{SessionID: sessionID, ProductID: productID, Quantity: quantity}
	stamp(&item.Base, s.t.next("cart_items"))
	s.t.cartItems[item.ID] = item
	return &item, true, nil
}

func (s *MemoryStore) SetCartItemQuantity(ctx context.Context, id uint, quantity int) (*models.CartItem, error) {
	defer s.lockWrite()()
	item, ok := s.t.cartItems[id]
	if !ok {
		return nil, ErrNotFound
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	s.t.cartItems[id] = item
	return &item, nil
}

func (s *MemoryStore) DeleteCartItem(ctx context.Context, id uint) error {
	defer s.lockWrite()()
	if _, ok := s.t.cartItems[id]; !ok {
		return ErrNotFound
	}
	delete(s.t.cartItems, id)
	return nil
}

func (s *MemoryStore) ClearCart(ctx context.Context, sessionID string) error {
	defer s.lockWrite()()
	maps.DeleteFunc(s.t.cartItems, func(_ uint, v models.CartItem) bool { return v.SessionID == sessionID })
	return nil
}

// Orders

func (s *MemoryStore) CreateOrder(ctx context.Context, order *models.Order) error {
	defer s.lockWrite()()
	stamp(&order.Base, s.t.next("orders"))
	for i := range order.OrderItems {
		item := &order.OrderItems[i]
		stamp(&item.Base, s.t.next("order_items"))
		item.OrderID = order.ID
		s.t.orderItems[item.ID] = *item
	}
	header := *order
	header.OrderItems = nil
	s.t.orders[order.ID] = header
	return nil
}

func (s *MemoryStore) withItems(order models.Order) models.Order {
	order.OrderItems = sortedByID(s.t.orderItems, func(v models.OrderItem) bool { return v.OrderID == order.ID })
	return order
}

func (s *MemoryStore) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.t.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	order = s.withItems(order)
	return &order, nil
}

func (s *MemoryStore) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := sortedByID(s.t.orders, func(o models.Order) bool {
		return filter.Status == "" || o.Status == filter.Status
	})
	slices.Reverse(orders)
	for i := range orders {
		orders[i] = s.withItems(orders[i])
	}
	return orders, nil
}

func (s *MemoryStore) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	defer s.lockWrite()()
	order, ok := s.t.orders[id]
	if !ok {
		return ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	s.t.orders[id] = order
	return nil
}

func (s *MemoryStore) ClaimOrderPayment(ctx context.Context, id uint) error {
	defer s.lockWrite()()
	order, ok := s.t.orders[id]
	if !ok {
		return ErrNotFound
	}
	if order.PaymentStatus != models.PaymentStatusUnpaid && order.PaymentStatus != models.PaymentStatusFailed {
		return ErrConflict
	}
	order.PaymentStatus = models.PaymentStatusProcessing
	order.UpdatedAt = time.Now()
	s.t.orders[id] = order
	return nil
}

func (s *MemoryStore) MarkOrderPaid(ctx context.Context, id uint, paymentID string) error {
	defer s.lockWrite()()
	order, ok := s.t.orders[id]
	if !ok {
		return ErrNotFound
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		return ErrConflict
	}
	order.PaymentStatus = models.PaymentStatusPaid
	order.PaymentID = &paymentID
	order.UpdatedAt = time.Now()
	s.t.orders[id] = order
	return nil
}

func (s *MemoryStore) MarkOrderPaymentFailed(ctx context.Context, id uint) error {
	defer s.lockWrite()()
	order, ok := s.t.orders[id]
	if !ok {
		return ErrNotFound
	}
	if order.PaymentStatus != models.PaymentStatusPaid {
		order.PaymentStatus = models.PaymentStatusFailed
		order.UpdatedAt = time.Now()
		s.t.orders[id] = order
	}
	return nil
}

func (s *MemoryStore) CreateShippingLabel(ctx context.Context, label *models.ShippingLabel) error {
	defer s.lockWrite()()
	for _, l := range s.t.labels {
		if l.TrackingNumber == label.TrackingNumber {
			return ErrConflict
		}
	}
	stamp(&label.Base, s.t.next("shipping_labels"))
	s.t.labels[label.ID] = *label
	return nil
}

func (s *MemoryStore) ListShippingLabels(ctx context.Context, orderID uint) ([]models.ShippingLabel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByID(s.t.labels, func(v models.ShippingLabel) bool { return v.OrderID == orderID }), nil
}

// Users

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	defer s.lockWrite()()
	for _, u := range s.t.users {
		if u.Username == user.Username || u.Email == user.Email {
			return ErrConflict
		}
	}
	stamp(&user.Base, s.t.next("users"))
	s.t.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.t.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.t.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.t.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CountUsers(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.t.users)), nil
}

// Inbox

func (s *MemoryStore) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	defer s.lockWrite()()
	stamp(&msg.Base, s.t.next("contact_messages"))
	s.t.messages[msg.ID] = *msg
	return nil
}

func (s *MemoryStore) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages := sortedByID(s.t.messages, nil)
	slices.Reverse(messages)
	return messages, nil
}

func (s *MemoryStore) CreateSubscriber(ctx context.Context, sub *models.NewsletterSubscriber) error {
	defer s.lockWrite()()
	for _, existing := range s.t.subscribers {
		if existing.Email == sub.Email {
			return ErrConflict
		}
	}
	stamp(&sub.Base, s.t.next("newsletter_subscribers"))
	s.t.subscribers[sub.ID] = *sub
	return nil
}

func (s *MemoryStore) GetSubscriberByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.t.subscribers {
		if sub.Email == email {
			return &sub, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByID(s.t.subscribers, nil), nil
}

// Blog

func (s *MemoryStore) ListPosts(ctx context.Context, filter BlogPostFilter) ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := sortedByID(s.t.posts, func(p models.BlogPost) bool {
		if filter.PublishedOnly && !p.Published {
			return false
		}
		if filter.CategoryID != nil {
			for _, link := range s.t.postCategories {
				if link.PostID == p.ID && link.CategoryID == *filter.CategoryID {
					return true
				}
			}
			return false
		}
		return true
	})
	slices.Reverse(posts)
	return posts, nil
}

func (s *MemoryStore) GetPost(ctx context.Context, id uint) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.t.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.t.posts {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) postSlugTaken(slug string, except uint) bool {
	for id, p := range s.t.posts {
		if p.Slug == slug && id != except {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreatePost(ctx context.Context, post *models.BlogPost) error {
	defer s.lockWrite()()
	if s.postSlugTaken(post.Slug, 0) {
		return ErrConflict
	}
	stamp(&post.Base, s.t.next("blog_posts"))
	stored := *post
	stored.Categories = nil
	s.t.posts[post.ID] = stored
	return nil
}

func (s *MemoryStore) UpdatePost(ctx context.Context, post *models.BlogPost) error {
	defer s.lockWrite()()
	existing, ok := s.t.posts[post.ID]
	if !ok {
		return ErrNotFound
	}
	if s.postSlugTaken(post.Slug, post.ID) {
		return ErrConflict
	}
	post.CreatedAt = existing.CreatedAt
	post.UpdatedAt = time.Now()
	stored := *post
	stored.Categories = nil
	s.t.posts[post.ID] = stored
	return nil
}

func (s *MemoryStore) DeletePost(ctx context.Context, id uint) error {
	defer s.lockWrite()()
	if _, ok := s.t.posts[id]; !ok {
		return ErrNotFound
	}
	delete(s.t.posts, id)
	maps.DeleteFunc(s.t.postCategories, func(_ uint, v models.BlogPostCategory) bool { return v.PostID == id })
	return nil
}

func (s *MemoryStore) SetPostCategories(ctx context.Context, postID uint, categoryIDs []uint) error {
	defer s.lockWrite()()
	maps.DeleteFunc(s.t.postCategories, func(_ uint, v models.BlogPostCategory) bool { return v.PostID == postID })
	seen := map[uint]bool{}
	for _, categoryID := range categoryIDs {
		if seen[categoryID] {
			return ErrConflict
		}
		seen[categoryID] = true
		link := models.BlogPostCategory{PostID: postID, CategoryID: categoryID}
		stamp(&link.Base, s.t.next("blog_post_categories"))
		s.t.postCategories[link.ID] = link
	}
	return nil
}

func (s *MemoryStore) ListPostCategories(ctx context.Context, postID uint) ([]models.BlogCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	linked := map[uint]bool{}
	for _, link := range s.t.postCategories {
		if link.PostID == postID {
			linked[link.CategoryID] = true
		}
	}
	return sortedByID(s.t.blogCategories, func(c models.BlogCategory) bool { return linked[c.ID] }), nil
}

func (s *MemoryStore) ListBlogCategories(ctx context.Context) ([]models.BlogCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByID(s.t.blogCategories, nil), nil
}

func (s *MemoryStore) GetBlogCategoryBySlug(ctx context.Context, slug string) (*models.BlogCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.t.blogCategories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateBlogCategory(ctx context.Context, category *models.BlogCategory) error {
	defer s.lockWrite()()
	for _, c := range s.t.blogCategories {
		if c.Slug == category.Slug {
			return ErrConflict
		}
	}
	stamp(&category.Base, s.t.next("blog_categories"))
	s.t.blogCategories[category.ID] = *category
	return nil
}

var _ Storage = (*MemoryStore)(nil)
