package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Kariqs/justdrops-api/models"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteStore(t *testing.T) Storage {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))
	return NewGormStore(db)
}

func newMemStore(t *testing.T) Storage {
	return NewMemoryStore()
}

var backends = map[string]func(t *testing.T) Storage{
	"memory": newMemStore,
	"sqlite": newSQLiteStore,
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s Storage)) {
	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			fn(t, newStore(t))
		})
	}
}

func PtrTo[T any](v T) *T {
	return &v
}

func seedProduct(t *testing.T, s Storage, slug string, categoryID uint, inventory int) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:        "Product " + slug,
		Slug:        slug,
		Description: "A very useful " + slug,
		Price:       decimal.RequireFromString("19.99"),
		ImageUrl:    "https://img.example/" + slug + ".jpg",
		CategoryID:  categoryID,
		Inventory:   inventory,
	}
	require.NoError(t, s.CreateProduct(context.Background(), p))
	return p
}

func TestProducts_CreateAndLookup(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		p := seedProduct(t, s, "phone-case", 1, 10)
		require.NotZero(t, p.ID)

		got, err := s.GetProductBySlug(ctx, "phone-case")
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.True(t, got.Price.Equal(decimal.RequireFromString("19.99")), got.Price.String())

		_, err = s.GetProduct(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)

		dup := &models.Product{Name: "Dup", Slug: "phone-case", Description: "x", ImageUrl: "x", CategoryID: 1}
		assert.ErrorIs(t, s.CreateProduct(ctx, dup), ErrConflict)
	})
}

func TestProducts_ListFilters(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		a := seedProduct(t, s, "wireless-charger", 1, 5)
		seedProduct(t, s, "usb-cable", 2, 5)
		a.Featured = true
		require.NoError(t, s.UpdateProduct(ctx, a))

		all, err := s.ListProducts(ctx, ProductFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		byCategory, err := s.ListProducts(ctx, ProductFilter{CategoryID: PtrTo(uint(2))})
		require.NoError(t, err)
		require.Len(t, byCategory, 1)
		assert.Equal(t, "usb-cable", byCategory[0].Slug)

		featured, err := s.ListProducts(ctx, ProductFilter{Featured: PtrTo(true)})
		require.NoError(t, err)
		require.Len(t, featured, 1)
		assert.Equal(t, a.ID, featured[0].ID)

		searched, err := s.ListProducts(ctx, ProductFilter{Search: "CHARGER"})
		require.NoError(t, err)
		require.Len(t, searched, 1)
		assert.Equal(t, "wireless-charger", searched[0].Slug)
	})
}

func TestProducts_DeleteRemovesChildren(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		p := seedProduct(t, s, "lamp", 1, 1)
		require.NoError(t, s.CreateSpecification(ctx, &models.ProductSpecification{ProductID: p.ID, Key: "Color", Value: "Black"}))
		require.NoError(t, s.CreateImage(ctx, &models.ProductImage{ProductID: p.ID, Url: "https://img.example/lamp-2.jpg"}))

		require.NoError(t, s.DeleteProduct(ctx, p.ID))
		specs, err := s.ListSpecifications(ctx, p.ID)
		require.NoError(t, err)
		assert.Empty(t, specs)
		images, err := s.ListImages(ctx, p.ID)
		require.NoError(t, err)
		assert.Empty(t, images)

		assert.ErrorIs(t, s.DeleteProduct(ctx, p.ID), ErrNotFound)
	})
}

func TestSetInventory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		p := seedProduct(t, s, "mug", 1, 7)

		previous, err := s.SetInventory(ctx, p.ID, nil, 3)
		require.NoError(t, err)
		assert.Equal(t, 7, previous)

		_, err = s.SetInventory(ctx, p.ID, PtrTo(7), 10)
		assert.ErrorIs(t, err, ErrConflict)

		previous, err = s.SetInventory(ctx, p.ID, PtrTo(3), 0)
		require.NoError(t, err)
		assert.Equal(t, 3, previous)

		got, err := s.GetProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Inventory)

		_, err = s.SetInventory(ctx, 404, nil, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCart_AddIncrementsExistingRow(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		p := seedProduct(t, s, "socks", 1, 50)

		item, created, err := s.AddCartItem(ctx, "sess-1", p.ID, 2)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, 2, item.Quantity)

		again, created, err := s.AddCartItem(ctx, "sess-1", p.ID, 3)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, item.ID, again.ID)
		assert.Equal(t, 5, again.Quantity)

		_, _, err = s.AddCartItem(ctx, "sess-2", p.ID, 1)
		require.NoError(t, err)

		items, err := s.ListCartItems(ctx, "sess-1")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity)

		require.NoError(t, s.ClearCart(ctx, "sess-1"))
		items, err = s.ListCartItems(ctx, "sess-1")
		require.NoError(t, err)
		assert.Empty(t, items)

		other, err := s.ListCartItems(ctx, "sess-2")
		require.NoError(t, err)
		assert.Len(t, other, 1)
	})
}

func TestCart_QuantityAndDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		p := seedProduct(t, s, "hat", 1, 5)
		item, _, err := s.AddCartItem(ctx, "sess", p.ID, 1)
		require.NoError(t, err)

		updated, err := s.SetCartItemQuantity(ctx, item.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, updated.Quantity)

		_, err = s.SetCartItemQuantity(ctx, 999, 4)
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, s.DeleteCartItem(ctx, item.ID))
		assert.ErrorIs(t, s.DeleteCartItem(ctx, item.ID), ErrNotFound)
	})
}

func newOrder() *models.Order {
	return &models.Order{
		FullName:      "Ada Lovelace",
		Email:         "ada@example.com",
		Address:       "1 Analytical Way",
		City:          "London",
		State:         "LN",
		ZipCode:       "12345",
		TotalAmount:   decimal.RequireFromString("39.98"),
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
		OrderItems: []models.OrderItem{
			{ProductID: 1, ProductName: "Socks", Quantity: 2, Price: decimal.RequireFromString("19.99")},
		},
	}
}

func TestOrders_CreateAndPay(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		order := newOrder()
		require.NoError(t, s.CreateOrder(ctx, order))
		require.NotZero(t, order.ID)

		got, err := s.GetOrder(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, got.OrderItems, 1)
		assert.Equal(t, "Socks", got.OrderItems[0].ProductName)
		assert.Equal(t, order.ID, got.OrderItems[0].OrderID)
		assert.Nil(t, got.PaymentID)

		require.NoError(t, s.MarkOrderPaymentFailed(ctx, order.ID))
		got, err = s.GetOrder(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusFailed, got.PaymentStatus)

		require.NoError(t, s.MarkOrderPaid(ctx, order.ID, "pay_123"))
		got, err = s.GetOrder(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, got.PaymentStatus)
		assert.Equal(t, models.OrderStatusPending, got.Status)
		require.NotNil(t, got.PaymentID)
		assert.Equal(t, "pay_123", *got.PaymentID)

		assert.ErrorIs(t, s.MarkOrderPaid(ctx, order.ID, "pay_456"), ErrConflict)
		assert.ErrorIs(t, s.MarkOrderPaid(ctx, 999, "pay_456"), ErrNotFound)
	})
}

func TestOrders_ClaimPayment(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		order := newOrder()
		require.NoError(t, s.CreateOrder(ctx, order))

		require.NoError(t, s.ClaimOrderPayment(ctx, order.ID))
		assert.ErrorIs(t, s.ClaimOrderPayment(ctx, order.ID), ErrConflict)
		assert.ErrorIs(t, s.ClaimOrderPayment(ctx, 999), ErrNotFound)

		got, err := s.GetOrder(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusProcessing, got.PaymentStatus)

		require.NoError(t, s.MarkOrderPaymentFailed(ctx, order.ID))
		require.NoError(t, s.ClaimOrderPayment(ctx, order.ID))
		require.NoError(t, s.MarkOrderPaid(ctx, order.ID, "pay_1"))
		assert.ErrorIs(t, s.ClaimOrderPayment(ctx, order.ID), ErrConflict)
	})
}

func TestOrders_StatusAndList(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		first, second := newOrder(), newOrder()
		require.NoError(t, s.CreateOrder(ctx, first))
		require.NoError(t, s.CreateOrder(ctx, second))

		require.NoError(t, s.UpdateOrderStatus(ctx, second.ID, models.OrderStatusShipped))
		assert.ErrorIs(t, s.UpdateOrderStatus(ctx, 999, models.OrderStatusShipped), ErrNotFound)

		shipped, err := s.ListOrders(ctx, OrderFilter{Status: models.OrderStatusShipped})
		require.NoError(t, err)
		require.Len(t, shipped, 1)
		assert.Equal(t, second.ID, shipped[0].ID)

		all, err := s.ListOrders(ctx, OrderFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		boom := errors.New("boom")

		err := s.WithTx(ctx, func(tx Storage) error {
			if err := tx.CreateCategory(ctx, &models.Category{Name: "Audio", Slug: "audio"}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = s.GetCategoryBySlug(ctx, "audio")
		assert.ErrorIs(t, err, ErrNotFound)

		err = s.WithTx(ctx, func(tx Storage) error {
			return tx.CreateCategory(ctx, &models.Category{Name: "Audio", Slug: "audio"})
		})
		require.NoError(t, err)
		_, err = s.GetCategoryBySlug(ctx, "audio")
		assert.NoError(t, err)
	})
}

func TestMemoryStore_RollbackKeepsConcurrentWrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	boom := errors.New("boom")
	const adds = 500

	done := make(chan struct{})
	var rollbacks sync.WaitGroup
	rollbacks.Add(1)
	go func() {
		defer rollbacks.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			_ = s.WithTx(ctx, func(tx Storage) error {
				if _, _, err := tx.AddCartItem(ctx, "doomed", 1, 1); err != nil {
					return err
				}
				return boom
			})
		}
	}()

	var writers sync.WaitGroup
	for i := range adds {
		writers.Add(1)
		go func() {
			defer writers.Done()
			_, _, err := s.AddCartItem(ctx, fmt.Sprintf("session-%d", i), 1, 1)
			assert.NoError(t, err)
		}()
	}
	writers.Wait()
	close(done)
	rollbacks.Wait()

	for i := range adds {
		items, err := s.ListCartItems(ctx, fmt.Sprintf("session-%d", i))
		require.NoError(t, err)
		require.Len(t, items, 1, "session-%d lost its cart row", i)
	}
	doomed, err := s.ListCartItems(ctx, "doomed")
	require.NoError(t, err)
	assert.Empty(t, doomed)
}

func TestMemoryStore_TxIsolatedUntilCommit(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx Storage) error {
		require.NoError(t, tx.CreateCategory(ctx, &models.Category{Name: "Audio", Slug: "audio"}))
		_, err := s.GetCategoryBySlug(ctx, "audio")
		assert.ErrorIs(t, err, ErrNotFound)
		return nil
	})
	require.NoError(t, err)

	_, err = s.GetCategoryBySlug(ctx, "audio")
	assert.NoError(t, err)
}

func TestInbox_SubscriberUnique(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		require.NoError(t, s.CreateSubscriber(ctx, &models.NewsletterSubscriber{Email: "a@example.com"}))
		assert.ErrorIs(t, s.CreateSubscriber(ctx, &models.NewsletterSubscriber{Email: "a@example.com"}), ErrConflict)

		require.NoError(t, s.CreateContactMessage(ctx, &models.ContactMessage{Name: "A", Email: "a@example.com", Message: "hi"}))
		messages, err := s.ListContactMessages(ctx)
		require.NoError(t, err)
		assert.Len(t, messages, 1)
	})
}

func TestUsers_Unique(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		require.NoError(t, s.CreateUser(ctx, &models.User{Username: "admin", Email: "admin@example.com", Password: "x", IsAdmin: true}))
		assert.ErrorIs(t, s.CreateUser(ctx, &models.User{Username: "admin", Email: "other@example.com", Password: "x"}), ErrConflict)

		count, err := s.CountUsers(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)

		u, err := s.GetUserByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.True(t, u.IsAdmin)
	})
}

func TestBlog_PostsByCategoryAndVisibility(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		news := &models.BlogCategory{Name: "News", Slug: "news"}
		guides := &models.BlogCategory{Name: "Guides", Slug: "guides"}
		require.NoError(t, s.CreateBlogCategory(ctx, news))
		require.NoError(t, s.CreateBlogCategory(ctx, guides))

		live := &models.BlogPost{Title: "Live", Slug: "live", Content: "c", AuthorID: 1, Published: true}
		draft := &models.BlogPost{Title: "Draft", Slug: "draft", Content: "c", AuthorID: 1}
		require.NoError(t, s.CreatePost(ctx, live))
		require.NoError(t, s.CreatePost(ctx, draft))
		require.NoError(t, s.SetPostCategories(ctx, live.ID, []uint{news.ID}))
		require.NoError(t, s.SetPostCategories(ctx, draft.ID, []uint{news.ID, guides.ID}))

		published, err := s.ListPosts(ctx, BlogPostFilter{PublishedOnly: true})
		require.NoError(t, err)
		require.Len(t, published, 1)
		assert.Equal(t, "live", published[0].Slug)

		inGuides, err := s.ListPosts(ctx, BlogPostFilter{CategoryID: &guides.ID})
		require.NoError(t, err)
		require.Len(t, inGuides, 1)
		assert.Equal(t, "draft", inGuides[0].Slug)

		cats, err := s.ListPostCategories(ctx, draft.ID)
		require.NoError(t, err)
		assert.Len(t, cats, 2)

		require.NoError(t, s.DeletePost(ctx, draft.ID))
		inGuides, err = s.ListPosts(ctx, BlogPostFilter{CategoryID: &guides.ID})
		require.NoError(t, err)
		assert.Empty(t, inGuides)
	})
}

func TestGormStore_PingContext(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: db, SkipInitializeWithVersion: true}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	s := NewGormStore(gdb)

	mock.ExpectPing()
	assert.NoError(t, s.PingContext(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, s.PingContext(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}
