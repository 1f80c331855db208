package services

import (
	"context"
	"sync"
	"testing"

	"github.com/Kariqs/justdrops-api/models"
	"github.com/Kariqs/justdrops-api/payments"
	"github.com/Kariqs/justdrops-api/store"
	"github.com/Kariqs/justdrops-api/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu        sync.Mutex
	calls     []payments.ChargeRequest
	err       error
	paymentID string
}

func (f *fakeGateway) Charge(ctx context.Context, req payments.ChargeRequest) (*payments.ChargeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	id := f.paymentID
	if id == "" {
		id = "pay_test"
	}
	return &payments.ChargeResult{PaymentID: id, Status: "COMPLETED"}, nil
}

type sentMail struct {
	To       string
	Subject  string
	Data     utils.EmailData
	Template string
}

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (m *recordingMailer) SendEmail(to, subject string, data utils.EmailData, templateName string) error {
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Data: data, Template: templateName})
	return m.err
}

type fixture struct {
	store   *store.MemoryStore
	gateway *fakeGateway
	mailer  *recordingMailer
	svc     *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:   store.NewMemoryStore(),
		gateway: &fakeGateway{},
		mailer:  &recordingMailer{},
	}
	f.svc = New(Deps{
		Store:      f.store,
		Gateway:    f.gateway,
		Mailer:     f.mailer,
		JWTSecret:  "test-secret",
		SessionTTL: 0,
	})
	return f
}

var testAdmin = Admin{UserID: 1, Username: "admin"}

func (f *fixture) category(t *testing.T, slug string) *models.Category {
	t.Helper()
	c, err := f.svc.Catalog.CreateCategory(context.Background(), CategoryInput{Name: slug, Slug: slug})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, slug, price string, inventory int) *models.Product {
	t.Helper()
	category, err := f.store.GetCategoryBySlug(context.Background(), "general")
	if err != nil {
		category = f.category(t, "general")
	}
	p, err := f.svc.Catalog.CreateProduct(context.Background(), ProductInput{
		Name:        "Product " + slug,
		Slug:        slug,
		Description: "Description of " + slug,
		Price:       decimal.RequireFromString(price),
		ImageUrl:    "https://img.example/" + slug + ".jpg",
		CategoryID:  category.ID,
		Inventory:   inventory,
	})
	require.NoError(t, err)
	return p
}

func checkout(total string) CheckoutInput {
	return CheckoutInput{
		FullName:    "Ada Lovelace",
		Email:       "ada@example.com",
		Phone:       "555-0100",
		Address:     "1 Analytical Way",
		City:        "Phoenix",
		State:       "AZ",
		ZipCode:     "85001",
		TotalAmount: decimal.RequireFromString(total),
	}
}

func PtrTo[T any](v T) *T {
	return &v
}
