package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/Kariqs/justdrops-api/models"
	"github.com/Kariqs/justdrops-api/payments"
	"github.com/Kariqs/justdrops-api/store"
	"github.com/Kariqs/justdrops-api/utils"
	"github.com/shopspring/decimal"
)

type CheckoutInput struct {
	UserID      *uint           `json:"userId"`
	FullName    string          `json:"fullName" binding:"required"`
	Email       string          `json:"email" binding:"required,email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address" binding:"required"`
	City        string          `json:"city" binding:"required"`
	State       string          `json:"state" binding:"required"`
	ZipCode     string          `json:"zipCode" binding:"required"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type PaymentInput struct {
	SourceID string `json:"sourceId"`
	// PaymentID is the field name older clients send the card token under.
	PaymentID      string           `json:"paymentId"`
	Amount         *decimal.Decimal `json:"amount"`
	IdempotencyKey string           `json:"idempotencyKey"`
}

func (in PaymentInput) token() string {
	if in.SourceID != "" {
		return in.SourceID
	}
	return in.PaymentID
}

type OrderOptions struct {
	// EnforceTotals rejects checkouts whose client total disagrees with the
	// cart subtotal instead of only logging the mismatch.
	EnforceTotals bool
	LogoURL       string
}

type OrderService struct {
	store   store.Storage
	gateway payments.Gateway
	mailer  utils.Mailer
	opts    OrderOptions
}

func NewOrderService(s store.Storage, gateway payments.Gateway, mailer utils.Mailer, opts OrderOptions) *OrderService {
	return &OrderService{store: s, gateway: gateway, mailer: mailer, opts: opts}
}

// Create turns the session's cart into an order. The header, the item
// snapshots and the cart clear commit together.
func (o *OrderService) Create(ctx context.Context, sessionID string, in CheckoutInput) (*models.Order, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	if in.TotalAmount.IsNegative() {
		return nil, invalid("totalAmount must not be negative")
	}

	var order *models.Order
	err := o.store.WithTx(ctx, func(tx store.Storage) error {
		cartItems, err := tx.ListCartItems(ctx, sessionID)
		if err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(cartItems))
		subtotal := decimal.Zero
		for _, cartItem := range cartItems {
			product, err := tx.GetProduct(ctx, cartItem.ProductID)
			if errors.Is(err, store.ErrNotFound) {
				log.Printf("checkout: session %s references deleted product %d, skipping", sessionID, cartItem.ProductID)
				continue
			}
			if err != nil {
				return err
			}
			item := models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    cartItem.Quantity,
				Price:       product.Price,
			}
			subtotal = subtotal.Add(item.LineTotal())
			items = append(items, item)
		}
		if len(items) == 0 {
			return newError(ErrEmptyCart, "Cart is empty")
		}

		if !subtotal.Equal(in.TotalAmount) {
			if o.opts.EnforceTotals {
				return invalid("totalAmount %s does not match cart subtotal %s", in.TotalAmount.StringFixed(2), subtotal.StringFixed(2))
			}
			log.Printf("checkout: session %s total %s differs from cart subtotal %s", sessionID, in.TotalAmount.StringFixed(2), subtotal.StringFixed(2))
		}

		order = &models.Order{
			UserID:        in.UserID,
			FullName:      in.FullName,
			Email:         in.Email,
			Phone:         in.Phone,
			Address:       in.Address,
			City:          in.City,
			State:         in.State,
			ZipCode:       in.ZipCode,
			TotalAmount:   in.TotalAmount,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusUnpaid,
			OrderItems:    items,
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		return tx.ClearCart(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (o *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	order, err := o.store.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "Order not found")
	}
	return order, nil
}

func (o *OrderService) List(ctx context.Context, status string) ([]models.Order, error) {
	if status != "" && !models.IsOrderStatus(status) {
		return nil, invalid("Unknown order status %q", status)
	}
	return o.store.ListOrders(ctx, store.OrderFilter{Status: status})
}

// Pay charges the stored order total against the client's card token. The
// order is claimed before the gateway is called so concurrent requests for
// the same order cannot both capture a charge. A decline releases the claim
// as failed and leaves the lifecycle status alone.
func (o *OrderService) Pay(ctx context.Context, id uint, in PaymentInput) (*models.Order, error) {
	token := in.token()
	if token == "" {
		return nil, invalid("Payment ID required")
	}

	order, err := o.store.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "Order not found")
	}
	if err := paymentConflict(order.PaymentStatus); err != nil {
		return nil, err
	}
	if in.Amount != nil && !in.Amount.Equal(order.TotalAmount) {
		return nil, invalid("amount %s does not match order total %s", in.Amount.StringFixed(2), order.TotalAmount.StringFixed(2))
	}

	if err := o.store.ClaimOrderPayment(ctx, order.ID); err != nil {
		if errors.Is(err, store.ErrConflict) {
			if current, getErr := o.store.GetOrder(ctx, order.ID); getErr == nil {
				if conflictErr := paymentConflict(current.PaymentStatus); conflictErr != nil {
					return nil, conflictErr
				}
			}
			return nil, newError(ErrConflict, "Payment already in progress")
		}
		return nil, notFound(err, "Order not found")
	}

	// The claim must be settled even if the client goes away mid-charge.
	settleCtx := context.WithoutCancel(ctx)

	result, err := o.gateway.Charge(ctx, payments.ChargeRequest{
		SourceID:       token,
		Amount:         order.TotalAmount,
		OrderRef:       strconv.FormatUint(uint64(order.ID), 10),
		BuyerEmail:     order.Email,
		IdempotencyKey: in.IdempotencyKey,
	})
	if err != nil {
		log.Printf("payment: order %d charge failed: %v", order.ID, err)
		if markErr := o.store.MarkOrderPaymentFailed(settleCtx, order.ID); markErr != nil {
			log.Printf("payment: order %d could not be marked failed: %v", order.ID, markErr)
		}
		message := "Payment processing failed"
		var decline *payments.DeclineError
		if errors.As(err, &decline) {
			message = decline.Detail
		}
		return nil, newError(ErrPaymentFailed, "%s", message)
	}

	if err := o.store.MarkOrderPaid(settleCtx, order.ID, result.PaymentID); err != nil {
		log.Printf("payment: order %d captured payment %s but it could not be recorded: %v", order.ID, result.PaymentID, err)
		return nil, newError(ErrPaymentUnrecorded, "Payment %s was captured but could not be recorded; contact support with this reference", result.PaymentID)
	}

	paid, err := o.store.GetOrder(settleCtx, order.ID)
	if err != nil {
		return nil, err
	}
	o.sendConfirmation(paid)
	return paid, nil
}

func paymentConflict(status string) error {
	switch status {
	case models.PaymentStatusPaid:
		return newError(ErrConflict, "Order is already paid")
	case models.PaymentStatusProcessing:
		return newError(ErrConflict, "Payment already in progress")
	}
	return nil
}

func (o *OrderService) sendConfirmation(order *models.Order) {
	if o.mailer == nil {
		return
	}
	lines := make([]utils.EmailLine, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		lines = append(lines, utils.EmailLine{Name: item.ProductName, Quantity: item.Quantity, Price: item.Price.StringFixed(2)})
	}
	data := utils.EmailData{
		Name:    order.FullName,
		Message: "Your payment was received and your order is being prepared.",
		OrderID: order.ID,
		Items:   lines,
		Total:   order.TotalAmount.StringFixed(2),
		LogoURL: o.opts.LogoURL,
	}
	subject := fmt.Sprintf("Order #%d confirmation", order.ID)
	if err := o.mailer.SendEmail(order.Email, subject, data, "order_confirmation.html"); err != nil {
		log.Printf("payment: order %d confirmation email failed: %v", order.ID, err)
	}
}

// UpdateStatus sets any lifecycle status from any other. Transitions are
// not guarded, so a shipped order can be moved back to pending.
func (o *OrderService) UpdateStatus(ctx context.Context, admin Admin, id uint, status string) (*models.Order, error) {
	if !models.IsOrderStatus(status) {
		return nil, invalid("Unknown order status %q", status)
	}
	if err := o.store.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, notFound(err, "Order not found")
	}
	log.Printf("admin %s (id=%d) set order %d status to %s", admin.Username, admin.UserID, id, status)
	return o.store.GetOrder(ctx, id)
}

type BulkStatusInput struct {
	OrderIDs []uint `json:"orderIds" binding:"required,min=1"`
	Status   string `json:"status" binding:"required"`
}

// BulkUpdateStatus applies one status to every listed order or to none.
func (o *OrderService) BulkUpdateStatus(ctx context.Context, admin Admin, in BulkStatusInput) (int, error) {
	if err := validateStruct(&in); err != nil {
		return 0, err
	}
	if !models.IsOrderStatus(in.Status) {
		return 0, invalid("Unknown order status %q", in.Status)
	}

	err := o.store.WithTx(ctx, func(tx store.Storage) error {
		for _, id := range in.OrderIDs {
			if err := tx.UpdateOrderStatus(ctx, id, in.Status); err != nil {
				return notFound(err, "Order %d not found", id)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Printf("admin %s (id=%d) set %d orders to %s", admin.Username, admin.UserID, len(in.OrderIDs), in.Status)
	return len(in.OrderIDs), nil
}
