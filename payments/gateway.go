package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrMissingSource = errors.New("payments: payment source token is required")

type ChargeRequest struct {
	SourceID       string
	Amount         decimal.Decimal
	OrderRef       string
	BuyerEmail     string
	IdempotencyKey string
}

type ChargeResult struct {
	PaymentID string
	Status    string
}

// DeclineError carries the gateway's human readable reason for a refused charge.
type DeclineError struct {
	Code   string
	Detail string
}

func (e *DeclineError) Error() string {
	if e.Code == "" {
		return "payment declined: " + e.Detail
	}
	return fmt.Sprintf("payment declined (%s): %s", e.Code, e.Detail)
}

type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// ToCents converts a dollar amount into the smallest currency unit.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

func idempotencyKey(req ChargeRequest) string {
	if req.IdempotencyKey != "" {
		return req.IdempotencyKey
	}
	return uuid.NewString()
}

// ManualGateway records the client-side token as the payment id without
// contacting a processor. It is used when no processor credentials are set.
type ManualGateway struct{}

func (ManualGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.SourceID == "" {
		return nil, ErrMissingSource
	}
	return &ChargeResult{PaymentID: req.SourceID, Status: "COMPLETED"}, nil
}
