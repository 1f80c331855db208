package payments

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	squareSandboxURL    = "https://connect.squareupsandbox.com"
	squareProductionURL = "https://connect.squareup.com"
	squareAPIVersion    = "2024-01-18"
)

type SquareConfig struct {
	AccessToken string
	LocationID  string
	Environment string
	Currency    string
	Timeout     time.Duration
	// BaseURL overrides the environment derived endpoint.
	BaseURL string
}

type SquareGateway struct {
	client     *resty.Client
	locationID string
	currency   string
}

type squareMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type squarePaymentRequest struct {
	SourceID          string      `json:"source_id"`
	IdempotencyKey    string      `json:"idempotency_key"`
	AmountMoney       squareMoney `json:"amount_money"`
	LocationID        string      `json:"location_id,omitempty"`
	ReferenceID       string      `json:"reference_id,omitempty"`
	BuyerEmailAddress string      `json:"buyer_email_address,omitempty"`
	Note              string      `json:"note,omitempty"`
}

type squarePaymentResponse struct {
	Payment struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"payment"`
}

type squareErrorResponse struct {
	Errors []struct {
		Category string `json:"category"`
		Code     string `json:"code"`
		Detail   string `json:"detail"`
	} `json:"errors"`
}

func NewSquareGateway(cfg SquareConfig) *SquareGateway {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = squareSandboxURL
		if cfg.Environment == "production" {
			baseURL = squareProductionURL
		}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	currency := cfg.Currency
	if currency == "" {
		currency = "USD"
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(cfg.AccessToken).
		SetHeaders(map[string]string{
			"Square-Version": squareAPIVersion,
			"Accept":         "application/json",
			"Content-Type":   "application/json",
		})

	return &SquareGateway{client: client, locationID: cfg.LocationID, currency: currency}
}

func (g *SquareGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.SourceID == "" {
		return nil, ErrMissingSource
	}

	body := squarePaymentRequest{
		SourceID:       req.SourceID,
		IdempotencyKey: idempotencyKey(req),
		AmountMoney: squareMoney{
			Amount:   ToCents(req.Amount),
			Currency: g.currency,
		},
		LocationID:        g.locationID,
		ReferenceID:       req.OrderRef,
		BuyerEmailAddress: req.BuyerEmail,
		Note:              "Payment for order #" + req.OrderRef,
	}

	var result squarePaymentResponse
	var failure squareErrorResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&failure).
		Post("/v2/payments")
	if err != nil {
		return nil, fmt.Errorf("payments: square request failed: %w", err)
	}

	if resp.IsError() {
		log.Printf("Square error: status=%d body=%s", resp.StatusCode(), resp.Body())
		if len(failure.Errors) > 0 {
			detail := failure.Errors[0].Detail
			if detail == "" {
				detail = "Payment processing failed"
			}
			return nil, &DeclineError{Code: failure.Errors[0].Code, Detail: detail}
		}
		return nil, &DeclineError{Detail: "Payment processing failed (status " + strconv.Itoa(resp.StatusCode()) + ")"}
	}

	switch result.Payment.Status {
	case "FAILED", "CANCELED":
		return nil, &DeclineError{Code: result.Payment.Status, Detail: "Payment was not completed"}
	}
	if result.Payment.ID == "" {
		return nil, fmt.Errorf("payments: square response carried no payment id")
	}

	return &ChargeResult{PaymentID: result.Payment.ID, Status: result.Payment.Status}, nil
}
