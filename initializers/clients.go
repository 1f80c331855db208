package initializers

import (
	"context"
	"log"

	"github.com/Kariqs/justdrops-api/payments"
	"github.com/Kariqs/justdrops-api/utils"
)

// NewGateway returns the Square adapter, or the manual gateway when no access
// token is configured.
func NewGateway(cfg SquareConfig) payments.Gateway {
	if cfg.AccessToken == "" {
		log.Println("WARNING: SQUARE_ACCESS_TOKEN not set, payments are recorded without charging a card")
		return payments.ManualGateway{}
	}
	return payments.NewSquareGateway(payments.SquareConfig{
		AccessToken: cfg.AccessToken,
		LocationID:  cfg.LocationID,
		Environment: cfg.Environment,
		Currency:    cfg.Currency,
		Timeout:     cfg.Timeout,
	})
}

func NewMailer(cfg SMTPConfig) utils.Mailer {
	if cfg.Address == "" || cfg.From == "" {
		log.Println("SMTP not configured, order e-mails are logged only")
		return utils.LogMailer{}
	}
	return utils.NewSMTPMailer(utils.SMTPConfig{
		Address:  cfg.Address,
		From:     cfg.From,
		Password: cfg.Password,
		Host:     cfg.Host,
	})
}

// NewUploader returns nil when no bucket is configured; image uploads are
// then rejected while URL-based images keep working.
func NewUploader(ctx context.Context, cfg S3Config) (utils.Uploader, error) {
	if cfg.Bucket == "" {
		log.Println("S3_BUCKET not set, image uploads disabled")
		return nil, nil
	}
	uploader, err := utils.NewS3Uploader(ctx, cfg.Region, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	return uploader, nil
}
