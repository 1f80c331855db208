package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Kariqs/justdrops-api/models"
	"github.com/Kariqs/justdrops-api/store"
)

type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required,max=5000"`
}

type SubscribeInput struct {
	Email string `json:"email" binding:"required,email"`
}

type InboxService struct {
	store store.Storage
}

func NewInboxService(s store.Storage) *InboxService {
	return &InboxService{store: s}
}

func (i *InboxService) SubmitContact(ctx context.Context, in ContactInput) (*models.ContactMessage, error) {
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	msg := &models.ContactMessage{Name: in.Name, Email: in.Email, Phone: in.Phone, Message: in.Message}
	if err := i.store.CreateContactMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (i *InboxService) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	return i.store.ListContactMessages(ctx)
}

func (i *InboxService) Subscribe(ctx context.Context, in SubscribeInput) (*models.NewsletterSubscriber, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" {
		return nil, invalid("Email required")
	}
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	if _, err := i.store.GetSubscriberByEmail(ctx, in.Email); err == nil {
		return nil, newError(ErrConflict, "Email already subscribed")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	sub := &models.NewsletterSubscriber{Email: in.Email}
	if err := i.store.CreateSubscriber(ctx, sub); err != nil {
		return nil, conflict(err, "Email already subscribed")
	}
	return sub, nil
}

func (i *InboxService) ListSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	return i.store.ListSubscribers(ctx)
}
