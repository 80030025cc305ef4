package adapter

import (
	"context"

	"github.com/freight-backoffice/backend/internal/domain/entity"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// PickupNotifier announces newly scheduled pickup orders.
type PickupNotifier interface {
	NotifyPickupScheduled(ctx context.Context, order *entity.PickupOrder) error
}
