package adapter

import "context"

// OutgoingEmail is a fully rendered message ready for delivery.
type OutgoingEmail struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// DeliveryReceipt is what the provider hands back for an accepted message.
type DeliveryReceipt struct {
	ProviderID string
}

// EmailSender delivers rendered messages. Implementations return an
// *error.EmailError so callers can tell permanent rejections from retryable ones.
type EmailSender interface {
	Send(ctx context.Context, email OutgoingEmail) (*DeliveryReceipt, error)
}
