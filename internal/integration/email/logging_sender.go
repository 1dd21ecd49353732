package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/residence-hub/backend/internal/application/adapter"
)

// LoggingSender writes messages to the log instead of delivering them. It is
// used when no Resend API key is configured.
type LoggingSender struct {
	seq atomic.Int64
}

func NewLoggingSender() *LoggingSender {
	return &LoggingSender{}
}

func (s *LoggingSender) Send(ctx context.Context, email adapter.OutgoingEmail) (*adapter.DeliveryReceipt, error) {
	id := fmt.Sprintf("log-%d", s.seq.Add(1))
	slog.InfoContext(ctx, "Email delivery disabled, logging message",
		"to", email.To,
		"subject", email.Subject,
		"provider_id", id,
	)
	return &adapter.DeliveryReceipt{ProviderID: id}, nil
}

var _ adapter.EmailSender = (*LoggingSender)(nil)
