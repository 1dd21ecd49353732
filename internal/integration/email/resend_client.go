package email

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/residence-hub/backend/internal/application/adapter"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

// ResendClient delivers messages through the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient builds a client for apiKey. baseURL, when set, points the
// SDK at another endpoint (the API mock in tests).
func NewResendClient(apiKey, fromName, fromEmail, baseURL string) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid resend base url %q: %w", baseURL, err)
		}
		client.BaseURL = u
	}

	return &ResendClient{
		client: client,
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}, nil
}

func (c *ResendClient) Send(ctx context.Context, email adapter.OutgoingEmail) (*adapter.DeliveryReceipt, error) {
	if strings.TrimSpace(email.To) == "" {
		return nil, domainerror.NewEmailError(domainerror.ErrCodeMissingRecipient, "email has no recipient", domainerror.ErrMissingRecipient)
	}

	sent, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	})
	if err != nil {
		return nil, classifyProviderError(err)
	}

	return &adapter.DeliveryReceipt{ProviderID: sent.Id}, nil
}

// classifyProviderError maps a Resend failure onto the permanent/temporary
// split the worker retries on. Client errors other than 408 and 429 are
// permanent; anything else, including network failures, is retried.
func classifyProviderError(err error) *domainerror.EmailError {
	msg := strings.ToLower(err.Error())

	permanent := false
	if status := statusIn(msg); status != 0 {
		permanent = status >= 400 && status < 500 && status != 408 && status != 429
	} else {
		for _, hint := range []string{"unauthorized", "forbidden", "validation", "invalid", "bad request"} {
			if strings.Contains(msg, hint) {
				permanent = true
				break
			}
		}
	}

	if permanent {
		return domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "provider rejected email", err)
	}
	return domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "provider unavailable", err)
}

// statusIn returns the first standalone 4xx/5xx code in msg, or 0.
func statusIn(msg string) int {
	for _, w := range strings.Fields(msg) {
		w = strings.Trim(w, ":;,.()[]")
		if len(w) != 3 {
			continue
		}
		if n, err := strconv.Atoi(w); err == nil && n >= 400 && n < 600 {
			return n
		}
	}
	return 0
}

var _ adapter.EmailSender = (*ResendClient)(nil)
