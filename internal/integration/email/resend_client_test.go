package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/residence-hub/backend/internal/application/adapter"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

func TestResendClient_SendsThroughBaseURL(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer server.Close()

	client, err := NewResendClient("re_test", "Casa Verde", "desk@example.com", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := client.Send(context.Background(), adapter.OutgoingEmail{
		To:      "ana@example.com",
		Subject: "Rent reminder",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ProviderID != "msg_123" {
		t.Errorf("expected provider id msg_123, got %s", result.ProviderID)
	}
	if got["from"] != "Casa Verde <desk@example.com>" || got["subject"] != "Rent reminder" {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestResendClient_MissingRecipient(t *testing.T) {
	client, err := NewResendClient("re_test", "Casa Verde", "desk@example.com", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.Send(context.Background(), adapter.OutgoingEmail{Subject: "x"})
	if !errors.Is(err, domainerror.ErrMissingRecipient) {
		t.Errorf("expected ErrMissingRecipient, got %v", err)
	}
}

func TestLoggingSender(t *testing.T) {
	sender := NewLoggingSender()

	first, _ := sender.Send(context.Background(), adapter.OutgoingEmail{To: "a@example.com"})
	second, _ := sender.Send(context.Background(), adapter.OutgoingEmail{To: "b@example.com"})

	if first.ProviderID == second.ProviderID {
		t.Errorf("expected distinct provider ids, got %s twice", first.ProviderID)
	}
}

func TestClassifyProviderError(t *testing.T) {
	tests := []struct {
		msg       string
		permanent bool
	}{
		{"[ERROR]: 422 Unprocessable Entity", true},
		{"[ERROR]: 401 Unauthorized", true},
		{"[ERROR]: 429 Too Many Requests", false},
		{"[ERROR]: 503 Service Unavailable", false},
		{"The to field is invalid", true},
		{"dial tcp 127.0.0.1:443: connect: connection refused", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got := classifyProviderError(errors.New(tt.msg))
			if got.IsPermanent() != tt.permanent {
				t.Errorf("expected permanent=%v, got code %s", tt.permanent, got.Code)
			}
		})
	}
}
