package templates

import (
	"strings"
	"testing"
)

func TestRenderer_PaymentReminder(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	msg, err := r.Render("payment_reminder", PaymentReminderData{
		ResidentName: "Ana <Souza>",
		Amount:       "BRL 1200.00",
		DueDate:      "1 July 2024",
		Period:       "2024-07",
		FacilityName: "Casa Verde",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(msg.HTML, "BRL 1200.00") || !strings.Contains(msg.HTML, "1 July 2024") {
		t.Errorf("html is missing amount or due date: %s", msg.HTML)
	}
	if !strings.Contains(msg.HTML, "Ana &lt;Souza&gt;") {
		t.Errorf("expected escaped resident name in html")
	}
	if !strings.Contains(msg.Text, "Ana <Souza>") || !strings.Contains(msg.Text, "2024-07") {
		t.Errorf("text part is missing fields: %s", msg.Text)
	}
}

func TestRenderer_Welcome(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	msg, err := r.Render("welcome", WelcomeData{
		ResidentName: "Bruno",
		RoomNumber:   "12B",
		MonthlyRent:  "900.00",
		CheckInDate:  "3 June 2024",
		FacilityName: "Casa Verde",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg.HTML, "12B") || !strings.Contains(msg.Text, "900.00") {
		t.Errorf("welcome email is missing room or rent")
	}
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	if _, err := r.Render("password_reset", nil); err == nil {
		t.Error("expected an error for an unknown template")
	}
}
