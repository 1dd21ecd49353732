// Package templates renders the resident email bodies embedded in the binary.
package templates

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Message is a rendered email body. Text is empty when the template has no
// plain-text part.
type Message struct {
	HTML string
	Text string
}

// Renderer renders templates by name, e.g. "payment_reminder" for
// payment_reminder.html and payment_reminder.txt.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

func (r *Renderer) Render(name string, data any) (Message, error) {
	var msg Message

	var html strings.Builder
	if err := r.html.ExecuteTemplate(&html, name+".html", data); err != nil {
		return msg, fmt.Errorf("render %s.html: %w", name, err)
	}
	msg.HTML = html.String()

	if r.text.Lookup(name+".txt") != nil {
		var text strings.Builder
		if err := r.text.ExecuteTemplate(&text, name+".txt", data); err != nil {
			return msg, fmt.Errorf("render %s.txt: %w", name, err)
		}
		msg.Text = text.String()
	}

	return msg, nil
}

type PaymentReminderData struct {
	ResidentName string
	Amount       string
	DueDate      string
	Period       string
	FacilityName string
}

type WelcomeData struct {
	ResidentName string
	RoomNumber   string
	MonthlyRent  string
	CheckInDate  string
	FacilityName string
}
