package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"mikrobot/internal/adapters/email"
)

// Contact form errors
var (
	ErrEmptyContactName    = errors.New("name cannot be empty")
	ErrEmptyContactEmail   = errors.New("email cannot be empty")
	ErrEmptyContactMessage = errors.New("message cannot be empty")
)

// ContactInput carries the contact form fields.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// ContactDeps holds dependencies for ExecuteContact.
type ContactDeps struct {
	Sender email.Sender
	// To is the club inbox that receives contact messages.
	To string
	// From is the verified sender address of the provider account.
	From string
}

// ExecuteContact forwards a contact form submission to the club inbox.
// The visitor's address goes into Reply-To so the board can answer directly.
// PRE: deps.Sender is configured
func ExecuteContact(ctx context.Context, input ContactInput, deps ContactDeps) error {
	name := strings.TrimSpace(input.Name)
	addr := strings.TrimSpace(input.Email)
	msg := strings.TrimSpace(input.Message)
	if name == "" {
		return ErrEmptyContactName
	}
	if addr == "" {
		return ErrEmptyContactEmail
	}
	if msg == "" {
		return ErrEmptyContactMessage
	}

	body := fmt.Sprintf(
		"<p><strong>%s</strong> (%s) napisał(a):</p><p>%s</p>",
		html.EscapeString(name),
		html.EscapeString(addr),
		strings.ReplaceAll(html.EscapeString(msg), "\n", "<br>"),
	)

	res, err := deps.Sender.Send(ctx, email.SendRequest{
		To:      []string{deps.To},
		From:    deps.From,
		Subject: fmt.Sprintf("Wiadomość ze strony: %s", name),
		HTML:    body,
		ReplyTo: addr,
	})
	if err != nil {
		slog.Error("contact_event", "event", "contact_send_failed", "error", err)
		return fmt.Errorf("send contact message: %w", err)
	}
	slog.Info("contact_event", "event", "contact_sent", "message_id", res.MessageID)
	return nil
}
