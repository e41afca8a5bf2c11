// Package email delivers customer-facing notification emails.
package email

import (
	"context"
	"fmt"

	"groomroute_backend/platform/config"
)

// Sender delivers notification emails to customers.
type Sender interface {
	SendAppointmentReminder(ctx context.Context, toEmail, customerName, petName, scheduledDate, timeWindow string) error
	SendWaitlistSlotOffer(ctx context.Context, toEmail, customerName, petName, offeredDate string) error
}

// NoopSender satisfies Sender without delivering anything, for environments
// where email is disabled.
type NoopSender struct{}

func (NoopSender) SendAppointmentReminder(context.Context, string, string, string, string, string) error {
	return nil
}

func (NoopSender) SendWaitlistSlotOffer(context.Context, string, string, string, string) error {
	return nil
}

var _ Sender = NoopSender{}

// NewSender builds the configured sender. Email can be disabled outright,
// which yields a no-op sender rather than an error.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	if cfg.GetSMTPHost() == "" || cfg.GetEmailFromAddress() == "" {
		return nil, fmt.Errorf("email enabled but SMTP host or from address missing")
	}

	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}
