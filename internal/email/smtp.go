package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendAppointmentReminder emails a customer the day before their visit.
func (s *SMTPSender) SendAppointmentReminder(ctx context.Context, toEmail, customerName, petName, scheduledDate, timeWindow string) error {
	content, err := renderEmailTemplate("appointment_reminder.html", appointmentReminderEmailData{
		baseEmailData: baseEmailData{
			Title:   "Grooming appointment reminder",
			Heading: fmt.Sprintf("%s is booked in", petName),
		},
		CustomerName:  customerName,
		PetName:       petName,
		ScheduledDate: scheduledDate,
		TimeWindow:    timeWindow,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectAppointmentReminder, content)
}

// SendWaitlistSlotOffer emails a waitlisted customer about an opening.
func (s *SMTPSender) SendWaitlistSlotOffer(ctx context.Context, toEmail, customerName, petName, offeredDate string) error {
	content, err := renderEmailTemplate("waitlist_slot_offer.html", waitlistSlotOfferEmailData{
		baseEmailData: baseEmailData{
			Title:   "A grooming slot opened up",
			Heading: "A slot just opened up",
		},
		CustomerName: customerName,
		PetName:      petName,
		OfferedDate:  offeredDate,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectWaitlistSlotOffer, content)
}

var _ Sender = (*SMTPSender)(nil)
