package notification

import (
	"fmt"
	"io"
	"strings"

	ics "github.com/arran4/golang-ical"
	gomail "gopkg.in/gomail.v2"

	"ciba/models"
)

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds a mailer for the given relay.
func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

// Send delivers a single HTML message.
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// SendBookingConfirmation mails the requester their session details with an
// ICS attachment they can add to their own calendar.
func (m *SMTPMailer) SendBookingConfirmation(booking *models.Booking) error {
	invite, err := buildInvite(booking)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your startup clinic session is confirmed for <b>%s</b>, slot <b>%s</b>.</p><p>See you there!</p>",
		booking.Name, booking.SessionDate, booking.Slot,
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", booking.Email)
	msg.SetHeader("Subject", "Your startup clinic session is confirmed")
	msg.SetBody("text/html", body)
	msg.Attach("session.ics", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := io.Copy(w, strings.NewReader(invite))
		return err
	}))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send confirmation to %s: %w", booking.Email, err)
	}
	return nil
}

func buildInvite(booking *models.Booking) (string, error) {
	startAt, endAt, err := sessionTimes(booking)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	event := cal.AddEvent(fmt.Sprintf("clinic-%s", booking.ID))
	event.SetCreatedTime(booking.CreatedAt)
	event.SetStartAt(startAt)
	event.SetEndAt(endAt)
	event.SetSummary("Startup clinic session")
	event.SetDescription(fmt.Sprintf("Clinic session for %s (%s)", booking.Name, booking.Slot))
	return cal.Serialize(), nil
}
