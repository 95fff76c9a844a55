package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// ErrDeliveryFailed wraps outbound email failures so handlers can map them
// to a 500 without leaking provider error shapes.
var ErrDeliveryFailed = errors.New("email delivery failed")

// Mailer is the outbound email collaborator. Send returns the provider
// message id of the delivered email.
type Mailer interface {
	Send(from, to, subject, html string) (string, error)
}

// SMTPMailer delivers through the SMTP_* configured relay.
type SMTPMailer struct{}

func (SMTPMailer) Send(from, to, subject, html string) (string, error) {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASSWORD")

	if from == "" {
		from = user
	}
	if host == "" || user == "" || pass == "" {
		return "", fmt.Errorf("%w: SMTP config not set", ErrDeliveryFailed)
	}
	port := 587
	if portStr != "" {
		if iv, err := strconv.Atoi(portStr); err == nil && iv > 0 {
			port = iv
		}
	}

	messageID := fmt.Sprintf("<%s@mood-mirror>", uuid.New().String())

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-ID", messageID)
	m.SetBody("text/html", html)

	d := gomail.NewDialer(host, port, user, pass)
	if err := d.DialAndSend(m); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return messageID, nil
}
