package controllers

import (
	"log"
	"os"

	"github.com/eldermood/mood-mirror-backend/pkg/utils"
)

type guardianNotification struct {
	to      string
	subject string
	html    string
}

var notifyMailer utils.Mailer = utils.SMTPMailer{}

var notifyChan = make(chan guardianNotification, 64)

// enqueueGuardianNotification never blocks the request path. When the queue
// is full the notification is dropped with a log line.
func enqueueGuardianNotification(n guardianNotification) {
	select {
	case notifyChan <- n:
	default:
		log.Printf("notification queue full, dropping email to %s", n.to)
	}
}

// StartNotifyDispatcher drains the notification queue in the background.
// Delivery failures are logged and never retried.
func StartNotifyDispatcher() {
	go func() {
		for n := range notifyChan {
			if _, err := notifyMailer.Send(os.Getenv("SMTP_FROM"), n.to, n.subject, n.html); err != nil {
				log.Printf("guardian notification to %s failed: %v", n.to, err)
			}
		}
	}()
}
