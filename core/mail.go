package core

import "net/mail"

type (
	EmailMessage struct {
		To      []mail.Address
		Subject string
		Body    string // text/plain
		HTML    string
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages; implementations may send them concurrently.
		SendMessages(messages ...*EmailMessage)
	}
)

func (m *EmailMessage) HasRecipients() bool {
	return len(m.To) > 0
}

func (m *EmailMessage) HasContent() bool {
	return m.Body != "" || m.HTML != ""
}
