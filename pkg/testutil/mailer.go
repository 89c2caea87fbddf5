package testutil

import "context"

type SentMail struct {
	To      string
	Subject string
	Body    string
}

// MockMailer records every message instead of delivering it.
type MockMailer struct {
	Sent []SentMail

	SendMailFunc func(ctx context.Context, to, subject, body string) error
}

func (m *MockMailer) SendMail(ctx context.Context, to, subject, body string) error {
	if m.SendMailFunc != nil {
		return m.SendMailFunc(ctx, to, subject, body)
	}

	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}
