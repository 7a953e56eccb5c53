package testutils

import (
	"context"
	"sync"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/email"
)

// SentMail records one templated mail
type SentMail struct {
	Kind string // admin_notification, approval, reset_password
	To   string
	Data any
}

// RecordingMailer captures templated mails instead of delivering them
type RecordingMailer struct {
	mu   sync.Mutex
	Sent []SentMail
	Err  error
}

func (m *RecordingMailer) record(kind, to string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentMail{Kind: kind, To: to, Data: data})
	return nil
}

func (m *RecordingMailer) SendAdminNotification(_ context.Context, adminEmail string, data email.AdminNotificationData) error {
	return m.record("admin_notification", adminEmail, data)
}

func (m *RecordingMailer) SendApproval(_ context.Context, to string, data email.ApprovalData) error {
	return m.record("approval", to, data)
}

func (m *RecordingMailer) SendPasswordReset(_ context.Context, to string, data email.ResetPasswordData) error {
	return m.record("reset_password", to, data)
}

// Count returns how many mails of kind were recorded
func (m *RecordingMailer) Count(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.Sent {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// Last returns the most recent mail of kind
func (m *RecordingMailer) Last(kind string) (SentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Sent) - 1; i >= 0; i-- {
		if m.Sent[i].Kind == kind {
			return m.Sent[i], true
		}
	}
	return SentMail{}, false
}
