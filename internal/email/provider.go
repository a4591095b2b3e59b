package email

import "sync"

// Email is a single outbound message.
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// Provider abstracts the delivery transport. Delivery is best-effort from
// the application's point of view; callers decide whether a send failure is
// fatal for their operation.
type Provider interface {
	Send(email *Email) error
	Close() error
}

// MockProvider records sent messages in memory. Used by tests and as the
// fallback when no SMTP host is configured.
type MockProvider struct {
	mu   sync.Mutex
	sent []Email
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Send(email *Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, *email)
	return nil
}

func (p *MockProvider) Sent() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Email, len(p.sent))
	copy(out, p.sent)
	return out
}

func (p *MockProvider) Close() error {
	return nil
}
