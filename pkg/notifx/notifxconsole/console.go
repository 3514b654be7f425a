// Package notifxconsole logs emails instead of sending them.
package notifxconsole

import (
	"context"
	"strings"
	"sync"

	"github.com/Abraxas-365/resumeforge/pkg/logx"
	"github.com/Abraxas-365/resumeforge/pkg/notifx"
)

// ConsoleProvider writes emails to the log and keeps the most recent ones
// for inspection.
type ConsoleProvider struct {
	mu   sync.Mutex
	sent []notifx.EmailMessage
	keep int
}

func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{keep: 50}
}

func (p *ConsoleProvider) SendEmail(_ context.Context, msg notifx.EmailMessage, opts ...notifx.Option) error {
	so := notifx.ApplySendOptions(opts)

	fields := logx.Fields{
		"from":    msg.From,
		"to":      strings.Join(msg.To, ", "),
		"subject": msg.Subject,
	}
	for k, v := range so.Tags {
		fields["tag_"+k] = v
	}
	logx.WithFields(fields).Info("notifx/console: email sent (dev mode)")

	if msg.TextBody != "" {
		logx.Debugf("notifx/console: text body:\n%s", msg.TextBody)
	}

	p.mu.Lock()
	p.sent = append(p.sent, msg)
	if len(p.sent) > p.keep {
		p.sent = p.sent[len(p.sent)-p.keep:]
	}
	p.mu.Unlock()
	return nil
}

// Sent returns a copy of the recorded messages, oldest first.
func (p *ConsoleProvider) Sent() []notifx.EmailMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notifx.EmailMessage(nil), p.sent...)
}
