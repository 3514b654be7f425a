// Package notifx sends transactional email through a pluggable provider,
// with named templates for subject and bodies.
package notifx

import (
	"context"
	"fmt"
)

// EmailSender sends a single email.
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage, opts ...Option) error
}

// Client validates messages, fills the default sender and renders templates.
type Client struct {
	provider  EmailSender
	from      string
	templates *TemplateRegistry
}

type ClientOption func(*Client)

// WithFrom sets the sender used when a message has none. An empty name
// yields a bare address.
func WithFrom(address, name string) ClientOption {
	return func(c *Client) {
		switch {
		case address == "":
		case name == "":
			c.from = address
		default:
			c.from = fmt.Sprintf("%s <%s>", name, address)
		}
	}
}

func NewClient(provider EmailSender, opts ...ClientOption) *Client {
	c := &Client{provider: provider, templates: NewTemplateRegistry()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SendEmail(ctx context.Context, msg EmailMessage, opts ...Option) error {
	if c.provider == nil {
		return notifxErrors.New(ErrNoProvider)
	}
	if len(msg.To) == 0 {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "no recipients")
	}
	if msg.Subject == "" {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "empty subject")
	}
	if msg.From == "" {
		msg.From = c.from
	}
	return c.provider.SendEmail(ctx, msg, opts...)
}

// RegisterTemplate parses and stores a named template.
func (c *Client) RegisterTemplate(name string, tmpl EmailTemplate) error {
	return c.templates.Register(name, tmpl)
}

// SendTemplatedEmail renders the named template with data into msg and
// sends it. Fields rendered by the template replace those set on msg.
func (c *Client) SendTemplatedEmail(ctx context.Context, name string, data any, msg EmailMessage, opts ...Option) error {
	rendered, err := c.templates.Render(name, data)
	if err != nil {
		return err
	}

	if rendered.Subject != "" {
		msg.Subject = rendered.Subject
	}
	if rendered.HTML != "" {
		msg.HTMLBody = rendered.HTML
	}
	if rendered.Text != "" {
		msg.TextBody = rendered.Text
	}
	return c.SendEmail(ctx, msg, opts...)
}
