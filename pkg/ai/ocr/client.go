package ocr

import (
	"context"
	"strings"
)

// Client wraps a recognizer with default options.
type Client struct {
	recognizer TextRecognizer
	defaults   []Option
}

// NewClient creates a client. defaults are applied before per-call options.
func NewClient(recognizer TextRecognizer, defaults ...Option) *Client {
	return &Client{recognizer: recognizer, defaults: defaults}
}

// RecognizeText delegates to the underlying recognizer.
func (c *Client) RecognizeText(ctx context.Context, input Input, opts ...Option) (*Result, error) {
	all := append(append([]Option{}, c.defaults...), opts...)
	return c.recognizer.RecognizeText(ctx, input, all...)
}

// Text recognizes input and returns only its trimmed text.
func (c *Client) Text(ctx context.Context, input Input, opts ...Option) (string, error) {
	res, err := c.RecognizeText(ctx, input, opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Text), nil
}
