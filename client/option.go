package client

import (
	"github.com/viant/cmdbridge/internal/logger"
)

// Option represents option
type Option func(c *Client)

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCloser sets the function releasing the underlying transport on Close.
func WithCloser(closer func() error) Option {
	return func(c *Client) {
		c.closer = closer
	}
}
