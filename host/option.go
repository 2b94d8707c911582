package host

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/cmdbridge/internal/logger"
)

// Option is a function that configures the server.
type Option func(s *Server) error

// WithAllowedCommands restricts the exposed commands; others are reported as not found.
func WithAllowedCommands(names ...string) Option {
	return func(s *Server) error {
		s.allowed = make(map[string]bool, len(names))
		for _, name := range names {
			s.allowed[name] = true
		}
		return nil
	}
}

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) error {
		if l == nil {
			return errors.New("logger was nil")
		}
		s.logger = l
		return nil
	}
}

// WithMetrics records request metrics on registry and serves them on the HTTP transport.
func WithMetrics(registry *prometheus.Registry) Option {
	return func(s *Server) error {
		if registry == nil {
			return errors.New("metrics registry was nil")
		}
		s.metrics = NewMetrics(registry)
		s.gatherer = registry
		return nil
	}
}

// WithCORS adds a new CORS handler to the server.
func WithCORS(cors *Cors) Option {
	return func(s *Server) error {
		s.corsHandler = corsMiddleware(cors)
		s.corsConfig = cors
		return nil
	}
}

// WithAuthorizer adds an HTTP authorizer to the server.
func WithAuthorizer(authorizer Middleware) Option {
	return func(s *Server) error {
		s.authorizer = authorizer
		return nil
	}
}

// WithEndpointAddress sets the default HTTP listen address.
func WithEndpointAddress(addr string) Option {
	return func(s *Server) error {
		s.addr = addr
		return nil
	}
}

// WithSSEURI sets the SSE endpoint URI.
func WithSSEURI(uri string) Option {
	return func(s *Server) error {
		s.sseURI = uri
		return nil
	}
}

// WithSSEMessageURI sets the SSE message endpoint URI.
func WithSSEMessageURI(uri string) Option {
	return func(s *Server) error {
		s.sseMessageURI = uri
		return nil
	}
}

// WithStreamableURI sets the streamable HTTP endpoint URI.
func WithStreamableURI(uri string) Option {
	return func(s *Server) error {
		s.streamableURI = uri
		return nil
	}
}

// WithCustomHTTPHandler mounts an extra HTTP handler.
func WithCustomHTTPHandler(path string, handler http.HandlerFunc) Option {
	return func(s *Server) error {
		s.customHTTPHandlers[path] = handler
		return nil
	}
}
