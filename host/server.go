package host

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/cmdbridge/internal/logger"
	"github.com/viant/cmdbridge/schema"
	"github.com/viant/jsonrpc/transport"
)

// Server exposes a command registry over bridge transports.
type Server struct {
	registry *Registry
	allowed  map[string]bool
	logger   logger.Logger

	stdioServer
	httpServer

	corsHandler Middleware
	corsConfig  *Cors
	authorizer  Middleware
	metrics     *Metrics
	gatherer    prometheus.Gatherer
}

// NewHandler creates a handler for a transport connection.
func (s *Server) NewHandler(ctx context.Context, transport transport.Transport) transport.Handler {
	return s.newHandler(ctx, transport)
}

func (s *Server) newHandler(_ context.Context, transport transport.Transport) *Handler {
	return &Handler{
		Server:   s,
		Notifier: transport,
		logger:   s.logger,
	}
}

// lookup returns a registered command that the allowlist permits.
func (s *Server) lookup(name string) (*Command, bool) {
	if !s.isAllowed(name) {
		return nil, false
	}
	return s.registry.Lookup(name)
}

func (s *Server) isAllowed(name string) bool {
	if s.allowed == nil {
		return true
	}
	return s.allowed[name]
}

func (s *Server) commands() []schema.Command {
	var result []schema.Command
	for _, cmd := range s.registry.Commands() {
		if s.isAllowed(cmd.Name) {
			result = append(result, cmd)
		}
	}
	return result
}

// New creates a new Server instance
func New(registry *Registry, options ...Option) (*Server, error) {
	if registry == nil {
		return nil, errors.New("no registry specified")
	}
	s := &Server{
		registry: registry,
		logger:   logger.Nop(),
		httpServer: httpServer{
			customHTTPHandlers: map[string]http.HandlerFunc{},
		},
	}
	s.corsHandler = corsMiddleware(nil)
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}
