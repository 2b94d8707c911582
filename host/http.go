package host

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/viant/jsonrpc/transport/server/http/sse"
	"github.com/viant/jsonrpc/transport/server/http/streamable"
)

type httpServer struct {
	sseHandler         *sse.Handler
	streamingHandler   *streamable.Handler
	addr               string
	customHTTPHandlers map[string]http.HandlerFunc
	sseURI             string
	sseMessageURI      string
	streamableURI      string
	metricsURI         string
}

// HTTP creates an HTTP server exposing the SSE and streamable transports.
func (s *Server) HTTP(_ context.Context, addr string) *http.Server {
	if addr == "" {
		addr = s.addr
	}
	if addr == "" {
		addr = "127.0.0.1:5000"
	}
	if s.sseURI == "" {
		s.sseURI = "/sse"
	}
	if s.sseMessageURI == "" {
		s.sseMessageURI = "/message"
	}
	if s.streamableURI == "" {
		s.streamableURI = "/bridge"
	}

	s.sseHandler = sse.New(s.NewHandler,
		sse.WithURI(s.sseURI),
		sse.WithMessageURI(s.sseMessageURI),
	)
	s.streamingHandler = streamable.New(s.NewHandler,
		streamable.WithURI(s.streamableURI),
	)
	mux := http.NewServeMux()
	for path, handler := range s.customHTTPHandlers {
		mux.Handle(path, handler)
	}
	if s.gatherer != nil {
		if s.metricsURI == "" {
			s.metricsURI = "/metrics"
		}
		mux.Handle(s.metricsURI, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	middlewareHandlers := s.middlewares()
	mux.Handle(s.sseURI, ChainMiddlewareHandlers(s.sseHandler, middlewareHandlers...))
	mux.Handle(s.sseMessageURI, ChainMiddlewareHandlers(s.sseHandler, middlewareHandlers...))
	mux.Handle(s.streamableURI, ChainMiddlewareHandlers(s.streamingHandler, middlewareHandlers...))
	return &http.Server{
		Addr:    addr,
		Handler: mux,
	}
}

// middlewares returns the HTTP middleware chain, outermost first.
func (s *Server) middlewares() []Middleware {
	var result []Middleware
	result = append(result, s.corsHandler)
	if s.corsConfig != nil {
		result = append(result, originValidationMiddleware(s.corsConfig.AllowOrigins))
	}
	if s.authorizer != nil {
		result = append(result, s.authorizer)
	}
	return result
}
