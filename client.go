package cmdbridge

import (
	"context"
	"fmt"
	"net/http"

	"github.com/viant/cmdbridge/client"
	"github.com/viant/cmdbridge/commands"
	"github.com/viant/cmdbridge/host"
	"github.com/viant/cmdbridge/internal/logger"
	"github.com/viant/cmdbridge/transport/loopback"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/jsonrpc/transport/client/http/sse"
	"github.com/viant/jsonrpc/transport/client/http/streamable"
	"github.com/viant/jsonrpc/transport/client/stdio"
)

// ClientOptions defines options for configuring a bridge client.
type ClientOptions struct {
	Name      string          `yaml:"name" json:"name,omitempty" short:"n" long:"name" description:"client name"`
	Transport ClientTransport `yaml:"transport,omitempty" json:"transport,omitempty" group:"transport"`
	Auth      ClientAuth      `yaml:"auth,omitempty" json:"auth,omitempty" group:"auth"`
}

// ClientAuth defines authentication options for HTTP transports.
type ClientAuth struct {
	Token string `yaml:"token,omitempty" json:"token,omitempty" long:"token" description:"bearer token sent to the host"`
}

// ClientTransport defines transport options for a bridge client.
type ClientTransport struct {
	Type                 string `yaml:"type" json:"type" short:"T" long:"transport-type" description:"bridge transport type" choice:"stdio" choice:"sse" choice:"streamable" choice:"loopback"`
	ClientTransportStdio `yaml:",inline"`
	ClientTransportHTTP  `yaml:",inline"`
}

// ClientTransportStdio defines options for spawning the host as a child process.
type ClientTransportStdio struct {
	Command   string   `yaml:"command" json:"command" short:"C" long:"host-command" description:"host command"`
	Arguments []string `yaml:"arguments" json:"arguments" short:"A" long:"host-argument" description:"host command arguments"`
}

// ClientTransportHTTP defines options for the SSE and streamable transports.
type ClientTransportHTTP struct {
	URL string `yaml:"url" json:"url" short:"u" long:"url" description:"host url"`
}

// Init applies defaults.
func (c *ClientOptions) Init() {
	if c.Name == "" {
		c.Name = "cmdbridge"
	}
	if c.Transport.Type == "" {
		c.Transport.Type = "loopback"
	}
}

// Merge fills fields left empty on c with values from other, so that flags
// parsed into c take precedence over a loaded options file.
func (c *ClientOptions) Merge(other *ClientOptions) {
	if other == nil {
		return
	}
	if c.Name == "" {
		c.Name = other.Name
	}
	if c.Transport.Type == "" {
		c.Transport.Type = other.Transport.Type
	}
	if c.Transport.Command == "" {
		c.Transport.Command = other.Transport.Command
	}
	if len(c.Transport.Arguments) == 0 {
		c.Transport.Arguments = other.Transport.Arguments
	}
	if c.Transport.URL == "" {
		c.Transport.URL = other.Transport.URL
	}
	if c.Auth.Token == "" {
		c.Auth.Token = other.Auth.Token
	}
}

// NewClient creates a bridge client with the transport configured via ClientOptions.
func NewClient(ctx context.Context, options *ClientOptions, opts ...client.Option) (*client.Client, error) {
	if options == nil {
		options = &ClientOptions{}
	}
	options.Init()
	aTransport, err := options.getTransport(ctx)
	if err != nil {
		return nil, err
	}
	return client.New(aTransport, opts...), nil
}

// getTransport constructs a JSON-RPC transport based on ClientOptions.Transport.
func (c *ClientOptions) getTransport(ctx context.Context) (transport.Transport, error) {
	clientHandler := client.NewHandler(logger.FromContext(ctx))
	switch c.Transport.Type {
	case "stdio":
		stdioOptions := c.Transport.ClientTransportStdio
		if stdioOptions.Command == "" {
			return nil, fmt.Errorf("command is required for stdio transport")
		}
		ret, err := stdio.New(stdioOptions.Command,
			stdio.WithHandler(clientHandler),
			stdio.WithArguments(stdioOptions.Arguments...))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdio transport: %w", err)
		}
		return ret, nil
	case "sse":
		httpOptions := c.Transport.ClientTransportHTTP
		if httpOptions.URL == "" {
			return nil, fmt.Errorf("URL is required for sse transport")
		}
		opts := []sse.Option{}
		if httpClient := c.httpClient(); httpClient != nil {
			opts = append(opts, sse.WithHttpClient(httpClient), sse.WithMessageHttpClient(httpClient))
		}
		opts = append(opts, sse.WithHandler(clientHandler))
		ret, err := sse.New(ctx, httpOptions.URL, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create SSE transport: %w", err)
		}
		return ret, nil
	case "streamable":
		httpOptions := c.Transport.ClientTransportHTTP
		if httpOptions.URL == "" {
			return nil, fmt.Errorf("URL is required for streamable transport")
		}
		opts := []streamable.Option{}
		if httpClient := c.httpClient(); httpClient != nil {
			opts = append(opts, streamable.WithHTTPClient(httpClient))
		}
		opts = append(opts, streamable.WithHandler(clientHandler))
		ret, err := streamable.New(ctx, httpOptions.URL, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create streamable transport: %w", err)
		}
		return ret, nil
	case "loopback":
		registry := host.NewRegistry()
		if err := commands.Register(registry); err != nil {
			return nil, err
		}
		srv, err := host.New(registry, host.WithLogger(logger.FromContext(ctx)))
		if err != nil {
			return nil, err
		}
		return loopback.New(ctx, srv.NewHandler), nil
	default:
		return nil, fmt.Errorf("unsupported transport type: %q", c.Transport.Type)
	}
}

// httpClient returns a client sending the configured bearer token, or nil.
func (c *ClientOptions) httpClient() *http.Client {
	if c.Auth.Token == "" {
		return nil
	}
	return &http.Client{Transport: &bearerRoundTripper{token: c.Auth.Token, base: http.DefaultTransport}}
}

type bearerRoundTripper struct {
	token string
	base  http.RoundTripper
}

func (b *bearerRoundTripper) RoundTrip(request *http.Request) (*http.Response, error) {
	request = request.Clone(request.Context())
	request.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(request)
}
