package cmdbridge

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/cmdbridge/host"
	"github.com/viant/cmdbridge/internal/logger"
)

// HostOptions defines options for configuring a bridge host.
type HostOptions struct {
	Name      string        `yaml:"name" json:"name" short:"n" long:"name" description:"host name"`
	Transport HostTransport `yaml:"transport" json:"transport" group:"transport"`
	Commands  []string      `yaml:"commands,omitempty" json:"commands,omitempty" short:"c" long:"command" description:"allowed command, repeatable; all registered commands when empty"`
	Auth      HostAuth      `yaml:"auth,omitempty" json:"auth,omitempty" group:"auth"`
	Logger    logger.Config `yaml:"logger,omitempty" json:"logger,omitempty" group:"logger"`
}

// HostTransport defines how the host is exposed.
type HostTransport struct {
	Type          string     `yaml:"type" json:"type" short:"T" long:"transport-type" description:"host transport type" choice:"stdio" choice:"http"`
	Port          int        `yaml:"port" json:"port" short:"p" long:"port" description:"http port"`
	SSEURI        string     `yaml:"sseURI" json:"sseURI" long:"sse-uri" description:"sse endpoint uri"`
	SSEMessageURI string     `yaml:"sseMessageURI" json:"sseMessageURI" long:"sse-message-uri" description:"sse message endpoint uri"`
	StreamableURI string     `yaml:"streamableURI" json:"streamableURI" long:"streamable-uri" description:"streamable endpoint uri"`
	Cors          *host.Cors `yaml:"cors" json:"cors"`
	Metrics       bool       `yaml:"metrics" json:"metrics" long:"metrics" description:"serve prometheus metrics on /metrics"`
}

// HostAuth defines bearer token verification for the HTTP transports.
type HostAuth struct {
	Secret string `yaml:"secret,omitempty" json:"secret,omitempty" long:"auth-secret" description:"HS256 secret verifying bearer tokens"`
}

// Init applies defaults.
func (h *HostOptions) Init() {
	if h.Name == "" {
		h.Name = "cmdbridge-host"
	}
	if h.Transport.Type == "" {
		h.Transport.Type = "stdio"
	}
}

// Merge fills fields left empty on h with values from other.
func (h *HostOptions) Merge(other *HostOptions) {
	if other == nil {
		return
	}
	if h.Name == "" {
		h.Name = other.Name
	}
	if len(h.Commands) == 0 {
		h.Commands = other.Commands
	}
	transport := &h.Transport
	if transport.Type == "" {
		transport.Type = other.Transport.Type
	}
	if transport.Port == 0 {
		transport.Port = other.Transport.Port
	}
	if transport.SSEURI == "" {
		transport.SSEURI = other.Transport.SSEURI
	}
	if transport.SSEMessageURI == "" {
		transport.SSEMessageURI = other.Transport.SSEMessageURI
	}
	if transport.StreamableURI == "" {
		transport.StreamableURI = other.Transport.StreamableURI
	}
	if transport.Cors == nil {
		transport.Cors = other.Transport.Cors
	}
	if !transport.Metrics {
		transport.Metrics = other.Transport.Metrics
	}
	if h.Auth.Secret == "" {
		h.Auth.Secret = other.Auth.Secret
	}
	if h.Logger.Level == "" {
		h.Logger.Level = other.Logger.Level
	}
	if h.Logger.Format == "" {
		h.Logger.Format = other.Logger.Format
	}
}

// NewHost creates a host server for registry configured via HostOptions.
func NewHost(registry *host.Registry, options *HostOptions, opts ...host.Option) (*host.Server, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry was nil")
	}
	var serverOptions []host.Option
	if options != nil {
		if len(options.Commands) > 0 {
			serverOptions = append(serverOptions, host.WithAllowedCommands(options.Commands...))
		}
		transportOptions := options.Transport
		if transportOptions.Port > 0 {
			serverOptions = append(serverOptions, host.WithEndpointAddress(fmt.Sprintf(":%v", transportOptions.Port)))
		}
		if transportOptions.Cors != nil {
			serverOptions = append(serverOptions, host.WithCORS(transportOptions.Cors))
		}
		if transportOptions.SSEURI != "" {
			serverOptions = append(serverOptions, host.WithSSEURI(transportOptions.SSEURI))
		}
		if transportOptions.SSEMessageURI != "" {
			serverOptions = append(serverOptions, host.WithSSEMessageURI(transportOptions.SSEMessageURI))
		}
		if transportOptions.StreamableURI != "" {
			serverOptions = append(serverOptions, host.WithStreamableURI(transportOptions.StreamableURI))
		}
		if transportOptions.Metrics {
			serverOptions = append(serverOptions, host.WithMetrics(prometheus.NewRegistry()))
		}
		if options.Auth.Secret != "" {
			serverOptions = append(serverOptions, host.WithAuthorizer(host.NewTokenAuthorizer([]byte(options.Auth.Secret))))
		}
	}
	serverOptions = append(serverOptions, opts...)
	return host.New(registry, serverOptions...)
}
