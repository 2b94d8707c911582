package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/viant/cmdbridge"
	"github.com/viant/cmdbridge/commands"
	"github.com/viant/cmdbridge/host"
	"github.com/viant/cmdbridge/internal/logger"
)

func Run(args []string) error {
	options := &Options{}
	_, err := flags.ParseArgs(options, args)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if options.Config != "" {
		fileOptions := &cmdbridge.HostOptions{}
		if err = cmdbridge.LoadOptions(ctx, options.Config, fileOptions); err != nil {
			return err
		}
		options.HostOptions.Merge(fileOptions)
	}
	options.Init()
	if options.IssueToken != "" {
		return issueToken(os.Stdout, options)
	}

	log := logger.New(options.Logger).With("host", options.Name)
	srv, err := New(&options.HostOptions, host.WithLogger(log))
	if err != nil {
		return err
	}
	switch options.Transport.Type {
	case "stdio":
		log.Info("serving stdio")
		return srv.Stdio(ctx).ListenAndServe()
	case "http":
		httpServer := srv.HTTP(ctx, "")
		log.Info("serving http", "addr", httpServer.Addr)
		return httpServer.ListenAndServe()
	}
	return fmt.Errorf("unsupported transport type: %q", options.Transport.Type)
}

// New creates a host serving the built-in commands.
func New(options *cmdbridge.HostOptions, opts ...host.Option) (*host.Server, error) {
	registry := host.NewRegistry()
	if err := commands.Register(registry); err != nil {
		return nil, err
	}
	return cmdbridge.NewHost(registry, options, opts...)
}

func issueToken(w io.Writer, options *Options) error {
	if options.Auth.Secret == "" {
		return errors.New("auth secret is required to issue a token")
	}
	token, err := host.IssueToken([]byte(options.Auth.Secret), options.IssueToken, options.TokenTTL)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
