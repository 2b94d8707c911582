// Package app wires the bridge client to the frontend: it issues the startup
// invocation, delivers its outcome to a sink and mounts the UI.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/viant/cmdbridge/client"
	"github.com/viant/cmdbridge/internal/logger"
	"github.com/viant/cmdbridge/invocation"
)

const closeTimeout = 2 * time.Second

// Mounter mounts the user interface.
type Mounter interface {
	Mount(ctx context.Context) error
}

// Sink receives invocation outcomes. Both variants are delivered.
type Sink interface {
	Success(ctx context.Context, command string, value json.RawMessage)
	Failure(ctx context.Context, command string, failure *invocation.Failure)
}

// App is the frontend application.
type App struct {
	client  client.Interface
	mounter Mounter
	sink    Sink
	loop    *invocation.Loop
	logger  logger.Logger
	running sync.Once
	settled sync.WaitGroup
}

// Start issues command with args, attaches the outcome continuations and
// mounts the UI. Mounting does not wait for the invocation; a mount error is
// returned while the invocation keeps going.
func (a *App) Start(ctx context.Context, command string, args any) (*invocation.Pending[json.RawMessage], error) {
	a.running.Do(func() {
		go func() { _ = a.loop.Run(context.WithoutCancel(ctx)) }()
	})
	pending := a.client.Invoke(ctx, command, args)
	a.settled.Add(1)
	pending.Then(a.loop, func(value json.RawMessage) {
		defer a.settled.Done()
		a.sink.Success(ctx, command, value)
	}, func(failure *invocation.Failure) {
		defer a.settled.Done()
		a.sink.Failure(ctx, command, failure)
	})
	if err := a.mounter.Mount(ctx); err != nil {
		a.logger.Error("ui mount failed", "error", err)
		return pending, err
	}
	return pending, nil
}

// Wait blocks until every started invocation has been delivered to the sink, or ctx is done.
func (a *App) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.settled.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close closes the client, waits up to closeTimeout for the failures it
// raises on in-flight invocations to reach the sink, then stops the loop.
func (a *App) Close() error {
	err := a.client.Close()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if waitErr := a.Wait(ctx); waitErr != nil {
		a.logger.Warn("invocations not settled before close", "error", waitErr)
	}
	a.loop.Close()
	return err
}

// New creates an app.
func New(cli client.Interface, mounter Mounter, sink Sink, options ...Option) (*App, error) {
	if cli == nil {
		return nil, errors.New("client was nil")
	}
	if mounter == nil {
		return nil, errors.New("mounter was nil")
	}
	if sink == nil {
		return nil, errors.New("sink was nil")
	}
	ret := &App{
		client:  cli,
		mounter: mounter,
		sink:    sink,
		loop:    invocation.NewLoop(),
		logger:  logger.Nop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret, nil
}

// Option represents app option
type Option func(a *App)

// WithLogger sets the app logger.
func WithLogger(l logger.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
