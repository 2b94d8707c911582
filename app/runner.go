package app

import (
	"context"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/viant/cmdbridge"
	"github.com/viant/cmdbridge/client"
	"github.com/viant/cmdbridge/internal/logger"
	"github.com/viant/cmdbridge/ui"
)

// Run parses args, issues the startup command and mounts the UI.
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	ctx := context.Background()
	if options.Config != "" {
		fileOptions := &cmdbridge.ClientOptions{}
		if err := cmdbridge.LoadOptions(ctx, options.Config, fileOptions); err != nil {
			return err
		}
		options.Client.Merge(fileOptions)
	}
	options.Init()
	arguments, err := options.Arguments()
	if err != nil {
		return err
	}

	log := logger.New(options.Logger)
	ctx = logger.WithLogger(ctx, log)
	cli, err := cmdbridge.NewClient(ctx, &options.Client, client.WithLogger(log))
	if err != nil {
		return err
	}

	var mounter Mounter
	var sink Sink = NewLogSink(log)
	if options.Headless {
		mounter = ui.NewHeadlessMounter(log)
	} else {
		uiMounter := ui.NewMounter(ui.NewModel(options.Client.Name, options.Command), os.Stdin, os.Stdout)
		mounter = uiMounter
		sink = Sinks{sink, uiMounter.Sink()}
	}
	anApp, err := New(cli, mounter, sink, WithLogger(log))
	if err != nil {
		_ = cli.Close()
		return err
	}
	defer anApp.Close()

	if _, err = anApp.Start(ctx, options.Command, arguments); err != nil {
		return err
	}
	if options.Headless {
		waitCtx, cancel := context.WithTimeout(ctx, options.Timeout)
		defer cancel()
		return anApp.Wait(waitCtx)
	}
	return nil
}
