package app

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/viant/cmdbridge"
	"github.com/viant/cmdbridge/internal/logger"
)

// Options defines the frontend command line.
type Options struct {
	Config   string                  `short:"f" long:"config" description:"client options YAML URL"`
	Command  string                  `short:"c" long:"cmd" description:"startup command"`
	Args     string                  `short:"a" long:"args" description:"startup command arguments as a JSON object"`
	Headless bool                    `long:"headless" description:"log the outcome instead of drawing the terminal UI"`
	Timeout  time.Duration           `long:"timeout" description:"headless wait for the outcome"`
	Client   cmdbridge.ClientOptions `group:"client"`
	Logger   logger.Config           `group:"logger"`
}

// Init applies defaults.
func (o *Options) Init() {
	if o.Command == "" {
		o.Command = "greet"
	}
	if o.Args == "" {
		o.Args = `{"name":"World"}`
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	o.Client.Init()
}

// Arguments decodes Args.
func (o *Options) Arguments() (map[string]any, error) {
	var result map[string]any
	if err := json.Unmarshal([]byte(o.Args), &result); err != nil {
		return nil, fmt.Errorf("invalid command arguments %v: %w", o.Args, err)
	}
	return result, nil
}
