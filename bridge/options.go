package bridge

import (
	"time"

	"github.com/viant/cmdbridge"
)

// Options defines the host command line.
type Options struct {
	Config     string        `short:"f" long:"config" description:"host options YAML URL"`
	IssueToken string        `long:"issue-token" description:"print a bearer token for the given subject and exit"`
	TokenTTL   time.Duration `long:"token-ttl" description:"issued token lifetime"`
	cmdbridge.HostOptions
}

// Init applies defaults.
func (o *Options) Init() {
	if o.TokenTTL <= 0 {
		o.TokenTTL = 24 * time.Hour
	}
	o.HostOptions.Init()
}
