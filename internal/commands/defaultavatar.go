package commands

import (
	"context"
	"flag"
	"io"

	"cbook/internal/api"
	"cbook/internal/config"
	"cbook/internal/exitcode"
	"cbook/internal/output"
	"cbook/internal/service"
)

func init() {
	Register(&DefaultAvatarCmd{})
}

// DefaultAvatarCmd implements the default-avatar command. Without flags it
// shows the instance default avatar; with --set it updates it (admin only,
// the server decides).
type DefaultAvatarCmd struct {
	setURL string
}

func (c *DefaultAvatarCmd) Name() string      { return "default-avatar" }
func (c *DefaultAvatarCmd) Aliases() []string { return nil }
func (c *DefaultAvatarCmd) Synopsis() string  { return "Show or set the default avatar" }
func (c *DefaultAvatarCmd) Usage() string     { return "cbook default-avatar [--set <url>]" }
func (c *DefaultAvatarCmd) NeedsAuth() bool   { return true }

func (c *DefaultAvatarCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.setURL, "set", "", "")
}

func (c *DefaultAvatarCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	var (
		env api.Envelope
		err error
	)
	if c.setURL != "" {
		env, err = svc.SetDefaultAvatar(ctx, c.setURL)
	} else {
		env, err = svc.DefaultAvatar(ctx)
	}
	if err != nil {
		return transportFailure(errOut, err)
	}

	output.FormatEnvelope(out, env)
	if !env.OK {
		return reportFailure(errOut, env)
	}
	return exitcode.Success
}
