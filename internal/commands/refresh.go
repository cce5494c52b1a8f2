package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"cbook/internal/config"
	"cbook/internal/exitcode"
	"cbook/internal/service"
)

func init() {
	Register(&RefreshCmd{})
}

// RefreshCmd implements the refresh command. Renewal is only ever triggered
// here, by explicit user action; nothing refreshes automatically on 401.
type RefreshCmd struct{}

func (c *RefreshCmd) Name() string      { return "refresh" }
func (c *RefreshCmd) Aliases() []string { return nil }
func (c *RefreshCmd) Synopsis() string  { return "Renew the access token" }
func (c *RefreshCmd) Usage() string     { return "cbook refresh [common flags]" }
func (c *RefreshCmd) NeedsAuth() bool   { return true }

func (c *RefreshCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RefreshCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	env, err := svc.Refresh(ctx)
	if err != nil {
		return transportFailure(errOut, err)
	}
	if !env.OK {
		// The session is left as-is; a failed refresh is the signal to log
		// in again, not a forced logout.
		return reportFailure(errOut, env)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
