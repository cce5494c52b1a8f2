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
	Register(&PingCmd{})
}

// PingCmd implements the ping diagnostics command. It hits the backend's
// docs page, which answers without auth, so it tells reachability apart
// from credential problems.
type PingCmd struct{}

func (c *PingCmd) Name() string      { return "ping" }
func (c *PingCmd) Aliases() []string { return nil }
func (c *PingCmd) Synopsis() string  { return "Check backend reachability" }
func (c *PingCmd) Usage() string     { return "cbook ping [common flags]" }
func (c *PingCmd) NeedsAuth() bool   { return false }

func (c *PingCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PingCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	env, err := svc.Ping(ctx)
	if err != nil {
		return transportFailure(errOut, err)
	}

	fmt.Fprintf(out, "{\"ok\": %v, \"status\": %d}\n", env.OK, env.Status)
	if !env.OK {
		return reportFailure(errOut, env)
	}
	return exitcode.Success
}
