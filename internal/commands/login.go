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
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate and store tokens" }
func (c *LoginCmd) Usage() string     { return "cbook login <email> <password>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: email and password required")
		return exitcode.UserError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	env, err := svc.Login(ctx, args[0], args[1])
	if err != nil {
		return transportFailure(errOut, err)
	}
	if !env.OK {
		// A rejected login leaves the stored credentials exactly as they
		// were.
		return reportFailure(errOut, env)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
