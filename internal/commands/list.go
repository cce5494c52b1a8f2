package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"cbook/internal/config"
	"cbook/internal/exitcode"
	"cbook/internal/output"
	"cbook/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `cbook` (no args) and `cbook list [filters]`.
type ListCmd struct {
	first string
	last  string
	email string
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return nil }
func (c *ListCmd) Synopsis() string  { return "List contacts" }
func (c *ListCmd) Usage() string {
	return "cbook list [--first <name>] [--last <name>] [--email <email>]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.first, "first", "", "")
	fs.StringVar(&c.last, "last", "", "")
	fs.StringVar(&c.email, "email", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	rows, env, err := svc.ListContacts(ctx, service.Filter{
		FirstName: c.first,
		LastName:  c.last,
		Email:     c.email,
	})
	if err != nil {
		return transportFailure(errOut, err)
	}
	if !env.OK {
		return reportFailure(errOut, env)
	}

	if len(rows) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no contacts found")
		}
		return exitcode.Success
	}

	// Server order, as received. No client-side sorting.
	for _, row := range rows {
		output.FormatContact(out, row)
	}
	return exitcode.Success
}
