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
	Register(&UpcomingCmd{})
}

// UpcomingCmd implements the upcoming command: contacts with birthdays in
// the next N days. Read-only; it never touches the list snapshot.
type UpcomingCmd struct {
	days int
}

func (c *UpcomingCmd) Name() string      { return "upcoming" }
func (c *UpcomingCmd) Aliases() []string { return []string{"birthdays"} }
func (c *UpcomingCmd) Synopsis() string  { return "Show upcoming birthdays" }
func (c *UpcomingCmd) Usage() string     { return "cbook upcoming [--days <n>]" }
func (c *UpcomingCmd) NeedsAuth() bool   { return true }

func (c *UpcomingCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.days, "days", 7, "")
}

func (c *UpcomingCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.days < 1 {
		fmt.Fprintf(errOut, "error: invalid day count: %d\n", c.days)
		return exitcode.UserError
	}

	rows, env, err := svc.UpcomingBirthdays(ctx, c.days)
	if err != nil {
		return transportFailure(errOut, err)
	}
	if !env.OK {
		return reportFailure(errOut, env)
	}

	if len(rows) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no upcoming birthdays")
		}
		return exitcode.Success
	}

	for _, row := range rows {
		output.FormatUpcoming(out, row)
	}
	return exitcode.Success
}
