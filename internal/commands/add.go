package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"cbook/internal/config"
	"cbook/internal/exitcode"
	"cbook/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	first    string
	last     string
	email    string
	phone    string
	birthday string
	extra    string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a contact" }
func (c *AddCmd) Usage() string {
	return "cbook add --first <name> --last <name> --email <email> --phone <phone> --birthday <yyyy-mm-dd> [--extra <note>]"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.first, "first", "", "")
	fs.StringVar(&c.last, "last", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.phone, "phone", "", "")
	fs.StringVar(&c.birthday, "birthday", "", "")
	fs.StringVar(&c.extra, "extra", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if strings.TrimSpace(c.first) == "" || strings.TrimSpace(c.email) == "" {
		fmt.Fprintln(errOut, "error: --first and --email are required")
		return exitcode.UserError
	}

	row := service.NewContact{
		FirstName: strings.TrimSpace(c.first),
		LastName:  strings.TrimSpace(c.last),
		Email:     strings.TrimSpace(c.email),
		Phone:     strings.TrimSpace(c.phone),
		Birthday:  c.birthday,
	}
	if extra := strings.TrimSpace(c.extra); extra != "" {
		row.Extra = &extra
	}

	// The mutation's envelope decides the outcome; the snapshot refresh it
	// triggers is best-effort and not reported here.
	env, err := svc.CreateContact(ctx, row)
	if err != nil {
		return transportFailure(errOut, err)
	}
	if !env.OK {
		return reportFailure(errOut, env)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
