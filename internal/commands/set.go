package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"cbook/internal/config"
	"cbook/internal/exitcode"
	"cbook/internal/service"
)

func init() {
	Register(&SetCmd{})
}

// SetCmd implements the set command: a partial update of one contact.
// Only flags the user passed end up in the request body.
type SetCmd struct {
	fields map[string]*string
}

func (c *SetCmd) Name() string      { return "set" }
func (c *SetCmd) Aliases() []string { return []string{"update"} }
func (c *SetCmd) Synopsis() string  { return "Update fields of a contact" }
func (c *SetCmd) Usage() string {
	return "cbook set <id> [--first <name>] [--last <name>] [--email <email>] [--phone <phone>] [--birthday <yyyy-mm-dd>] [--extra <note>]"
}
func (c *SetCmd) NeedsAuth() bool { return true }

func (c *SetCmd) RegisterFlags(fs *flag.FlagSet) {
	c.fields = make(map[string]*string)
	for _, name := range []string{"first", "last", "email", "phone", "birthday", "extra"} {
		var v string
		p := &v
		fs.Var(setFlag{p: p, set: func() { c.fields[name] = p }}, name, "")
	}
}

func (c *SetCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: contact id required")
		return exitcode.UserError
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid contact id: %s\n", args[0])
		return exitcode.UserError
	}

	patch := service.ContactPatch{
		FirstName: c.fields["first"],
		LastName:  c.fields["last"],
		Email:     c.fields["email"],
		Phone:     c.fields["phone"],
		Birthday:  c.fields["birthday"],
		Extra:     c.fields["extra"],
	}
	if patch.IsZero() {
		fmt.Fprintln(errOut, "error: nothing to update (pass at least one field flag)")
		return exitcode.UserError
	}

	env, err := svc.UpdateContact(ctx, id, patch)
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

// setFlag records whether a flag was passed at all, so an explicit empty
// value (clearing a field) is distinguishable from an absent flag.
type setFlag struct {
	p   *string
	set func()
}

func (f setFlag) String() string {
	if f.p == nil {
		return ""
	}
	return *f.p
}

func (f setFlag) Set(v string) error {
	*f.p = v
	f.set()
	return nil
}
