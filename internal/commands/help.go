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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "cbook help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  cbook                                             List contacts
  cbook list [common flags] [--first <name>] [--last <name>] [--email <email>]
  cbook add [common flags] --first <name> --email <email> [--last <name>] [--phone <phone>] [--birthday <yyyy-mm-dd>] [--extra <note>]
  cbook set [common flags] <id> [--first <name>] [--last <name>] [--email <email>] [--phone <phone>] [--birthday <yyyy-mm-dd>] [--extra <note>]
  cbook rm [common flags] <id>
  cbook upcoming [common flags] [--days <n>]
  cbook register [common flags] <email> <password>
  cbook login [common flags] <email> <password>
  cbook verify [common flags] <token>
  cbook forgot [common flags] <email>
  cbook reset [common flags] <token> <new-password>
  cbook refresh [common flags]
  cbook logout [common flags]
  cbook me [common flags]
  cbook avatar [common flags] <file>
  cbook default-avatar [common flags] [--set <url>]
  cbook ping [common flags]
  cbook help
  cbook version

Common flags:
  --config <dir>     Override config directory
  --base-url <url>   Override backend URL (or set CBOOK_BASE_URL)
  --quiet            Suppress informational output
  --debug            Print request logs to stderr
`
