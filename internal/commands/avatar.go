package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cbook/internal/config"
	"cbook/internal/exitcode"
	"cbook/internal/output"
	"cbook/internal/service"
)

func init() {
	Register(&AvatarCmd{})
}

// AvatarCmd implements the avatar command: uploads an image file as the
// current user's avatar.
type AvatarCmd struct{}

func (c *AvatarCmd) Name() string      { return "avatar" }
func (c *AvatarCmd) Aliases() []string { return nil }
func (c *AvatarCmd) Synopsis() string  { return "Upload an avatar image" }
func (c *AvatarCmd) Usage() string     { return "cbook avatar <file>" }
func (c *AvatarCmd) NeedsAuth() bool   { return true }

func (c *AvatarCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AvatarCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: image file required")
		return exitcode.UserError
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	defer f.Close()

	env, err := svc.UploadAvatar(ctx, filepath.Base(args[0]), f)
	if err != nil {
		return transportFailure(errOut, err)
	}

	output.FormatEnvelope(out, env)
	if !env.OK {
		return reportFailure(errOut, env)
	}
	return exitcode.Success
}
