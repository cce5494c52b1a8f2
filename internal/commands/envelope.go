package commands

import (
	"fmt"
	"io"
	"net/http"

	"cbook/internal/api"
	"cbook/internal/exitcode"
)

// reportFailure prints a one-line error for a non-OK envelope and maps the
// status to an exit code. 401/403 get a hint to re-authenticate; the client
// never refreshes or retries on its own, so request counts stay observable.
func reportFailure(errOut io.Writer, env api.Envelope) int {
	switch env.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		fmt.Fprintf(errOut, "error: not authorized (status %d; run: cbook refresh or cbook login)\n", env.Status)
		return exitcode.AuthError
	}
	if env.Status >= 500 {
		fmt.Fprintf(errOut, "error: backend error: status %d\n", env.Status)
		return exitcode.BackendError
	}
	fmt.Fprintf(errOut, "error: request rejected: status %d\n", env.Status)
	return exitcode.UserError
}

// transportFailure prints a transport-class failure. The rendered snapshot,
// if any, is untouched by these.
func transportFailure(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: backend unreachable: %v\n", err)
	return exitcode.BackendError
}
