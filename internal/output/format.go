// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cbook/internal/api"
	"cbook/internal/service"
)

// FormatEnvelope renders the uniform {ok, status, data} result as indented
// JSON, the same shape the backend's browser client showed in its output
// panels.
func FormatEnvelope(w io.Writer, env api.Envelope) {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "{\"ok\": %v, \"status\": %d}\n", env.OK, env.Status)
		return
	}
	fmt.Fprintf(w, "%s\n", data)
}

// FormatContact formats one row line.
// Format: "{ID:>4}  {NAME}  <{EMAIL}>  {PHONE}  {BIRTHDAY}" with the extra
// note appended in parentheses when present.
func FormatContact(w io.Writer, c service.Contact) {
	line := fmt.Sprintf("%4d  %s  <%s>  %s  %s", c.ID, displayName(c), c.Email, c.Phone, c.Birthday)
	if c.Extra != nil && strings.TrimSpace(*c.Extra) != "" {
		line += fmt.Sprintf("  (%s)", *c.Extra)
	}
	fmt.Fprintln(w, line)
}

// FormatUpcoming formats one upcoming-birthday line.
func FormatUpcoming(w io.Writer, c service.Contact) {
	fmt.Fprintf(w, "%s - %s\n", displayName(c), c.Birthday)
}

// displayName joins the name fields for display.
// Whitespace-only names become "(unnamed)".
func displayName(c service.Contact) string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return "(unnamed)"
	}
	return name
}
