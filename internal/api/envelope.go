package api

import (
	"encoding/json"
	"fmt"
)

// Envelope is the normalized result of every outbound request. It is the
// only response shape callers above the request client ever observe: HTTP
// failures (4xx/5xx) are carried here with OK=false and the body intact,
// never as Go errors.
type Envelope struct {
	// OK mirrors HTTP success-range semantics (2xx).
	OK bool

	// Status is the HTTP status code.
	Status int

	// Data is the decoded JSON value when the response declared a JSON
	// content type, otherwise the raw body as a string.
	Data any

	raw    []byte
	isJSON bool
}

// IsJSON reports whether the response declared application/json.
func (e Envelope) IsJSON() bool { return e.isJSON }

// Decode unmarshals the JSON body into v. It fails for non-JSON responses.
func (e Envelope) Decode(v any) error {
	if !e.isJSON {
		return fmt.Errorf("response is not json (status %d)", e.Status)
	}
	return json.Unmarshal(e.raw, v)
}

// MarshalJSON renders the envelope as {"ok":…,"status":…,"data":…}, the
// shape the CLI prints for display.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		OK     bool `json:"ok"`
		Status int  `json:"status"`
		Data   any  `json:"data"`
	}{e.OK, e.Status, e.Data})
}

// NewJSON builds a JSON envelope from a Go value. Used by fakes and tests;
// the request client builds envelopes from wire responses directly.
func NewJSON(status int, v any) Envelope {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("api: unmarshalable fake payload: %v", err))
	}
	var data any
	_ = json.Unmarshal(raw, &data)
	return Envelope{
		OK:     status >= 200 && status < 300,
		Status: status,
		Data:   data,
		raw:    raw,
		isJSON: true,
	}
}

// NewText builds a plain-text envelope. Used by fakes and tests.
func NewText(status int, body string) Envelope {
	return Envelope{
		OK:     status >= 200 && status < 300,
		Status: status,
		Data:   body,
		raw:    []byte(body),
	}
}
