package model

import "encoding/json"

// Envelope is the normalized outcome of every gateway call. Consumers never
// need to distinguish transport failure, non-2xx status, 401 or parse
// failure by anything other than Success and Message; only a 401 on a
// protected endpoint additionally triggers the session-expiry side channel.
type Envelope struct {
	// Success is true only for a 2xx response with a parseable body.
	Success bool

	// Message carries a human-readable failure description when !Success.
	Message string

	// StatusCode is the HTTP status, or 0 when no response was obtained.
	StatusCode int

	// Body is the raw response payload for successful calls. Failure
	// envelopes leave it nil; the extracted message is all callers get.
	Body json.RawMessage
}

// Decode unmarshals the successful response body into v.
func (e *Envelope) Decode(v any) error {
	return json.Unmarshal(e.Body, v)
}
