package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Response is the last API answer shown in the raw response panel.
// It holds either the raw JSON payload or an error message, never both.
type Response struct {
	Service ServiceID
	Payload json.RawMessage
	Err     string
}

// OkResponse makes a successful response with the raw payload
func OkResponse(id ServiceID, payload json.RawMessage) Response {
	return Response{Service: id, Payload: payload}
}

// ErrResponse makes a failed response from err
func ErrResponse(id ServiceID, err error) Response {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Response{Service: id, Err: msg}
}

// IsErr reports whether the response carries an error
func (r Response) IsErr() bool {
	return r.Err != ""
}

// Pretty returns the response as indented JSON. Errors are shown as {"error": "..."}.
func (r Response) Pretty() string {
	if r.IsErr() {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]string{"error": r.Err}); err != nil {
			return r.Err
		}
		return strings.TrimRight(buf.String(), "\n")
	}
	if len(r.Payload) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Payload, "", "  "); err != nil {
		return string(r.Payload)
	}
	return buf.String()
}

// MarshalJSON keeps the tagged shape in JSON snapshots of the state
func (r Response) MarshalJSON() ([]byte, error) {
	if r.IsErr() {
		return json.Marshal(struct {
			Service ServiceID `json:"service"`
			Error   string    `json:"error"`
		}{Service: r.Service, Error: r.Err})
	}
	payload := r.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return json.Marshal(struct {
		Service ServiceID       `json:"service"`
		Payload json.RawMessage `json:"payload"`
	}{Service: r.Service, Payload: payload})
}

// UnmarshalJSON reads the shape written by MarshalJSON
func (r *Response) UnmarshalJSON(data []byte) error {
	var v struct {
		Service ServiceID       `json:"service"`
		Payload json.RawMessage `json:"payload"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Response{Service: v.Service, Payload: v.Payload, Err: v.Error}
	return nil
}
