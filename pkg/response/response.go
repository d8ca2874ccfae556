// Package response provides the mutable builder handlers and middleware write
// to during a request, and the immutable response value it finalizes into.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// InvalidStatusError reports a status code outside the valid HTTP range.
type InvalidStatusError struct {
	Code int
}

// Error implements the error interface.
func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("status code %d outside [100,599]", e.Code)
}

// EmptyValueError reports an explicitly set value that must not be empty.
type EmptyValueError struct {
	Field string
}

// Error implements the error interface.
func (e *EmptyValueError) Error() string {
	return e.Field + " must not be empty"
}

// Response is a finalized response value: status, status text, headers, and
// body frozen together. It is what the transport sends to the client.
type Response struct {
	StatusCode int
	StatusText string
	Header     http.Header
	Body       []byte
}

// Builder accumulates status code, status text, and headers for one request.
// It is owned by a single request event and is not safe for concurrent use.
type Builder struct {
	status     int
	statusText string
	header     http.Header
}

// NewBuilder returns a builder with status 200 "OK" and no headers.
func NewBuilder() *Builder {
	return &Builder{
		status:     http.StatusOK,
		statusText: "OK",
		header:     make(http.Header),
	}
}

// SetStatus sets the status code. Codes outside [100,599] fail with
// InvalidStatusError and leave the builder unchanged.
func (b *Builder) SetStatus(code int) error {
	if code < 100 || code > 599 {
		return &InvalidStatusError{Code: code}
	}
	b.status = code
	return nil
}

// SetStatusText sets the status text. An empty text fails with
// EmptyValueError.
func (b *Builder) SetStatusText(text string) error {
	if text == "" {
		return &EmptyValueError{Field: "status text"}
	}
	b.statusText = text
	return nil
}

// SetHeader sets a header, replacing any previous value for the key. Header
// keys are case-insensitive per wire convention. An empty key or value fails
// with EmptyValueError.
func (b *Builder) SetHeader(key, value string) error {
	if key == "" {
		return &EmptyValueError{Field: "header key"}
	}
	if value == "" {
		return &EmptyValueError{Field: "header value"}
	}
	b.header.Set(key, value)
	return nil
}

// Status returns the current status code.
func (b *Builder) Status() int {
	return b.status
}

// Header returns the value accumulated for a header key.
func (b *Builder) Header(key string) string {
	return b.header.Get(key)
}

// Text finalizes the builder with a plain-text body and Content-Type
// "text/plain".
func (b *Builder) Text(body string) *Response {
	return b.finalize([]byte(body), "text/plain")
}

// HTML finalizes the builder with an HTML body and Content-Type "text/html".
func (b *Builder) HTML(body string) *Response {
	return b.finalize([]byte(body), "text/html")
}

// JSON marshals v and finalizes the builder with Content-Type
// "application/json".
func (b *Builder) JSON(v any) (*Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b.finalize(body, "application/json"), nil
}

// Send finalizes the builder with a raw body and no implicit Content-Type;
// whatever was set through SetHeader is kept as-is, leaving the rest to
// transport defaults.
func (b *Builder) Send(body []byte) *Response {
	return b.finalize(body, "")
}

// finalize snapshots the accumulated state into an independent Response. The
// builder itself is left untouched, so a later finalizer call observes the
// same accumulated state.
func (b *Builder) finalize(body []byte, contentType string) *Response {
	header := make(http.Header, len(b.header)+1)
	for k, vs := range b.header {
		header[k] = append([]string(nil), vs...)
	}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &Response{
		StatusCode: b.status,
		StatusText: b.statusText,
		Header:     header,
		Body:       body,
	}
}
