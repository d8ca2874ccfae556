package common

import (
	"context"
	"net/http"

	"github.com/flitframe/flit/pkg/response"
)

// Event carries one request through the middleware chain and handler. It is
// created when a route matches, passed by reference through the entire chain,
// and discarded once the response has been produced. An Event is owned by a
// single request and is not safe for concurrent use.
type Event struct {
	// Method is the HTTP method of the request.
	Method string

	// URL is the raw request target as received from the transport.
	URL string

	// Path is the path component of URL, without the query string.
	Path string

	// Route is the pattern text of the matched route, e.g. "/users/:id".
	Route string

	// Params holds the named captures extracted from the path. It is empty,
	// never nil, when the matched pattern has no parameters.
	Params map[string]string

	// Query holds the parsed query parameters.
	Query map[string]string

	// Header holds the request headers as delivered by the transport.
	Header http.Header

	// Body is the raw request body. Decoding it according to Content-Type is
	// the codec package's job.
	Body []byte

	// Locals is the request-scoped store shared between middleware and the
	// handler. It must never be referenced after the response is produced.
	Locals *Store

	// Config is the application-scoped config store, shared by all requests
	// and read-only during request processing.
	Config *ConfigStore

	// Response is the mutable builder the chain writes to and finalizes.
	Response *response.Builder

	ctx context.Context
}

// Context returns the request's context, falling back to context.Background
// when the transport supplied none.
func (e *Event) Context() context.Context {
	if e.ctx != nil {
		return e.ctx
	}
	return context.Background()
}

// WithContext attaches the transport request's context to the event.
func (e *Event) WithContext(ctx context.Context) *Event {
	e.ctx = ctx
	return e
}
