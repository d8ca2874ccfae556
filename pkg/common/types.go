// Package common provides the shared types used across the flit framework:
// the request event, the handler and middleware contracts, and the
// request-scoped and application-scoped stores.
package common

import (
	"github.com/flitframe/flit/pkg/response"
)

// Handler produces the final response for a matched route.
type Handler func(*Event) (*response.Response, error)

// Next dispatches the remainder of the middleware chain and returns the
// response produced further in.
type Next func() (*response.Response, error)

// Middleware wraps the remainder of the chain. It may call next and return
// the result untouched, call next and post-process the returned response, or
// never call next and answer on its own, short-circuiting everything after it.
type Middleware func(*Event, Next) (*response.Response, error)
