package common

import (
	"github.com/flitframe/flit/pkg/response"
)

// Chain represents an ordered list of middleware.
type Chain []Middleware

// NewChain creates a new middleware chain.
func NewChain(middlewares ...Middleware) Chain {
	return middlewares
}

// Append adds middleware to the end of the chain.
func (c Chain) Append(middlewares ...Middleware) Chain {
	return append(c, middlewares...)
}

// Prepend adds middleware to the beginning of the chain.
func (c Chain) Prepend(middlewares ...Middleware) Chain {
	result := make(Chain, len(middlewares)+len(c))
	copy(result, middlewares)
	copy(result[len(middlewares):], c)
	return result
}

// Then binds the chain around a terminal handler, first middleware outermost.
// Each middleware receives a continuation bound to the remainder of the
// chain; the continuation past the last middleware invokes the handler.
func (c Chain) Then(h Handler) Handler {
	return func(e *Event) (*response.Response, error) {
		var run func(i int) (*response.Response, error)
		run = func(i int) (*response.Response, error) {
			if i >= len(c) {
				return h(e)
			}
			return c[i](e, func() (*response.Response, error) {
				return run(i + 1)
			})
		}
		return run(0)
	}
}
