package router

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/flitframe/flit/pkg/common"
	"github.com/flitframe/flit/pkg/response"
)

// HandlerError wraps an error or panic that escaped a middleware or handler
// during dispatch. It is recovered at the application boundary, logged, and
// converted to a generic 500; the original cause is never exposed to the
// client.
type HandlerError struct {
	Err       error
	Recovered any    // non-nil when the failure was a panic
	Stack     []byte // captured at the recovery point for panics
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in handler: %v", e.Recovered)
	}
	return "handler error: " + e.Err.Error()
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// pipelineState tracks dispatch progress for one request.
type pipelineState int

const (
	// statePending means the chain is assembled but not yet started.
	statePending pipelineState = iota
	// stateRunning means a middleware or the handler is currently executing.
	stateRunning
	// stateCompleted means a response has been produced.
	stateCompleted
	// stateFailed means an unrecovered error occurred before a response was
	// produced.
	stateFailed
)

// pipeline composes global middleware, route middleware, and the terminal
// handler into one dispatchable chain. The chain is assembled per request:
// global middleware first, then the matched route's, each list in
// registration order.
type pipeline struct {
	chain   common.Chain
	handler common.Handler
	state   pipelineState
	index   int
}

func newPipeline(global, route []common.Middleware, h common.Handler) *pipeline {
	// The chain gets its own backing array: appending route middleware onto
	// the App's shared global slice would let concurrent requests write into
	// the same spare capacity and run each other's route middleware.
	chain := make(common.Chain, 0, len(global)+len(route))
	chain = append(chain, global...)
	chain = append(chain, route...)
	return &pipeline{
		chain:   chain,
		handler: h,
		state:   statePending,
	}
}

// run dispatches the chain starting at index 0. Any error or panic raised by
// a middleware or the handler transitions the pipeline to failed and comes
// back as a *HandlerError, so no partially built response ever escapes.
func (p *pipeline) run(e *common.Event) (resp *response.Response, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			p.state = stateFailed
			resp = nil
			err = &HandlerError{Recovered: rec, Stack: debug.Stack()}
		}
	}()

	p.state = stateRunning
	resp, err = p.dispatch(e, 0)
	if err != nil {
		p.state = stateFailed
		return nil, &HandlerError{Err: err}
	}
	if resp == nil {
		p.state = stateFailed
		return nil, &HandlerError{Err: errors.New("chain produced no response")}
	}
	p.state = stateCompleted
	return resp, nil
}

// dispatch invokes middleware i with a continuation bound to i+1; past the
// last middleware the continuation invokes the terminal handler. A middleware
// that never calls its continuation short-circuits the rest of the chain.
func (p *pipeline) dispatch(e *common.Event, i int) (*response.Response, error) {
	if i >= len(p.chain) {
		return p.handler(e)
	}
	p.index = i
	return p.chain[i](e, func() (*response.Response, error) {
		return p.dispatch(e, i+1)
	})
}
