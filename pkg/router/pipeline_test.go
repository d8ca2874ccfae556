package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flitframe/flit/pkg/common"
	"github.com/flitframe/flit/pkg/response"
)

func pipelineEvent() *common.Event {
	return &common.Event{
		Method:   "GET",
		Path:     "/",
		Locals:   common.NewStore(),
		Response: response.NewBuilder(),
	}
}

func mark(calls *[]string, label string) common.Middleware {
	return func(e *common.Event, next common.Next) (*response.Response, error) {
		*calls = append(*calls, label+" before")
		resp, err := next()
		*calls = append(*calls, label+" after")
		return resp, err
	}
}

func TestPipelineGlobalThenRouteOrder(t *testing.T) {
	var calls []string
	h := func(e *common.Event) (*response.Response, error) {
		calls = append(calls, "handler")
		return e.Response.Text("ok"), nil
	}

	p := newPipeline(
		[]common.Middleware{mark(&calls, "G1"), mark(&calls, "G2")},
		[]common.Middleware{mark(&calls, "R1")},
		h,
	)
	assert.Equal(t, statePending, p.state)

	resp, err := p.run(pipelineEvent())
	require.NoError(t, err)
	assert.Equal(t, "ok", string(resp.Body))
	assert.Equal(t, stateCompleted, p.state)
	assert.Equal(t, 2, p.index) // last middleware dispatched
	assert.Equal(t, []string{
		"G1 before", "G2 before", "R1 before",
		"handler",
		"R1 after", "G2 after", "G1 after",
	}, calls)
}

func TestPipelineChainDoesNotAliasGlobalSlice(t *testing.T) {
	// Two pipelines built from the same global slice with spare capacity
	// must not see each other's route middleware through a shared backing
	// array.
	stamp := func(label string) common.Middleware {
		return func(e *common.Event, next common.Next) (*response.Response, error) {
			e.Locals.Set("route_mw", label)
			return next()
		}
	}
	h := func(e *common.Event) (*response.Response, error) {
		label, _ := e.Locals.Get("route_mw")
		return e.Response.Text(label.(string)), nil
	}

	global := make([]common.Middleware, 0, 4)
	global = append(global, func(e *common.Event, next common.Next) (*response.Response, error) {
		return next()
	})
	require.Greater(t, cap(global), len(global))

	pA := newPipeline(global, []common.Middleware{stamp("A")}, h)
	pB := newPipeline(global, []common.Middleware{stamp("B")}, h)

	respA, err := pA.run(pipelineEvent())
	require.NoError(t, err)
	respB, err := pB.run(pipelineEvent())
	require.NoError(t, err)

	assert.Equal(t, "A", string(respA.Body))
	assert.Equal(t, "B", string(respB.Body))
}

func TestPipelineShortCircuitSkipsHandler(t *testing.T) {
	var calls []string
	short := func(e *common.Event, next common.Next) (*response.Response, error) {
		calls = append(calls, "short")
		_ = e.Response.SetStatus(401)
		return e.Response.Text("denied"), nil
	}
	h := func(e *common.Event) (*response.Response, error) {
		calls = append(calls, "handler")
		return e.Response.Text("ok"), nil
	}

	p := newPipeline([]common.Middleware{mark(&calls, "A"), short}, nil, h)
	resp, err := p.run(pipelineEvent())

	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, stateCompleted, p.state)
	assert.Equal(t, []string{"A before", "short", "A after"}, calls)
}

func TestPipelineHandlerErrorFails(t *testing.T) {
	boom := errors.New("boom")
	h := func(e *common.Event) (*response.Response, error) {
		return nil, boom
	}

	p := newPipeline(nil, nil, h)
	resp, err := p.run(pipelineEvent())

	assert.Nil(t, resp)
	assert.Equal(t, stateFailed, p.state)

	var herr *HandlerError
	require.ErrorAs(t, err, &herr)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, herr.Recovered)
}

func TestPipelinePanicRecovered(t *testing.T) {
	h := func(e *common.Event) (*response.Response, error) {
		panic("kaboom")
	}

	p := newPipeline(nil, nil, h)
	resp, err := p.run(pipelineEvent())

	assert.Nil(t, resp)
	assert.Equal(t, stateFailed, p.state)

	var herr *HandlerError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "kaboom", herr.Recovered)
	assert.NotEmpty(t, herr.Stack)
}

func TestPipelineMiddlewarePanicRecovered(t *testing.T) {
	var handlerRan bool
	mw := func(e *common.Event, next common.Next) (*response.Response, error) {
		panic("middleware kaboom")
	}
	h := func(e *common.Event) (*response.Response, error) {
		handlerRan = true
		return e.Response.Text("ok"), nil
	}

	p := newPipeline([]common.Middleware{mw}, nil, h)
	_, err := p.run(pipelineEvent())

	var herr *HandlerError
	require.ErrorAs(t, err, &herr)
	assert.False(t, handlerRan)
	assert.Equal(t, stateFailed, p.state)
}

func TestPipelineNilResponseFails(t *testing.T) {
	h := func(e *common.Event) (*response.Response, error) {
		return nil, nil
	}

	p := newPipeline(nil, nil, h)
	resp, err := p.run(pipelineEvent())

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Equal(t, stateFailed, p.state)
}

func TestPipelineErrorSkipsOuterPostProcessing(t *testing.T) {
	// A post-processing middleware above the failure point gets the error,
	// not a response to mutate.
	var sawResp *response.Response
	var sawErr error
	outer := func(e *common.Event, next common.Next) (*response.Response, error) {
		sawResp, sawErr = next()
		return sawResp, sawErr
	}
	h := func(e *common.Event) (*response.Response, error) {
		return nil, errors.New("downstream failure")
	}

	p := newPipeline([]common.Middleware{outer}, nil, h)
	_, err := p.run(pipelineEvent())

	require.Error(t, err)
	assert.Nil(t, sawResp)
	assert.Error(t, sawErr)
}
