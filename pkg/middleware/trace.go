package middleware

import (
	"github.com/google/uuid"

	"github.com/flitframe/flit/pkg/common"
	"github.com/flitframe/flit/pkg/response"
)

// TraceKey is the locals key under which the per-request trace ID is stored.
const TraceKey = "trace_id"

// TraceHeader is the response header the trace ID is echoed in.
const TraceHeader = "X-Trace-Id"

// Trace returns middleware that assigns each request a unique trace ID,
// stores it in the event locals for later middleware and the handler, and
// echoes it in the response headers.
func Trace() common.Middleware {
	return func(e *common.Event, next common.Next) (*response.Response, error) {
		id := uuid.New().String()
		e.Locals.Set(TraceKey, id)
		if err := e.Response.SetHeader(TraceHeader, id); err != nil {
			return nil, err
		}
		return next()
	}
}

// TraceID extracts the trace ID assigned to the event. Returns an empty
// string if no trace ID is present.
func TraceID(e *common.Event) string {
	if v, ok := e.Locals.Get(TraceKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
