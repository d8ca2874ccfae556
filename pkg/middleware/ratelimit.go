package middleware

import (
	"go.uber.org/ratelimit"

	"github.com/flitframe/flit/pkg/common"
	"github.com/flitframe/flit/pkg/response"
)

// RateLimit returns middleware that paces requests through a shared
// leaky-bucket limiter at rps requests per second, using Uber's ratelimit
// library. Take blocks until the next permitted slot, smoothing bursts rather
// than rejecting them; all routes carrying the same middleware value share
// one bucket.
func RateLimit(rps int) common.Middleware {
	limiter := ratelimit.New(rps)
	return func(e *common.Event, next common.Next) (*response.Response, error) {
		limiter.Take()
		return next()
	}
}
