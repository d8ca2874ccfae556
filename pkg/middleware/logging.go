// Package middleware provides built-in middleware for the flit framework, all
// in the same value-returning shape user middleware uses so they compose in
// one chain.
package middleware

import (
	"time"

	"go.uber.org/zap"

	"github.com/flitframe/flit/pkg/common"
	"github.com/flitframe/flit/pkg/response"
)

// Logging returns middleware that logs one line per request, choosing the
// level from the outcome: dispatch failures and 5xx at Error, 4xx at Warn,
// slow requests at Warn, everything else at Debug to avoid log spam.
func Logging(logger *zap.Logger) common.Middleware {
	return func(e *common.Event, next common.Next) (*response.Response, error) {
		start := time.Now()

		resp, err := next()

		duration := time.Since(start)
		fields := []zap.Field{
			zap.String("method", e.Method),
			zap.String("path", e.Path),
			zap.Duration("duration", duration),
		}

		if err != nil {
			logger.Error("Handler error", append(fields, zap.Error(err))...)
			return resp, err
		}
		if resp == nil {
			// A nil response with no error is a broken inner chain; pass it
			// through for the pipeline to reject rather than panicking here.
			logger.Error("No response produced", fields...)
			return nil, nil
		}

		fields = append(fields, zap.Int("status", resp.StatusCode))
		switch {
		case resp.StatusCode >= 500:
			logger.Error("Server error", fields...)
		case resp.StatusCode >= 400:
			logger.Warn("Client error", fields...)
		case duration > 1*time.Second:
			logger.Warn("Slow request", fields...)
		default:
			logger.Debug("Request", fields...)
		}

		return resp, nil
	}
}
