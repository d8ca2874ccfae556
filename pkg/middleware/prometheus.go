package middleware

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/flitframe/flit/pkg/common"
	"github.com/flitframe/flit/pkg/response"
)

// Metrics returns middleware that records a request counter and a latency
// histogram on the given Prometheus registry. Counters are labelled by
// method, matched route pattern, and status; the route pattern keeps label
// cardinality bounded regardless of path parameter values. Dispatch failures
// count under the status label "error".
func Metrics(reg prometheus.Registerer, namespace string) common.Middleware {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of dispatched requests.",
	}, []string{"method", "route", "status"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Request dispatch latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	reg.MustRegister(requests, latency)

	return func(e *common.Event, next common.Next) (*response.Response, error) {
		start := time.Now()

		resp, err := next()

		latency.WithLabelValues(e.Method, e.Route).Observe(time.Since(start).Seconds())

		status := "error"
		if err == nil {
			status = strconv.Itoa(resp.StatusCode)
		}
		requests.WithLabelValues(e.Method, e.Route, status).Inc()

		return resp, err
	}
}
