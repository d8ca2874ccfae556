// Package router provides the flit application context: route registration,
// first-match lookup over an ordered route table, and the middleware dispatch
// pipeline that turns an incoming request into a finalized response.
package router

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/flitframe/flit/pkg/common"
	"github.com/flitframe/flit/pkg/response"
)

// App is the application context. It holds the route table, the global
// middleware list, and the application config store, and is the entry point
// invoked per incoming request. All registration happens during setup, before
// the transport starts accepting requests; after that the App is read-only
// and safe for concurrent request handling.
type App struct {
	logger      *zap.Logger
	table       table
	middlewares []common.Middleware
	config      *common.ConfigStore

	shutdown   bool
	shutdownMu sync.RWMutex
	wg         sync.WaitGroup

	srvMu sync.Mutex
	srv   *http.Server
}

// New creates an App from the given options. It sets up the logger and merges
// any initial config; a non-uppercase config key fails the whole call.
func New(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		// Create a default logger if none is provided
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			// Fallback to a no-op logger if we can't create a production logger
			logger = zap.NewNop()
		}
	}

	a := &App{
		logger:      logger,
		middlewares: opts.Middlewares,
		config:      common.NewConfigStore(),
	}

	if opts.Config != nil {
		if err := a.config.Merge(opts.Config); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Use appends middleware to the global list, applied to every route before
// its route-specific middleware.
func (a *App) Use(middlewares ...common.Middleware) {
	a.middlewares = append(a.middlewares, middlewares...)
}

// Config merges a settings map into the application config store. Every key
// must be uppercase; the merge is all-or-nothing and the returned error names
// every offending key.
func (a *App) Config(m map[string]any) error {
	return a.config.Merge(m)
}

// ConfigValue reads a setting from the application config store.
func (a *App) ConfigValue(key string) (any, bool) {
	return a.config.Get(key)
}

// Get registers a handler for GET requests on the given pattern.
func (a *App) Get(path string, h common.Handler, middlewares ...common.Middleware) error {
	return a.addRoute(http.MethodGet, path, h, middlewares)
}

// Post registers a handler for POST requests on the given pattern.
func (a *App) Post(path string, h common.Handler, middlewares ...common.Middleware) error {
	return a.addRoute(http.MethodPost, path, h, middlewares)
}

// Put registers a handler for PUT requests on the given pattern.
func (a *App) Put(path string, h common.Handler, middlewares ...common.Middleware) error {
	return a.addRoute(http.MethodPut, path, h, middlewares)
}

// Patch registers a handler for PATCH requests on the given pattern.
func (a *App) Patch(path string, h common.Handler, middlewares ...common.Middleware) error {
	return a.addRoute(http.MethodPatch, path, h, middlewares)
}

// Del registers a handler for DELETE requests on the given pattern.
func (a *App) Del(path string, h common.Handler, middlewares ...common.Middleware) error {
	return a.addRoute(http.MethodDelete, path, h, middlewares)
}

// addRoute is the single funnel all per-method registration goes through.
// A malformed pattern surfaces as *pattern.InvalidPatternError.
func (a *App) addRoute(method, path string, h common.Handler, middlewares []common.Middleware) error {
	return a.table.add(method, path, h, middlewares)
}

// Handle is the request entry point for any transport. It looks the request
// up in the route table and either runs the dispatch pipeline on the matched
// route or synthesizes a 404 without invoking any middleware. A pipeline
// failure is logged and converted to a generic 500 here, at exactly one
// boundary.
func (a *App) Handle(ctx context.Context, method, rawURL string, header http.Header, body []byte) *response.Response {
	match, ok := a.table.lookup(method, rawURL)
	if !ok {
		return notFound()
	}

	e := &common.Event{
		Method:   method,
		URL:      rawURL,
		Path:     match.Path,
		Route:    match.Route.Pattern.String(),
		Params:   match.Params,
		Query:    match.Query,
		Header:   header,
		Body:     body,
		Locals:   common.NewStore(),
		Config:   a.config,
		Response: response.NewBuilder(),
	}
	e.WithContext(ctx)

	p := newPipeline(a.middlewares, match.Route.Middlewares, match.Route.Handler)
	resp, err := p.run(e)
	if err != nil {
		a.logError(err, method, match.Path)
		return internalServerError()
	}
	return resp
}

func (a *App) logError(err error, method, path string) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("method", method),
		zap.String("path", path),
	}
	var he *HandlerError
	if errors.As(err, &he) && he.Recovered != nil {
		fields = append(fields,
			zap.Any("panic", he.Recovered),
			zap.String("stack", string(he.Stack)),
		)
		a.logger.Error("Panic recovered", fields...)
		return
	}
	a.logger.Error("Handler error", fields...)
}

// notFound synthesizes the response for an unmatched request from a fresh
// builder. Route-not-found is a defined control-flow outcome, not an error.
func notFound() *response.Response {
	b := response.NewBuilder()
	_ = b.SetStatus(http.StatusNotFound)
	_ = b.SetStatusText("Not Found")
	return b.Text("Not Found")
}

// internalServerError synthesizes the generic failure response. Nothing from
// the failed pipeline leaks into it.
func internalServerError() *response.Response {
	b := response.NewBuilder()
	_ = b.SetStatus(http.StatusInternalServerError)
	_ = b.SetStatusText("Internal Server Error")
	return b.Text("Internal Server Error")
}
