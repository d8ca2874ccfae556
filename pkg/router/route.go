package router

import (
	"github.com/flitframe/flit/pkg/common"
	"github.com/flitframe/flit/pkg/pattern"
)

// Route is one registered (method, pattern, handler) entry. Routes are
// immutable after registration and live for the lifetime of the application.
type Route struct {
	Method      string
	Pattern     *pattern.Compiled
	Handler     common.Handler
	Middlewares []common.Middleware
}

// Match is the result of a successful route lookup.
type Match struct {
	Route  *Route
	Path   string
	Params map[string]string
	Query  map[string]string
}

// table is the ordered route collection. Routes are appended during setup and
// only read afterwards, so lookups take no lock.
type table struct {
	routes []*Route
}

// add compiles the pattern and appends a route. Duplicate patterns are never
// rejected; an earlier registration with the same or an overlapping pattern
// simply keeps winning by position.
func (t *table) add(method, patternString string, h common.Handler, middlewares []common.Middleware) error {
	compiled, err := pattern.Compile(patternString)
	if err != nil {
		return err
	}
	t.routes = append(t.routes, &Route{
		Method:      method,
		Pattern:     compiled,
		Handler:     h,
		Middlewares: middlewares,
	})
	return nil
}

// lookup parses the request target into path and query components, then scans
// routes in registration order and returns the first whose method and pattern
// both match. Precedence is insertion order on purpose: an earlier looser
// pattern shadows a later more specific one, and no specificity heuristic is
// applied.
func (t *table) lookup(method, rawURL string) (*Match, bool) {
	path, rawQuery := splitRequestURL(rawURL)
	for _, rt := range t.routes {
		if rt.Method != method {
			continue
		}
		params, ok := rt.Pattern.Match(path)
		if !ok {
			continue
		}
		return &Match{
			Route:  rt,
			Path:   path,
			Params: params,
			Query:  ParseQuery(rawQuery),
		}, true
	}
	return nil, false
}
