// Package pattern compiles route patterns such as "/users/:id" into matchers
// that test concrete request paths and extract named captures.
package pattern

import (
	"fmt"
	"net/url"
	"strings"
)

// InvalidPatternError reports a route pattern that cannot be compiled.
// It surfaces to the caller of the registration API and is never dropped.
type InvalidPatternError struct {
	Pattern string
	Reason  string
}

// Error implements the error interface.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid route pattern %q: %s", e.Pattern, e.Reason)
}

// segment is one piece of a compiled pattern. A parameter segment matches any
// single non-empty path segment and captures it under name.
type segment struct {
	literal string
	name    string
	param   bool
}

// Compiled is a route pattern compiled once at registration time. It is
// immutable and safe for concurrent use.
type Compiled struct {
	raw      string
	segments []segment
	names    []string
}

// Compile parses a route pattern made of literal and ":name" segments.
// It fails if the pattern is empty, if a parameter has an empty name
// (a bare ":"), or if the same parameter name appears twice.
func Compile(raw string) (*Compiled, error) {
	if raw == "" {
		return nil, &InvalidPatternError{Pattern: raw, Reason: "empty pattern"}
	}

	parts := splitPath(raw)
	c := &Compiled{raw: raw, segments: make([]segment, 0, len(parts))}
	seen := make(map[string]struct{})

	for _, p := range parts {
		if !strings.HasPrefix(p, ":") {
			c.segments = append(c.segments, segment{literal: p})
			continue
		}
		name := p[1:]
		if name == "" {
			return nil, &InvalidPatternError{Pattern: raw, Reason: "parameter with empty name"}
		}
		if _, dup := seen[name]; dup {
			return nil, &InvalidPatternError{Pattern: raw, Reason: fmt.Sprintf("duplicate parameter %q", name)}
		}
		seen[name] = struct{}{}
		c.segments = append(c.segments, segment{name: name, param: true})
		c.names = append(c.names, name)
	}

	return c, nil
}

// String returns the original pattern text.
func (c *Compiled) String() string {
	return c.raw
}

// ParamNames returns the parameter names in the order they appear in the
// pattern.
func (c *Compiled) ParamNames() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Match tests path against the pattern. Segment counts must be equal, so
// "/test" and "/test/" are distinct and a parameter consumes exactly one
// non-empty segment. Literal segments compare case-sensitively. On success
// the captured name->value map is returned with values percent-decoded;
// patterns with no parameters yield an empty map.
func (c *Compiled) Match(path string) (map[string]string, bool) {
	parts := splitPath(path)
	if len(parts) != len(c.segments) {
		return nil, false
	}

	params := make(map[string]string, len(c.names))
	for i, seg := range c.segments {
		got := parts[i]
		if !seg.param {
			if seg.literal != got {
				return nil, false
			}
			continue
		}
		if got == "" {
			return nil, false
		}
		params[seg.name] = decodeSegment(got)
	}
	return params, true
}

// splitPath splits on "/" and drops only the empty segment produced by a
// leading slash, so a trailing slash still contributes a segment and keeps
// "/test/" distinct from "/test".
func splitPath(s string) []string {
	parts := strings.Split(s, "/")
	if len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	return parts
}

// decodeSegment percent-decodes a captured segment, keeping it verbatim if
// the encoding is malformed.
func decodeSegment(s string) string {
	if dec, err := url.PathUnescape(s); err == nil {
		return dec
	}
	return s
}
