package router

import (
	"net/url"
	"strings"
)

// ParseQuery splits a raw query string into a flat key/value map. Pairs are
// separated by "&" and split on the first "="; both halves are
// percent-decoded. A pair without "=" becomes a key with an empty value, and
// an empty query string yields an empty map.
func ParseQuery(raw string) map[string]string {
	out := make(map[string]string)
	if raw == "" {
		return out
	}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		out[decodeComponent(key)] = decodeComponent(value)
	}
	return out
}

// decodeComponent percent-decodes one query component, keeping it verbatim if
// the encoding is malformed.
func decodeComponent(s string) string {
	if dec, err := url.QueryUnescape(s); err == nil {
		return dec
	}
	return s
}

// splitRequestURL separates a transport-supplied request target into its path
// and raw query components. Both absolute and relative URL forms are accepted.
func splitRequestURL(rawURL string) (path, rawQuery string) {
	if u, err := url.Parse(rawURL); err == nil {
		return u.EscapedPath(), u.RawQuery
	}
	path, rawQuery, _ = strings.Cut(rawURL, "?")
	return path, rawQuery
}
