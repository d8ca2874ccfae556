package common

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// Store is a request-scoped key/value map shared between middleware and the
// handler. Each request owns exactly one store; the request pipeline is a
// single linear chain, so no locking is needed.
type Store struct {
	values map[string]any
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]any)}
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores a value under key, replacing any previous value.
func (s *Store) Set(key string, value any) {
	s.values[key] = value
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	return len(s.values)
}

// InvalidConfigKeyError reports a config key that is not uppercase.
type InvalidConfigKeyError struct {
	Key string
}

// Error implements the error interface.
func (e *InvalidConfigKeyError) Error() string {
	return fmt.Sprintf("config key %q is not uppercase", e.Key)
}

// ConfigStore holds application-scoped settings. It is populated through
// Merge during setup, before the transport starts accepting requests, and is
// treated as read-only afterwards, which makes concurrent reads safe without
// a lock.
type ConfigStore struct {
	values map[string]any
}

// NewConfigStore returns an empty config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

// Merge validates and applies a settings map. Every key must be uppercase;
// the merge is all-or-nothing: all keys are validated first and nothing is
// applied on error. The returned error aggregates every offending key.
func (s *ConfigStore) Merge(m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs error
	for _, k := range keys {
		if k == "" || k != strings.ToUpper(k) {
			errs = multierr.Append(errs, &InvalidConfigKeyError{Key: k})
		}
	}
	if errs != nil {
		return errs
	}

	for _, k := range keys {
		s.values[k] = m[k]
	}
	return nil
}

// Get returns the setting stored under key.
func (s *ConfigStore) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}
