package router

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/flitframe/flit/pkg/common"
)

// Options defines the setup-time configuration for an App. The zero value is
// usable: a production zap logger is created and no middleware or config is
// installed.
type Options struct {
	// Logger is used for all application logging. If nil, a production
	// logger is created, falling back to a no-op logger on failure.
	Logger *zap.Logger

	// Middlewares are applied to every route, before route-specific
	// middleware, in the order given.
	Middlewares []common.Middleware

	// Config is merged into the application config store at construction.
	// Keys must be uppercase.
	Config map[string]any
}

// LoadConfig reads a YAML file into a settings map suitable for App.Config.
// Key validation happens on merge, not here.
func LoadConfig(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
