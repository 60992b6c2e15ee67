package loader

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env overrides fields of v from environment variables named by their env
// tags under prefix. Unset variables keep the current value. A nil environ
// reads the process environment.
func Env(prefix string, environ map[string]string, v any) error {
	opts := env.Options{Prefix: prefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(v, opts); err != nil {
		return fmt.Errorf("reading %s* environment: %w", prefix, err)
	}
	return nil
}
