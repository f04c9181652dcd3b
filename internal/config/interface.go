package config

import "context"

// Loader is the interface for a format-specific suite loader.
type Loader interface {
	// Load reads a suite from the given path (a single file or a
	// directory) and translates it into the format-agnostic model.
	Load(ctx context.Context, path string) (*Suite, error)
}
