// Package config defines the format-agnostic model for an environment
// suite, along with the Loader interface for reading it from a source.
//
// The `config.Suite` is the single source of truth for the `matrix` and
// `resolve` packages. Concrete loader implementations, such as for HCL,
// are provided in separate packages.
package config
