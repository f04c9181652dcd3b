// Package hcl implements the config.Loader interface for HCL suite
// files. It discovers and parses the files, decodes them into the
// schema structures, and translates those into the agnostic model.
package hcl
