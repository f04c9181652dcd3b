// Package schema declares the HCL-specific structures a suite file is
// decoded into. The `hcl` package translates these into the agnostic
// config model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// File represents the top-level structure of one suite file.
type File struct {
	Suite    *Suite    `hcl:"suite,block"`
	Axes     []*Axis   `hcl:"axis,block"`
	Defaults *Defaults `hcl:"defaults,block"`
	Envs     []*Env    `hcl:"env,block"`
}

// Suite is the `suite` block: suite-wide metadata and the matrix-wide
// interpreter default.
type Suite struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
	MinVersion  string `hcl:"min_version,optional"`
	BasePython  string `hcl:"base_python,optional"`
}

// Axis is an `axis` block: one named matrix dimension with its ordered
// labels.
type Axis struct {
	Name   string   `hcl:"name,label"`
	Labels []string `hcl:"labels"`
}

// Defaults is the `defaults` block. Its body holds the same settings
// attributes as an env block and is decoded attribute by attribute, so
// an absent list can be told apart from a declared-empty one.
type Defaults struct {
	Body hcl.Body `hcl:",remain"`
}

// Env is an `env` block: settings applied to every environment whose
// identifier contains all factors of the block's pattern label.
type Env struct {
	Pattern string   `hcl:"pattern,label"`
	Body    hcl.Body `hcl:",remain"`
}
