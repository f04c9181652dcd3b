// Package resolve turns a loaded suite into concrete environments: it
// expands the matrix, matches override blocks against environment
// identifiers, and merges settings into the final per-environment record.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"dario.cat/mergo"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/vk/envgrid/internal/config"
	"github.com/vk/envgrid/internal/dag"
	"github.com/vk/envgrid/internal/matrix"
)

// Environment is one fully resolved member of the matrix.
type Environment struct {
	// ID is the environment identifier, one label per axis.
	ID string `json:"id"`

	// Factors maps each axis name to the label this environment carries
	// on that axis.
	Factors map[string]string `json:"factors"`

	// Settings is the merged configuration record.
	Settings config.Settings `json:"settings"`
}

// Resolver answers questions about a suite's expanded matrix. It is
// immutable after New and safe for concurrent use.
type Resolver struct {
	suite *config.Suite
	m     *matrix.Matrix
	ids   []string
}

// New builds a Resolver for the suite. It validates the axes and every
// override pattern, so a suite that refers to undeclared labels fails
// here rather than on first use.
func New(suite *config.Suite) (*Resolver, error) {
	m, err := matrix.New(suite.Axes)
	if err != nil {
		return nil, err
	}

	for _, override := range suite.Overrides {
		for _, factor := range patternFactors(override.Pattern) {
			if !m.HasLabel(factor) {
				return nil, config.Errorf("env %q refers to undeclared label %q", override.Pattern, factor)
			}
		}
	}

	return &Resolver{suite: suite, m: m, ids: m.Expand()}, nil
}

// IDs returns every environment identifier in matrix order.
func (r *Resolver) IDs() []string {
	ids := make([]string, len(r.ids))
	copy(ids, r.ids)
	return ids
}

// Resolve produces the merged environment record for the given
// identifier. Resolution is pure: the same identifier always yields an
// identical record.
func (r *Resolver) Resolve(id string) (*Environment, error) {
	factors, err := r.m.Decompose(id)
	if err != nil {
		return nil, err
	}

	settings := config.Settings{}
	if err := mergeSettings(&settings, r.suite.Defaults); err != nil {
		return nil, err
	}
	for _, override := range r.suite.Overrides {
		if !r.matches(override.Pattern, factors) {
			continue
		}
		if err := mergeSettings(&settings, override.Settings); err != nil {
			return nil, err
		}
	}

	if settings.Python == "" {
		settings.Python = r.suite.BasePython
	}

	return &Environment{ID: id, Factors: factors, Settings: settings}, nil
}

// ResolveAll resolves every environment in the matrix, in matrix order.
func (r *Resolver) ResolveAll() ([]*Environment, error) {
	envs := make([]*Environment, 0, len(r.ids))
	for _, id := range r.ids {
		env, err := r.Resolve(id)
		if err != nil {
			return nil, err
		}
		envs = append(envs, env)
	}
	return envs, nil
}

// RunOrder expands every environment's depends_on patterns into graph
// edges and returns the identifiers in an order that satisfies them.
// A depends_on pattern that matches no environment, or a dependency
// cycle, is an error.
func (r *Resolver) RunOrder() ([]string, error) {
	graph := dag.New()
	for _, id := range r.ids {
		graph.AddNode(id)
	}

	for _, id := range r.ids {
		env, err := r.Resolve(id)
		if err != nil {
			return nil, err
		}
		for _, pattern := range env.Settings.DependsOn {
			matched, err := r.Match(pattern)
			if err != nil {
				return nil, err
			}
			for _, depID := range matched {
				if depID == id {
					continue
				}
				if err := graph.AddEdge(depID, id); err != nil {
					return nil, err
				}
			}
		}
	}

	order, err := graph.TopoSort()
	if err != nil {
		return nil, fmt.Errorf("ordering environments: %w", err)
	}
	return order, nil
}

// Match returns the identifiers of every environment the given pattern
// applies to, in matrix order. A pattern with undeclared factors or no
// matching environment is a configuration error.
func (r *Resolver) Match(pattern string) ([]string, error) {
	for _, factor := range patternFactors(pattern) {
		if !r.m.HasLabel(factor) {
			return nil, config.Errorf("pattern %q refers to undeclared label %q", pattern, factor)
		}
	}

	var matched []string
	for _, id := range r.ids {
		factors, err := r.m.Decompose(id)
		if err != nil {
			return nil, err
		}
		if r.matches(pattern, factors) {
			matched = append(matched, id)
		}
	}
	if len(matched) == 0 {
		return nil, config.Errorf("pattern %q matches no environment", pattern)
	}
	return matched, nil
}

// matches reports whether every factor of the pattern appears among the
// environment's factors. Matching is whole-factor: the pattern "6.0"
// applies to "py38-6.0" but never to "py38-16.0".
func (r *Resolver) matches(pattern string, factors map[string]string) bool {
	for _, want := range patternFactors(pattern) {
		found := false
		for _, label := range factors {
			if label == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// patternFactors splits an override pattern into its factor set.
func patternFactors(pattern string) []string {
	return strings.Split(pattern, matrix.Separator)
}

// mergeSettings layers src on top of dst: scalars replace, set_env
// merges per key with src winning, and list fields concatenate in
// declared order. A src list that is declared but empty clears what
// was accumulated so far instead of appending.
//
// Booleans and the set_env map are handled before the mergo pass: a
// declared `develop = false` must still override an inherited true,
// which mergo's zero-value rule would skip, and copying set_env entry
// by entry keeps dst from aliasing the suite's own map.
func mergeSettings(dst *config.Settings, src config.Settings) error {
	for _, pair := range [][2]*[]string{
		{&dst.PassEnv, &src.PassEnv},
		{&dst.Deps, &src.Deps},
		{&dst.Commands, &src.Commands},
		{&dst.DependsOn, &src.DependsOn},
	} {
		if *pair[1] != nil && len(*pair[1]) == 0 {
			*pair[0] = nil
			*pair[1] = nil
		}
	}

	if src.Develop != nil {
		v := *src.Develop
		dst.Develop = &v
		src.Develop = nil
	}
	if src.CheckStyle != nil {
		v := *src.CheckStyle
		dst.CheckStyle = &v
		src.CheckStyle = nil
	}
	if src.SetEnv != nil {
		if dst.SetEnv == nil {
			dst.SetEnv = make(map[string]string, len(src.SetEnv))
		}
		for k, v := range src.SetEnv {
			dst.SetEnv[k] = v
		}
		src.SetEnv = nil
	}

	return mergo.Merge(dst, src, mergo.WithOverride, mergo.WithAppendSlice)
}

// PassthroughEnv filters the invoking shell's environment down to the
// variables the resolved pass_env patterns admit. The result keeps
// pattern declaration order, names sorted within each pattern, and
// never lists a variable twice.
func PassthroughEnv(env *Environment, environ []string) []string {
	if len(env.Settings.PassEnv) == 0 {
		return nil
	}

	names := make([]string, 0, len(environ))
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := values[name]; !seen {
			names = append(names, name)
		}
		values[name] = value
	}
	sort.Strings(names)

	var out []string
	taken := make(map[string]bool)
	for _, pattern := range env.Settings.PassEnv {
		for _, name := range names {
			if taken[name] {
				continue
			}
			if ok, err := doublestar.Match(pattern, name); err == nil && ok {
				out = append(out, name+"="+values[name])
				taken[name] = true
			}
		}
	}
	return out
}
