// Package matrix expands a set of ordered axes into the full Cartesian
// product of environment identifiers, and decomposes identifiers back
// into their per-axis factors.
package matrix

import (
	"fmt"
	"strings"

	"github.com/vk/envgrid/internal/config"
)

// Separator joins one label per axis into an environment identifier.
const Separator = "-"

// Matrix is a validated set of axes. It is immutable after New.
type Matrix struct {
	axes []config.Axis

	// axisOf maps every label to the index of the axis it belongs to.
	// Labels are globally unique across axes, so decomposition of an
	// identifier is unambiguous.
	axisOf map[string]int
}

// New validates the given axes and returns a Matrix over them. An empty
// axis list, an axis without labels, a label containing the identifier
// separator, or a label declared twice (within one axis or across axes)
// is a configuration error.
func New(axes []config.Axis) (*Matrix, error) {
	if len(axes) == 0 {
		return nil, config.Errorf("no axes declared: the matrix would contain no environments")
	}

	axisOf := make(map[string]int)
	for i, axis := range axes {
		if axis.Name == "" {
			return nil, config.Errorf("axis %d has no name", i)
		}
		if len(axis.Labels) == 0 {
			return nil, config.Errorf("axis %q has no labels", axis.Name)
		}
		for _, label := range axis.Labels {
			if label == "" {
				return nil, config.Errorf("axis %q contains an empty label", axis.Name)
			}
			if strings.Contains(label, Separator) {
				return nil, config.Errorf("axis %q: label %q must not contain %q", axis.Name, label, Separator)
			}
			if prev, ok := axisOf[label]; ok {
				return nil, config.Errorf("label %q declared on both axis %q and axis %q", label, axes[prev].Name, axis.Name)
			}
			axisOf[label] = i
		}
	}

	return &Matrix{axes: axes, axisOf: axisOf}, nil
}

// Axes returns the matrix dimensions in declaration order.
func (m *Matrix) Axes() []config.Axis {
	return m.axes
}

// Size returns the number of identifiers Expand will produce.
func (m *Matrix) Size() int {
	n := 1
	for _, axis := range m.axes {
		n *= len(axis.Labels)
	}
	return n
}

// Expand produces the ordered set of all environment identifiers: one
// label per axis joined with the separator, the first axis varying
// slowest.
func (m *Matrix) Expand() []string {
	ids := []string{""}
	for i, axis := range m.axes {
		next := make([]string, 0, len(ids)*len(axis.Labels))
		for _, prefix := range ids {
			for _, label := range axis.Labels {
				if i == 0 {
					next = append(next, label)
				} else {
					next = append(next, prefix+Separator+label)
				}
			}
		}
		ids = next
	}
	return ids
}

// Decompose splits an identifier into its factors and maps each one to
// its axis. It returns an error if any factor is not a declared label,
// or if the identifier does not name exactly one label per axis.
func (m *Matrix) Decompose(id string) (map[string]string, error) {
	factors := strings.Split(id, Separator)
	byAxis := make(map[string]string, len(m.axes))
	for _, factor := range factors {
		idx, ok := m.axisOf[factor]
		if !ok {
			return nil, &config.ResolveError{ID: id, Msg: fmt.Sprintf("unknown factor %q", factor)}
		}
		name := m.axes[idx].Name
		if _, dup := byAxis[name]; dup {
			return nil, &config.ResolveError{ID: id, Msg: fmt.Sprintf("two labels from axis %q", name)}
		}
		byAxis[name] = factor
	}
	if len(byAxis) != len(m.axes) {
		for _, axis := range m.axes {
			if _, ok := byAxis[axis.Name]; !ok {
				return nil, &config.ResolveError{ID: id, Msg: fmt.Sprintf("no label from axis %q", axis.Name)}
			}
		}
	}
	return byAxis, nil
}

// HasLabel reports whether the given string is a declared label on any
// axis.
func (m *Matrix) HasLabel(label string) bool {
	_, ok := m.axisOf[label]
	return ok
}
