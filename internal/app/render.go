package app

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/vk/envgrid/internal/resolve"
)

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeEnvironment renders one resolved environment as indented text.
// Map-valued settings render sorted by key, so the output for a given
// identifier is byte-identical across runs.
func writeEnvironment(w io.Writer, env *resolve.Environment) error {
	fmt.Fprintf(w, "environment: %s\n", env.ID)

	axes := make([]string, 0, len(env.Factors))
	for axis := range env.Factors {
		axes = append(axes, axis)
	}
	sort.Strings(axes)
	for _, axis := range axes {
		fmt.Fprintf(w, "  %s: %s\n", axis, env.Factors[axis])
	}

	s := env.Settings
	if s.Description != "" {
		fmt.Fprintf(w, "description: %s\n", s.Description)
	}
	if s.Python != "" {
		fmt.Fprintf(w, "python: %s\n", s.Python)
	}
	if s.EnvDir != "" {
		fmt.Fprintf(w, "env_dir: %s\n", s.EnvDir)
	}
	if s.Platform != "" {
		fmt.Fprintf(w, "platform: %s\n", s.Platform)
	}
	if s.Develop != nil {
		fmt.Fprintf(w, "develop: %t\n", *s.Develop)
	}
	if s.CheckStyle != nil {
		fmt.Fprintf(w, "check_style: %t\n", *s.CheckStyle)
	}

	writeList(w, "pass_env", s.PassEnv)
	writeList(w, "deps", s.Deps)

	if len(s.SetEnv) > 0 {
		fmt.Fprintln(w, "set_env:")
		names := make([]string, 0, len(s.SetEnv))
		for name := range s.SetEnv {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s=%s\n", name, s.SetEnv[name])
		}
	}

	writeList(w, "commands", s.Commands)
	writeList(w, "depends_on", s.DependsOn)
	return nil
}

func writeList(w io.Writer, name string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", name)
	for _, value := range values {
		fmt.Fprintf(w, "  - %s\n", value)
	}
}
