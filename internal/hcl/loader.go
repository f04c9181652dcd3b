package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/envgrid/internal/config"
	"github.com/vk/envgrid/internal/ctxlog"
	"github.com/vk/envgrid/internal/fsutil"
	"github.com/vk/envgrid/internal/schema"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL suite loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads the suite from a single .hcl file or from every .hcl file
// under a directory. Multiple files are decoded in name order and merged
// into one suite: axis and env blocks append, while the suite and
// defaults blocks may each appear only once across all files.
func (l *Loader) Load(ctx context.Context, path string) (*config.Suite, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.discover(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Suite files discovered.", "path", path, "count", len(files))

	var merged mergedFiles
	for _, file := range files {
		hclFile, diags := l.parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, config.Errorf("parse %s: %s", file, diags.Error())
		}

		var decoded schema.File
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &decoded); diags.HasErrors() {
			return nil, config.Errorf("decode %s: %s", file, diags.Error())
		}

		if err := merged.add(file, &decoded); err != nil {
			return nil, err
		}
	}

	suite, err := merged.translate()
	if err != nil {
		return nil, err
	}
	logger.Debug("Suite translated into unified model.",
		"suite", suite.Name,
		"axes", len(suite.Axes),
		"overrides", len(suite.Overrides),
	)
	return suite, nil
}

// discover resolves the given path into an ordered list of suite files.
func (l *Loader) discover(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("suite path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("scanning suite directory: %w", err)
	}
	if len(files) == 0 {
		return nil, config.Errorf("no .hcl suite files found under %s", path)
	}
	return files, nil
}

// mergedFiles accumulates decoded schema files before translation.
type mergedFiles struct {
	suite     *schema.Suite
	suiteFile string
	defaults  *schema.Defaults
	axes      []*schema.Axis
	envs      []*schema.Env
}

func (m *mergedFiles) add(file string, f *schema.File) error {
	if f.Suite != nil {
		if m.suite != nil {
			return config.Errorf("duplicate suite block: already declared in %s", m.suiteFile)
		}
		m.suite = f.Suite
		m.suiteFile = file
	}
	if f.Defaults != nil {
		if m.defaults != nil {
			return config.Errorf("%s: duplicate defaults block", file)
		}
		m.defaults = f.Defaults
	}
	m.axes = append(m.axes, f.Axes...)
	m.envs = append(m.envs, f.Envs...)
	return nil
}
