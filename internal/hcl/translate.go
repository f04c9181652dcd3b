package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/envgrid/internal/config"
)

// translate converts the merged HCL-specific schema into the agnostic
// suite model.
func (m *mergedFiles) translate() (*config.Suite, error) {
	if m.suite == nil {
		return nil, config.Errorf("no suite block declared")
	}

	suite := &config.Suite{
		Name:        m.suite.Name,
		Description: m.suite.Description,
		MinVersion:  m.suite.MinVersion,
		BasePython:  m.suite.BasePython,
	}

	for _, axis := range m.axes {
		suite.Axes = append(suite.Axes, config.Axis{
			Name:   axis.Name,
			Labels: axis.Labels,
		})
	}

	if m.defaults != nil {
		settings, err := decodeSettings(m.defaults.Body)
		if err != nil {
			return nil, config.Errorf("defaults block: %s", err)
		}
		suite.Defaults = *settings
	}

	for _, env := range m.envs {
		if env.Pattern == "" {
			return nil, config.Errorf("env block with empty pattern")
		}
		settings, err := decodeSettings(env.Body)
		if err != nil {
			return nil, config.Errorf("env %q: %s", env.Pattern, err)
		}
		suite.Overrides = append(suite.Overrides, config.Override{
			Pattern:  env.Pattern,
			Settings: *settings,
		})
	}

	return suite, nil
}

// decodeSettings decodes a settings body attribute by attribute. Going
// through the raw attributes instead of gohcl keeps the distinction
// between an absent list (inherit) and a declared-empty one (clear),
// and rejects unknown attribute names instead of ignoring them.
func decodeSettings(body hcl.Body) (*config.Settings, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, config.Errorf("%s", diags.Error())
	}

	s := &config.Settings{}
	for name, attr := range attrs {
		var err error
		switch name {
		case "description":
			err = decodeString(attr, &s.Description)
		case "env_dir":
			err = decodeString(attr, &s.EnvDir)
		case "python":
			err = decodeString(attr, &s.Python)
		case "platform":
			err = decodeString(attr, &s.Platform)
		case "develop":
			err = decodeBool(attr, &s.Develop)
		case "check_style":
			err = decodeBool(attr, &s.CheckStyle)
		case "pass_env":
			err = decodeStringList(attr, &s.PassEnv)
		case "deps":
			err = decodeStringList(attr, &s.Deps)
		case "commands":
			err = decodeStringList(attr, &s.Commands)
		case "depends_on":
			err = decodeStringList(attr, &s.DependsOn)
		case "set_env":
			err = decodeStringMap(attr, &s.SetEnv)
		default:
			return nil, config.Errorf("unknown setting %q", name)
		}
		if err != nil {
			return nil, config.Errorf("setting %q: %s", name, err)
		}
	}
	return s, nil
}

func attrValue(attr *hcl.Attribute, want cty.Type) (cty.Value, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, config.Errorf("%s", diags.Error())
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return cty.NilVal, err
	}
	return converted, nil
}

func decodeString(attr *hcl.Attribute, target *string) error {
	val, err := attrValue(attr, cty.String)
	if err != nil {
		return err
	}
	return gocty.FromCtyValue(val, target)
}

func decodeBool(attr *hcl.Attribute, target **bool) error {
	val, err := attrValue(attr, cty.Bool)
	if err != nil {
		return err
	}
	var b bool
	if err := gocty.FromCtyValue(val, &b); err != nil {
		return err
	}
	*target = &b
	return nil
}

func decodeStringList(attr *hcl.Attribute, target *[]string) error {
	val, err := attrValue(attr, cty.List(cty.String))
	if err != nil {
		return err
	}
	// Non-nil even when empty: a declared-empty list clears inherited
	// values rather than inheriting them.
	out := make([]string, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		var s string
		if err := gocty.FromCtyValue(elem, &s); err != nil {
			return err
		}
		out = append(out, s)
	}
	*target = out
	return nil
}

func decodeStringMap(attr *hcl.Attribute, target *map[string]string) error {
	val, err := attrValue(attr, cty.Map(cty.String))
	if err != nil {
		return err
	}
	out := make(map[string]string, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		key, elem := it.Element()
		var k, v string
		if err := gocty.FromCtyValue(key, &k); err != nil {
			return err
		}
		if err := gocty.FromCtyValue(elem, &v); err != nil {
			return err
		}
		out[k] = v
	}
	*target = out
	return nil
}
