package config

// Suite is the unified, format-agnostic representation of an entire
// environment suite: the matrix axes plus the default and override
// settings blocks.
type Suite struct {
	Name        string
	Description string

	// MinVersion is the minimum tool version the suite requires, as a
	// semver string. Empty means no requirement.
	MinVersion string

	// BasePython is the interpreter used by environments that do not
	// override it.
	BasePython string

	// Axes are the matrix dimensions, in declaration order.
	Axes []Axis

	// Defaults is the base settings record every environment starts from.
	Defaults Settings

	// Overrides are the pattern-matched settings blocks, in declaration
	// order.
	Overrides []Override
}

// Axis is one dimension of the environment matrix: a named, ordered set
// of labels.
type Axis struct {
	Name   string
	Labels []string
}

// Override is a settings block that applies to every environment whose
// identifier contains all factors of Pattern.
type Override struct {
	Pattern  string
	Settings Settings
}

// Settings is one environment's configuration record. Zero values mean
// "inherit": an unset scalar or a nil list falls through to whatever an
// earlier layer declared. A non-nil empty list is significant — it clears
// the values accumulated so far.
type Settings struct {
	Description string            `json:"description,omitempty"`
	EnvDir      string            `json:"env_dir,omitempty"`
	Python      string            `json:"python,omitempty"`
	Platform    string            `json:"platform,omitempty"`
	Develop     *bool             `json:"develop,omitempty"`
	CheckStyle  *bool             `json:"check_style,omitempty"`
	PassEnv     []string          `json:"pass_env,omitempty"`
	Deps        []string          `json:"deps,omitempty"`
	Commands    []string          `json:"commands,omitempty"`
	SetEnv      map[string]string `json:"set_env,omitempty"`
	DependsOn   []string          `json:"depends_on,omitempty"`
}
