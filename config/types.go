package config

import (
	"github.com/EnigmaCurry/shell-scene/engine"
	"github.com/EnigmaCurry/shell-scene/logging"
)

// Defaults for a recording.
const (
	DefaultSession  = "cast"
	DefaultCols     = 80
	DefaultRows     = 24
	DefaultPort     = 7681
	DefaultFontSize = 24
	DefaultBrowser  = engine.DefaultBrowser
)

// Config is the effective configuration of one invocation.
type Config struct {
	Record  RecordConfig   `yaml:"record,omitempty" toml:"record,omitempty" mapstructure:"record" json:"record,omitempty"`
	Logging logging.Config `yaml:"logging,omitempty" toml:"logging,omitempty" mapstructure:"logging" json:"logging,omitempty"`

	// Path is the config file that was loaded, if any.
	Path string `yaml:"-" toml:"-" mapstructure:"-" json:"-"`
}

// RecordConfig holds the parameters of a recording.
type RecordConfig struct {
	// Session is the tmux session name and the page title.
	Session string `yaml:"session,omitempty" toml:"session,omitempty" mapstructure:"session" json:"session,omitempty" jsonschema:"pattern=^[A-Za-z0-9_][A-Za-z0-9_.-]*$,maxLength=64,description=tmux session name"`

	Cols int `yaml:"cols,omitempty" toml:"cols,omitempty" mapstructure:"cols" json:"cols,omitempty" jsonschema:"minimum=1,description=Terminal width"`
	Rows int `yaml:"rows,omitempty" toml:"rows,omitempty" mapstructure:"rows" json:"rows,omitempty" jsonschema:"minimum=1,description=Terminal height"`

	// Port is where the free port scan starts.
	Port int `yaml:"port,omitempty" toml:"port,omitempty" mapstructure:"port" json:"port,omitempty" jsonschema:"minimum=0,maximum=65535,description=First port to try for ttyd"`

	FontSize int `yaml:"font_size,omitempty" toml:"font_size,omitempty" mapstructure:"font_size" json:"font_size,omitempty" jsonschema:"minimum=1,description=Font size of the web terminal"`

	// Output is the .cast file. Defaults to ~/casts/<session>-<timestamp>.cast.
	Output string `yaml:"out,omitempty" toml:"out,omitempty" mapstructure:"out" json:"out,omitempty" jsonschema:"description=asciicast output file"`

	// Workdir is the starting directory of the shell. Defaults to $HOME.
	Workdir string `yaml:"workdir,omitempty" toml:"workdir,omitempty" mapstructure:"workdir" json:"workdir,omitempty" jsonschema:"description=Working directory of the recorded shell"`

	KillOnDetach bool `yaml:"kill_on_detach,omitempty" toml:"kill_on_detach,omitempty" mapstructure:"kill_on_detach" json:"kill_on_detach,omitempty" jsonschema:"description=Kill the tmux session when the recorder exits"`

	// Browser opens the served URL. NoBrowser disables it.
	Browser   string `yaml:"browser,omitempty" toml:"browser,omitempty" mapstructure:"browser" json:"browser,omitempty" jsonschema:"description=Program used to open the served URL"`
	NoBrowser bool   `yaml:"no_browser,omitempty" toml:"no_browser,omitempty" mapstructure:"no_browser" json:"no_browser,omitempty" jsonschema:"description=Do not open a browser"`

	// Shell is the command of a new session's first window.
	Shell []string `yaml:"shell,omitempty" toml:"shell,omitempty" mapstructure:"shell" json:"shell,omitempty" jsonschema:"minItems=1,description=Command run in a new tmux session"`
}

// Default returns the built-in configuration. Output and Workdir are
// derived later, see Finalize.
func Default() *Config {
	return &Config{
		Record: RecordConfig{
			Session:  DefaultSession,
			Cols:     DefaultCols,
			Rows:     DefaultRows,
			Port:     DefaultPort,
			FontSize: DefaultFontSize,
			Browser:  DefaultBrowser,
			Shell:    append([]string(nil), engine.DefaultShell...),
		},
	}
}

// BrowserCommand returns the browser to start, or "" when disabled.
func (r RecordConfig) BrowserCommand() string {
	if r.NoBrowser {
		return ""
	}
	return r.Browser
}

// ToSession converts a finalized RecordConfig to the engine's descriptor.
func (r RecordConfig) ToSession() engine.Session {
	return engine.Session{
		Name:         r.Session,
		Cols:         r.Cols,
		Rows:         r.Rows,
		Port:         uint16(r.Port),
		FontSize:     r.FontSize,
		Output:       r.Output,
		Workdir:      r.Workdir,
		KillOnDetach: r.KillOnDetach,
	}
}

// ToSession converts a finalized Config to the engine's descriptor, including
// the config file it was loaded from.
func (c *Config) ToSession() engine.Session {
	s := c.Record.ToSession()
	s.ConfigFile = c.Path
	return s
}
