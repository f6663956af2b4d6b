package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/EnigmaCurry/shell-scene/command"
	"github.com/EnigmaCurry/shell-scene/errors"
	"github.com/EnigmaCurry/shell-scene/pkg/fsutil"
	"github.com/EnigmaCurry/shell-scene/pkg/netutil"
	"github.com/EnigmaCurry/shell-scene/pkg/tmux"
)

// EnvConfigFile names a config file to use instead of the default location.
const EnvConfigFile = "SHELL_SCENE_CONFIG"

var configNames = []string{"config.yml", "config.yaml", "config.toml"}

// Options controls Load.
type Options struct {
	// Path is the --config flag. Empty means $SHELL_SCENE_CONFIG or the
	// XDG location.
	Path string
	// Flags are the parsed record flags, may be nil.
	Flags *Flags
	// Now stamps the default output file name.
	Now time.Time
	// SkipFinalize leaves Output and Workdir underived and skips validation.
	SkipFinalize bool
	Logger       *logrus.Entry
}

// Load builds the effective configuration: defaults, then the config file,
// then the environment, then flags. Unless SkipFinalize is set, derived
// defaults are filled in and the result is validated.
func Load(opts Options) (*Config, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	cfg := Default()

	path, err := FindConfigFile(opts.Path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.WithField("path", path).Debug("Loading configuration file")
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Record = mergeRecord(cfg.Record, fileCfg.Record)
		cfg.Logging = fileCfg.Logging
		cfg.Path = path
	}

	if err := ApplyEnv(&cfg.Record); err != nil {
		return nil, err
	}
	opts.Flags.Apply(&cfg.Record)

	if opts.SkipFinalize {
		return cfg, nil
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	if err := cfg.Record.Finalize(now); err != nil {
		return nil, err
	}
	if err := cfg.Record.Validate(); err != nil {
		return nil, err
	}

	if logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		if data, err := yaml.Marshal(cfg); err == nil {
			logger.Debugf("Effective configuration:\n%s", string(data))
		}
	}
	return cfg, nil
}

// FindConfigFile resolves the config file: explicit, then
// $SHELL_SCENE_CONFIG, then the first of config.{yml,yaml,toml} in the XDG
// config directory. Explicit files must exist; the XDG file is optional and
// "" is returned when there is none.
func FindConfigFile(explicit string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv(EnvConfigFile)
	}
	if explicit != "" {
		path, err := fsutil.ExpandPath(explicit)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid config path").
				WithDetail("path", explicit)
		}
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			return "", errors.ConfigNotFound(path)
		}
		return path, nil
	}

	dir := configDir()
	if dir == "" {
		return "", nil
	}
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}

// configDir returns the XDG config directory for shell-scene
func configDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "shell-scene")
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "shell-scene")
	}
	return ""
}

// LoadFile reads a YAML or TOML config file, chosen by extension, and
// validates it against the schema.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = "toml"
	}

	cfg, err := LoadFromBytes(data, format)
	if err != nil {
		if sceneErr, ok := errors.As(err); ok {
			return nil, sceneErr.WithDetail("path", path)
		}
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// LoadFromBytes parses a config document in the given format ("yaml" or
// "toml").
func LoadFromBytes(data []byte, format string) (*Config, error) {
	raw := map[string]interface{}{}
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
		}
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
	default:
		return nil, errors.ConfigInvalid(fmt.Sprintf("unsupported config format %q", format))
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create validator")
	}
	if err := validator.Validate(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "mapstructure",
		ErrorUnused: true,
		Result:      &cfg,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode configuration")
	}
	return &cfg, nil
}

// mergeRecord merges the non-zero fields of override into base
func mergeRecord(base, override RecordConfig) RecordConfig {
	result := base

	if override.Session != "" {
		result.Session = override.Session
	}
	if override.Cols != 0 {
		result.Cols = override.Cols
	}
	if override.Rows != 0 {
		result.Rows = override.Rows
	}
	if override.Port != 0 {
		result.Port = override.Port
	}
	if override.FontSize != 0 {
		result.FontSize = override.FontSize
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Workdir != "" {
		result.Workdir = override.Workdir
	}
	if override.KillOnDetach {
		result.KillOnDetach = true
	}
	if override.Browser != "" {
		result.Browser = override.Browser
	}
	if override.NoBrowser {
		result.NoBrowser = true
	}
	if len(override.Shell) > 0 {
		result.Shell = override.Shell
	}

	return result
}

// Finalize fills in the derived defaults: Workdir is $HOME and Output is
// $HOME/casts/<session>-<YYYYMMDD-HHMMSS>.cast. Both are made absolute.
func (r *RecordConfig) Finalize(now time.Time) error {
	if r.Workdir == "" || r.Output == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return errors.ConfigInvalid("HOME is not set; pass --workdir and --out")
		}
		if r.Workdir == "" {
			r.Workdir = home
		}
		if r.Output == "" {
			name := fmt.Sprintf("%s-%s.cast", r.Session, fsutil.Timestamp(now))
			r.Output = filepath.Join(home, "casts", name)
		}
	}

	var err error
	if r.Workdir, err = fsutil.ExpandPath(r.Workdir); err != nil {
		return errors.InvalidInput("workdir", err.Error())
	}
	if r.Output, err = fsutil.ExpandPath(r.Output); err != nil {
		return errors.InvalidInput("out", err.Error())
	}
	return nil
}

// Validate checks the values a recording cannot start without.
func (r *RecordConfig) Validate() error {
	if err := command.NewSafeBuilder().Validate("sessionName", r.Session); err != nil {
		return errors.InvalidInput("session", fmt.Sprintf("%v (try %q)", err, tmux.SanitizeSessionName(r.Session)))
	}
	if r.Cols <= 0 {
		return errors.InvalidInput("cols", "must be a positive integer")
	}
	if r.Rows <= 0 {
		return errors.InvalidInput("rows", "must be a positive integer")
	}
	if r.FontSize <= 0 {
		return errors.InvalidInput("font-size", "must be a positive integer")
	}
	if r.Port < 0 || r.Port > netutil.MaxPort {
		return errors.InvalidInput("port", fmt.Sprintf("must be between 0 and %d", netutil.MaxPort))
	}
	if len(r.Shell) == 0 {
		return errors.InvalidInput("shell", "must not be empty")
	}
	return nil
}
