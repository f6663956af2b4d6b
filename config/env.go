package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/EnigmaCurry/shell-scene/errors"
)

// Boolish is a boolean that also accepts yes/no and on/off. It is used for
// TMUX_KILL_ON_DETACH and --kill-on-detach, and remembers whether it was set.
type Boolish struct {
	value bool
	set   bool
}

// ParseBoolish parses true/false, 1/0, yes/no and on/off, ignoring case.
func ParseBoolish(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q (use true/false, 1/0, yes/no, on/off)", s)
}

// Decode implements envconfig.Decoder. An empty variable leaves b unset.
func (b *Boolish) Decode(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return b.Set(value)
}

// Set implements pflag.Value.
func (b *Boolish) Set(value string) error {
	v, err := ParseBoolish(value)
	if err != nil {
		return err
	}
	b.value = v
	b.set = true
	return nil
}

// String implements pflag.Value.
func (b *Boolish) String() string {
	return strconv.FormatBool(b.value)
}

// Type implements pflag.Value.
func (b *Boolish) Type() string {
	return "bool"
}

// Value returns the parsed value.
func (b *Boolish) Value() bool {
	return b.value
}

// IsSet reports whether a value was parsed.
func (b *Boolish) IsSet() bool {
	return b.set
}

// recordEnv is the environment channel. Unset variables stay nil. The names
// match the engine.Env* constants the orchestrator exports to hook mode.
type recordEnv struct {
	Session      *string `envconfig:"SESSION"`
	Cols         *int    `envconfig:"TMUX_COLS"`
	Rows         *int    `envconfig:"TMUX_ROWS"`
	Port         *int    `envconfig:"TT_PORT"`
	FontSize     *int    `envconfig:"FONT_SIZE"`
	Output       *string `envconfig:"ASCII_OUT"`
	Workdir      *string `envconfig:"WORKING_DIRECTORY"`
	KillOnDetach Boolish `envconfig:"TMUX_KILL_ON_DETACH"`
}

// ApplyEnv overrides r with the recording variables present in the
// environment. Empty text and boolean variables are treated as unset.
func ApplyEnv(r *RecordConfig) error {
	var env recordEnv
	if err := envconfig.Process("", &env); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid environment variable")
	}

	setString(&r.Session, env.Session)
	setString(&r.Output, env.Output)
	setString(&r.Workdir, env.Workdir)
	setInt(&r.Cols, env.Cols)
	setInt(&r.Rows, env.Rows)
	setInt(&r.Port, env.Port)
	setInt(&r.FontSize, env.FontSize)
	if env.KillOnDetach.IsSet() {
		r.KillOnDetach = env.KillOnDetach.Value()
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
