package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// EnvLogLevel overrides the configured log level.
const EnvLogLevel = "SHELL_SCENE_LOG_LEVEL"

// Options selects the logging setup for a process. Flags take precedence
// over the environment, which takes precedence over Config.
type Options struct {
	Level   string
	Verbose bool
	JSON    bool
	Config  Config
}

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
	base      = newBaseLogger()
	logFile   io.Closer
)

func newBaseLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(defaultGlobalWriter)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&TextFormatter{Color: StderrIsTerminal()})
	return logger
}

// StderrIsTerminal reports whether stderr is attached to a terminal.
func StderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ResolveLevel picks the effective level name.
func ResolveLevel(opts Options) string {
	switch {
	case opts.Verbose:
		return "debug"
	case opts.Level != "":
		return opts.Level
	case os.Getenv(EnvLogLevel) != "":
		return os.Getenv(EnvLogLevel)
	case opts.Config.Level != "":
		return opts.Config.Level
	default:
		return "info"
	}
}

// Configure applies opts to every logger, including ones already created.
func Configure(opts Options) error {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	levelStr := ResolveLevel(opts)
	level, levelErr := logrus.ParseLevel(levelStr)
	if levelErr != nil {
		level = logrus.InfoLevel
	}
	base.SetLevel(level)
	base.SetReportCaller(opts.Config.ReportCaller)

	if opts.JSON || opts.Config.Format.Preset == "json" {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&TextFormatter{Config: opts.Config.Format, Color: StderrIsTerminal()})
	}

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var sinkErr error
	output := io.Writer(defaultGlobalWriter)
	if opts.Config.File.Enabled && opts.Config.File.Path != "" {
		path := expandPath(opts.Config.File.Path)
		file, err := openLogFile(path)
		if err != nil {
			sinkErr = fmt.Errorf("failed to open log file %s: %w", path, err)
		} else {
			logFile = file
			output = io.MultiWriter(defaultGlobalWriter, file)
		}
	}
	base.SetOutput(output)

	if levelErr != nil {
		return fmt.Errorf("invalid log level %q", levelStr)
	}
	return sinkErr
}

// NewLogger returns the logger for a component. Loggers are cached per
// component and share one configuration.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	entry := base.WithField("component", component)
	loggers[component] = entry
	return entry
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// expandPath expands tilde in file paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
