package config

import (
	"github.com/spf13/pflag"
)

// Flags are the record options given on the command line. Only flags the
// user actually passed override the lower layers.
type Flags struct {
	fs *pflag.FlagSet

	Session      string
	Cols         int
	Rows         int
	Port         int
	FontSize     int
	Output       string
	Workdir      string
	KillOnDetach Boolish
	NoBrowser    bool
}

// AddRecordFlags registers the record options on fs. Hook mode only gets
// the options it forwards to tmux and the recorder.
func AddRecordFlags(fs *pflag.FlagSet, hook bool) *Flags {
	f := &Flags{fs: fs}

	fs.StringVar(&f.Session, "session", DefaultSession, "tmux session name (env SESSION)")
	fs.IntVar(&f.Cols, "cols", DefaultCols, "terminal columns (env TMUX_COLS)")
	fs.IntVar(&f.Rows, "rows", DefaultRows, "terminal rows (env TMUX_ROWS)")
	fs.StringVar(&f.Output, "out", "", "output .cast file (env ASCII_OUT, default ~/casts/<session>-<timestamp>.cast)")
	fs.StringVar(&f.Workdir, "workdir", "", "working directory of the shell (env WORKING_DIRECTORY, default $HOME)")
	fs.Var(&f.KillOnDetach, "kill-on-detach", "kill the tmux session when the recorder exits (env TMUX_KILL_ON_DETACH)")
	fs.Lookup("kill-on-detach").NoOptDefVal = "true"

	if !hook {
		fs.IntVar(&f.Port, "port", DefaultPort, "first port to try for ttyd (env TT_PORT)")
		fs.IntVar(&f.FontSize, "font-size", DefaultFontSize, "web terminal font size (env FONT_SIZE)")
		fs.BoolVar(&f.NoBrowser, "no-browser", false, "do not open a browser")
	}

	return f
}

func (f *Flags) changed(name string) bool {
	flag := f.fs.Lookup(name)
	return flag != nil && flag.Changed
}

// Apply overrides r with the flags that were set.
func (f *Flags) Apply(r *RecordConfig) {
	if f == nil {
		return
	}
	if f.changed("session") {
		r.Session = f.Session
	}
	if f.changed("cols") {
		r.Cols = f.Cols
	}
	if f.changed("rows") {
		r.Rows = f.Rows
	}
	if f.changed("port") {
		r.Port = f.Port
	}
	if f.changed("font-size") {
		r.FontSize = f.FontSize
	}
	if f.changed("out") {
		r.Output = f.Output
	}
	if f.changed("workdir") {
		r.Workdir = f.Workdir
	}
	if f.KillOnDetach.IsSet() {
		r.KillOnDetach = f.KillOnDetach.Value()
	}
	if f.changed("no-browser") {
		r.NoBrowser = f.NoBrowser
	}
}
