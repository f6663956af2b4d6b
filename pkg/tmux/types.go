package tmux

// SessionOptions describes a detached session to create.
type SessionOptions struct {
	Name             string
	WorkingDirectory string
	Cols             int
	Rows             int
	// Command is the program the first window runs, e.g. ["bash", "-l"].
	Command []string
}

// RecordingOptions are the global options forced on recording servers:
// window-size manual lets resize-window pin the size regardless of attached
// clients, status off removes the status bar from the recording.
var RecordingOptions = [][2]string{
	{"window-size", "manual"},
	{"status", "off"},
}
