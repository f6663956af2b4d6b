package ttyd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsArgs(t *testing.T) {
	opts := Options{
		Port:     7682,
		FontSize: 24,
		Title:    "cast",
		Env: []EnvVar{
			{Key: "SESSION", Value: "cast"},
			{Key: "TMUX_COLS", Value: "80"},
		},
		Command: []string{"/usr/bin/shell-scene", "record-hook", "--child"},
	}

	want := []string{
		"-p", "7682", "-o", "-W",
		"-t", "fontSize=24",
		"-t", "disableReconnect=true",
		"-t", "titleFixed=cast",
		"env", "SESSION=cast", "TMUX_COLS=80",
		"/usr/bin/shell-scene", "record-hook", "--child",
	}
	assert.Equal(t, want, opts.Args())
}

func TestOptionsArgs_NoEnv(t *testing.T) {
	args := Options{Port: 1, FontSize: 12, Title: "t", Command: []string{"bash"}}.Args()
	assert.NotContains(t, args, "env")
	assert.Equal(t, "bash", args[len(args)-1])
}

func TestURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:7681/", URL("127.0.0.1", 7681))
}
