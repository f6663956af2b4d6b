package tmux

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// SessionExists reports whether a session with exactly this name is running.
// A missing server counts as a missing session.
func (c *Client) SessionExists(ctx context.Context, sessionName string) (bool, error) {
	_, err := c.run(ctx, "has-session", "-t", "="+sessionName)
	if err == nil {
		return true, nil
	}

	if strings.Contains(err.Error(), "exit status 1") {
		return false, nil
	}

	return false, err
}

// NewSession creates a detached session.
func (c *Client) NewSession(ctx context.Context, opts SessionOptions) error {
	if opts.Name == "" {
		return fmt.Errorf("session name is required")
	}

	args := []string{"new-session"}
	if opts.WorkingDirectory != "" {
		args = append(args, "-c", opts.WorkingDirectory)
	}
	args = append(args, "-d", "-s", opts.Name)
	if opts.Cols > 0 && opts.Rows > 0 {
		args = append(args, "-x", strconv.Itoa(opts.Cols), "-y", strconv.Itoa(opts.Rows))
	}
	args = append(args, opts.Command...)

	if _, err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// SetGlobalOption sets a server-wide session or window option.
func (c *Client) SetGlobalOption(ctx context.Context, key, value string) error {
	_, err := c.run(ctx, "set", "-g", key, value)
	return err
}

// GlobalOption returns the value of a global option.
func (c *Client) GlobalOption(ctx context.Context, key string) (string, error) {
	output, err := c.run(ctx, "show-options", "-gv", key)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// ResizeWindow sets the exact size of a window.
func (c *Client) ResizeWindow(ctx context.Context, target string, cols, rows int) error {
	_, err := c.run(ctx, "resize-window", "-t", target,
		"-x", strconv.Itoa(cols), "-y", strconv.Itoa(rows))
	return err
}

// WindowSize returns the width and height of a window.
func (c *Client) WindowSize(ctx context.Context, target string) (cols, rows int, err error) {
	output, err := c.run(ctx, "display-message", "-p", "-t", target, "#{window_width}x#{window_height}")
	if err != nil {
		return 0, 0, err
	}

	parts := strings.SplitN(strings.TrimSpace(output), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unexpected window size output: %q", output)
	}
	if cols, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("failed to parse window width: %w", err)
	}
	if rows, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("failed to parse window height: %w", err)
	}
	return cols, rows, nil
}

// ListSessions returns the names of all sessions on this server.
func (c *Client) ListSessions(ctx context.Context) ([]string, error) {
	output, err := c.run(ctx, "list-sessions", "-F", "#{session_name}")
	if err != nil {
		if isNoServer(err) {
			return nil, nil
		}
		return nil, err
	}

	var sessions []string
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line != "" {
			sessions = append(sessions, line)
		}
	}
	return sessions, nil
}

func (c *Client) KillSession(ctx context.Context, sessionName string) error {
	_, err := c.run(ctx, "kill-session", "-t", "="+sessionName)
	return err
}

// FirstWindow returns the target of a session's first window.
func FirstWindow(sessionName string) string {
	return sessionName + ":0"
}
