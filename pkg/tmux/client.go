package tmux

import (
	"context"
	"fmt"
	"strings"

	"github.com/EnigmaCurry/shell-scene/command"
)

// SocketPrefix namespaces the dedicated tmux servers shell-scene starts.
const SocketPrefix = "ttyd-"

// Client runs tmux commands against one dedicated server socket (-L).
type Client struct {
	builder *command.SafeBuilder
	socket  string
}

// SocketName returns the socket used for a recording session, so every
// session gets its own tmux server and its settings do not leak into the
// user's default server.
func SocketName(session string) string {
	return SocketPrefix + session
}

// NewClient creates a client for the server that hosts session.
func NewClient(session string) (*Client, error) {
	return NewClientWithBuilder(command.NewSafeBuilder(), SocketName(session))
}

// NewClientWithBuilder creates a tmux client that uses a dedicated server
// socket and the given command builder.
func NewClientWithBuilder(builder *command.SafeBuilder, socket string) (*Client, error) {
	if _, err := builder.Executor().LookPath("tmux"); err != nil {
		return nil, fmt.Errorf("tmux command not found in PATH: %w", err)
	}
	if err := builder.Validate("socketName", socket); err != nil {
		return nil, fmt.Errorf("invalid tmux socket name: %w", err)
	}

	return &Client{
		builder: builder,
		socket:  socket,
	}, nil
}

// Socket returns the socket name this client uses.
func (c *Client) Socket() string {
	return c.socket
}

// KillServer kills the tmux server for this client's socket.
func (c *Client) KillServer(ctx context.Context) error {
	_, err := c.run(ctx, "kill-server")
	// Ignore "no server running" errors - server is already gone
	if err != nil && isNoServer(err) {
		return nil
	}
	return err
}

// AttachCommand returns the shell command line that attaches a client to
// session on this server. It is run by the recorder through a shell.
func (c *Client) AttachCommand(session string) string {
	return fmt.Sprintf("tmux -L %q attach -t %q", c.socket, session)
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	args = append([]string{"-L", c.socket}, args...)

	cmd, err := c.builder.Build(ctx, "tmux", args...)
	if err != nil {
		return "", fmt.Errorf("failed to build command: %w", err)
	}
	defer cmd.Cancel()

	execCmd := cmd.Exec()
	output, err := execCmd.CombinedOutput()
	if err != nil {
		cmdStr := "tmux " + strings.Join(args, " ")
		return string(output), fmt.Errorf("tmux command failed: `%s`: %w, output: %s", cmdStr, err, string(output))
	}

	return string(output), nil
}

func isNoServer(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "no server running") || strings.Contains(msg, "error connecting to")
}
