package command

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestValidateSessionName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default name", "cast", false},
		{"with hyphen", "my-demo", false},
		{"with underscore prefix", "_scratch", false},
		{"with dot inside", "demo.v2", false},
		{"mixed case and digits", "Demo42", false},
		{"empty name", "", true},
		{"colon separates window targets", "demo:0", true},
		{"leading dot", ".hidden", true},
		{"leading hyphen", "-demo", true},
		{"space", "my demo", true},
		{"double quote breaks attach command", `de"mo`, true},
		{"shell metacharacter", "demo;rm", true},
		{"too long", strings.Repeat("a", maxSessionNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSessionName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateSessionName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSafeBuilder_Build(t *testing.T) {
	sb := NewSafeBuilder()
	ctx := context.Background()

	t.Run("valid command", func(t *testing.T) {
		cmd, err := sb.Build(ctx, "echo", "hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer cmd.Cancel()
		if cmd.Name() != "echo" {
			t.Errorf("expected command name 'echo', got %q", cmd.Name())
		}
		if len(cmd.Args()) != 1 || cmd.Args()[0] != "hello" {
			t.Errorf("expected args ['hello'], got %v", cmd.Args())
		}
		if _, ok := cmd.ctx.Deadline(); !ok {
			t.Error("expected Build to apply a deadline")
		}
	})

	t.Run("empty command name", func(t *testing.T) {
		_, err := sb.Build(ctx, "")
		if err == nil {
			t.Error("expected error for empty command name")
		}
	})
}

func TestSafeBuilder_BuildLongRunning(t *testing.T) {
	sb := NewSafeBuilder()

	cmd, err := sb.BuildLongRunning("ttyd", "-p", "7681")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.ctx != nil {
		t.Error("long running commands must not carry a deadline")
	}
	execCmd := cmd.Exec()
	if len(execCmd.Args) != 3 || execCmd.Args[1] != "-p" {
		t.Errorf("unexpected argv: %v", execCmd.Args)
	}

	if _, err := sb.BuildLongRunning(""); err == nil {
		t.Error("expected error for empty command name")
	}
}

func TestSafeBuilder_Validate(t *testing.T) {
	sb := NewSafeBuilder()

	t.Run("valid session name", func(t *testing.T) {
		err := sb.Validate("sessionName", "cast")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("invalid session name", func(t *testing.T) {
		err := sb.Validate("sessionName", "cast:1")
		if err == nil {
			t.Error("expected error for invalid session name")
		}
	})

	t.Run("unknown validator type", func(t *testing.T) {
		err := sb.Validate("unknownType", "value")
		if err == nil {
			t.Error("expected error for unknown validator type")
		}
	})
}

func TestCommandTimeout(t *testing.T) {
	sb := NewSafeBuilder()
	ctx := context.Background()

	sb.defaultTimeout = 100 * time.Millisecond

	// Create a command that will timeout
	cmd, err := sb.Build(ctx, "sleep", "10")
	if err != nil {
		t.Fatal(err)
	}
	defer cmd.Cancel()

	start := time.Now()
	err = cmd.Exec().Run()
	duration := time.Since(start)

	if err == nil {
		t.Error("expected timeout error")
	}

	// Allow some margin for execution overhead
	if duration > 2*time.Second {
		t.Errorf("command took too long to timeout: %v", duration)
	}
}
