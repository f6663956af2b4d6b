package errors

import (
	"fmt"
	"testing"
)

func TestSceneError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeWorkdirInvalid, "working directory does not exist")
	if err.Code != ErrCodeWorkdirInvalid {
		t.Errorf("expected code %s, got %s", ErrCodeWorkdirInvalid, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeSpawnFailed, "spawn failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeSpawnFailed) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeWaitFailed) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("path", "/tmp/x").WithDetail("port", 7681)
	if detailed.Details["path"] != "/tmp/x" {
		t.Error("WithDetail should add details")
	}
}

func TestGetCodeThroughWrapping(t *testing.T) {
	inner := PortsExhausted(7681)
	outer := fmt.Errorf("record: %w", inner)

	if got := GetCode(outer); got != ErrCodePortsExhausted {
		t.Errorf("expected %s, got %s", ErrCodePortsExhausted, got)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("expected empty code for plain error, got %s", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("expected empty code for nil, got %s", got)
	}
}

func TestErrorConstructors(t *testing.T) {
	err := ChildExited("ttyd", 3)
	if err.Code != ErrCodeChildExited {
		t.Errorf("expected code %s, got %s", ErrCodeChildExited, err.Code)
	}
	if err.Details["exitCode"] != 3 {
		t.Error("ChildExited should include exitCode detail")
	}

	err = WorkdirInvalid("/nope", "does not exist")
	if err.Details["path"] != "/nope" {
		t.Error("WorkdirInvalid should include path detail")
	}

	err = CommandsNotFound("ttyd", "tmux")
	if got := err.Details["commands"].([]string); len(got) != 2 {
		t.Errorf("expected 2 missing commands, got %v", got)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain error", fmt.Errorf("boom"), ExitFailure},
		{"child exit passed through", ChildExited("ttyd", 3), 3},
		{"child exit wrapped", fmt.Errorf("record: %w", ChildExited("asciinema", 130)), 130},
		{"child exit without code", New(ErrCodeChildExited, "killed"), ExitFailure},
		{"session create", SessionCreateFailed("cast", fmt.Errorf("x")), ExitSessionCreate},
		{"ports exhausted", PortsExhausted(1), ExitPortsExhausted},
		{"spawn failed", SpawnFailed("ttyd", fmt.Errorf("x")), ExitSpawnFailed},
		{"wait failed", WaitFailed("ttyd", fmt.Errorf("x")), ExitWaitFailed},
		{"workdir invalid", WorkdirInvalid("/x", "does not exist"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitCodesAreDistinct(t *testing.T) {
	seen := map[int]string{}
	for name, code := range map[string]int{
		"failure":   ExitFailure,
		"session":   ExitSessionCreate,
		"exhausted": ExitPortsExhausted,
		"wait":      ExitWaitFailed,
		"spawn":     ExitSpawnFailed,
	} {
		if other, ok := seen[code]; ok {
			t.Errorf("exit code %d shared by %s and %s", code, name, other)
		}
		seen[code] = name
	}
}
