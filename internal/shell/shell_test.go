// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dotcargo/dotcargo/internal/platform"
)

func runners(t *testing.T) []Runner {
	t.Helper()
	if platform.IsWindows() {
		t.Skip("skipping: POSIX shell runtimes are not exercised on Windows")
	}
	return []Runner{NewNative(""), NewVirtual()}
}

func TestRunner_CapturesStdout(t *testing.T) {
	for _, r := range runners(t) {
		t.Run(r.Name(), func(t *testing.T) {
			var stdout bytes.Buffer
			code, err := r.Run(context.Background(), Request{
				Command: "echo hello from the shell | tr a-z A-Z",
				Stdout:  &stdout,
			})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !code.IsSuccess() {
				t.Fatalf("Run() exit code = %d, want 0", code)
			}
			if got := strings.TrimSpace(stdout.String()); !strings.HasPrefix(got, "HELLO FROM") {
				t.Errorf("stdout = %q, want HELLO FROM prefix", got)
			}
		})
	}
}

func TestRunner_ExitCode(t *testing.T) {
	tests := []struct {
		command string
		want    ExitCode
	}{
		{"true", 0},
		{"false", 1},
		{"exit 7", 7},
		{"test -z \"\" && exit 0 || exit 9", 0},
	}

	for _, r := range runners(t) {
		for _, tt := range tests {
			t.Run(r.Name()+"/"+tt.command, func(t *testing.T) {
				code, err := r.Run(context.Background(), Request{Command: tt.command})
				if err != nil {
					t.Fatalf("Run() error = %v", err)
				}
				if code != tt.want {
					t.Errorf("Run(%q) = %d, want %d", tt.command, code, tt.want)
				}
			})
		}
	}
}

func TestRunner_WorkingDirectory(t *testing.T) {
	for _, r := range runners(t) {
		t.Run(r.Name(), func(t *testing.T) {
			dir := t.TempDir()
			want, err := filepath.EvalSymlinks(dir)
			if err != nil {
				t.Fatalf("EvalSymlinks() error = %v", err)
			}

			var stdout bytes.Buffer
			code, err := r.Run(context.Background(), Request{
				Command: "pwd",
				Dir:     dir,
				Stdout:  &stdout,
			})
			if err != nil || code != 0 {
				t.Fatalf("Run() = %d, %v", code, err)
			}
			got, err := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
			if err != nil {
				t.Fatalf("EvalSymlinks(pwd output) error = %v", err)
			}
			if got != want {
				t.Errorf("pwd = %q, want %q", got, want)
			}
		})
	}
}

func TestRunner_NilStreamsAreDiscarded(t *testing.T) {
	for _, r := range runners(t) {
		t.Run(r.Name(), func(t *testing.T) {
			// Reading stdin must see EOF immediately, writes must not fail.
			code, err := r.Run(context.Background(), Request{
				Command: "cat; echo out; echo err >&2",
			})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if code != 0 {
				t.Errorf("Run() exit code = %d, want 0", code)
			}
		})
	}
}

func TestRunner_EmptyCommand(t *testing.T) {
	for _, r := range runners(t) {
		t.Run(r.Name(), func(t *testing.T) {
			code, err := r.Run(context.Background(), Request{})
			if !errors.Is(err, ErrEmptyCommand) {
				t.Errorf("Run() error = %v, want ErrEmptyCommand", err)
			}
			if code != FailureExitCode {
				t.Errorf("Run() exit code = %d, want %d", code, FailureExitCode)
			}
		})
	}
}

func TestVirtual_SyntaxError(t *testing.T) {
	code, err := NewVirtual().Run(context.Background(), Request{Command: "echo 'unterminated"})
	if err == nil {
		t.Fatal("Run() expected parse error, got nil")
	}
	if code != FailureExitCode {
		t.Errorf("Run() exit code = %d, want %d", code, FailureExitCode)
	}
}

func TestVirtual_BuiltinGrepWithoutPath(t *testing.T) {
	t.Setenv("PATH", "")

	r := NewVirtual()
	code, err := r.Run(context.Background(), Request{
		Command: `printf 'ripgrep v14.1.0:\n    rg\n' | grep "^ripgrep "`,
	})
	if err != nil || code != 0 {
		t.Fatalf("Run() = %d, %v; want 0, nil", code, err)
	}

	code, err = r.Run(context.Background(), Request{
		Command: `printf 'bat v0.24.0:\n' | grep "^ripgrep "`,
	})
	if err != nil || code != 1 {
		t.Fatalf("Run() = %d, %v; want 1, nil", code, err)
	}
}

func TestNative_MissingShell(t *testing.T) {
	r := NewNative(filepath.Join(t.TempDir(), "no-such-shell"))
	code, err := r.Run(context.Background(), Request{Command: "true"})
	if err == nil {
		t.Fatal("Run() expected error for missing shell")
	}
	if code != FailureExitCode {
		t.Errorf("Run() exit code = %d, want %d", code, FailureExitCode)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		mode     Mode
		wantName string
		wantErr  bool
	}{
		{ModeNative, "native", false},
		{"", "native", false},
		{ModeVirtual, "virtual", false},
		{"container", "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r, err := New(tt.mode, "")
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMode) {
					t.Fatalf("New(%q) error = %v, want ErrInvalidMode", tt.mode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) error = %v", tt.mode, err)
			}
			if r.Name() != tt.wantName {
				t.Errorf("New(%q).Name() = %q, want %q", tt.mode, r.Name(), tt.wantName)
			}
		})
	}
}

func TestMode_IsValid(t *testing.T) {
	if ok, errs := ModeNative.IsValid(); !ok || errs != nil {
		t.Errorf("ModeNative.IsValid() = %v, %v", ok, errs)
	}
	ok, errs := Mode("docker").IsValid()
	if ok || len(errs) != 1 {
		t.Fatalf("Mode(docker).IsValid() = %v, %v", ok, errs)
	}
	var modeErr *InvalidModeError
	if !errors.As(errs[0], &modeErr) || modeErr.Value != "docker" {
		t.Errorf("error = %v, want InvalidModeError{docker}", errs[0])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		command string
		wantErr bool
	}{
		{`cargo install --list | grep "^ripgrep "`, false},
		{`curl --proto "=https" --tlsv1.2 -sSf https://sh.rustup.rs | sh -s -- -y --no-modify-path`, false},
		{`cargo install "broken`, true},
		{"   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			err := Validate(tt.command)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.command, err, tt.wantErr)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	if !ExitCode(0).IsSuccess() || ExitCode(1).IsSuccess() {
		t.Error("IsSuccess() mismatch")
	}
	if ok, _ := ExitCode(256).IsValid(); ok {
		t.Error("ExitCode(256).IsValid() = true, want false")
	}
	if ExitCode(42).String() != "42" {
		t.Errorf("String() = %q", ExitCode(42).String())
	}
}
