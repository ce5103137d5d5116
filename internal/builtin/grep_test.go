// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"mvdan.cc/sh/v3/interp"
)

const installList = `bat v0.24.0:
    bat
ripgrep v14.1.0:
    rg
cargo-update v13.4.0:
    cargo-install-update
    cargo-install-update-config
`

func runGrep(t *testing.T, dir, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	ctx := WithHandlerContext(context.Background(), &HandlerContext{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
		Dir:    dir,
	})
	err := newGrepCommand().Run(ctx, append([]string{"grep"}, args...))
	return stdout.String(), stderr.String(), err
}

func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return int(status)
	}
	return -1
}

func TestGrep_Stdin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantOut    string
		wantStatus int
	}{
		{name: "anchored package line", args: []string{"^ripgrep "}, wantOut: "ripgrep v14.1.0:\n"},
		{name: "binary name does not match anchor", args: []string{"^rg "}, wantStatus: 1},
		{name: "prefix requires trailing space", args: []string{"^cargo "}, wantStatus: 1},
		{name: "ignore case", args: []string{"-i", "^BAT "}, wantOut: "bat v0.24.0:\n"},
		{name: "count", args: []string{"-c", "cargo-install-update"}, wantOut: "2\n"},
		{name: "combined flags", args: []string{"-vc", "^ "}, wantOut: "3\n"},
		{name: "line numbers", args: []string{"-n", "^bat "}, wantOut: "1:bat v0.24.0:\n"},
		{name: "quiet", args: []string{"-q", "^bat "}},
		{name: "fixed string", args: []string{"-F", "v0.24.0:"}, wantOut: "bat v0.24.0:\n"},
		{name: "missing pattern", wantStatus: 2},
		{name: "invalid pattern", args: []string{"("}, wantStatus: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, _, err := runGrep(t, t.TempDir(), installList, tt.args...)
			if got := exitStatus(err); got != tt.wantStatus {
				t.Fatalf("exit status = %d (err %v), want %d", got, err, tt.wantStatus)
			}
			if diff := cmp.Diff(tt.wantOut, out); diff != "" {
				t.Errorf("stdout mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGrep_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("cargo\nrustup\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("rustc\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runGrep(t, dir, "", "^rust", "a.txt", "b.txt")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if diff := cmp.Diff("a.txt:rustup\nb.txt:rustc\n", out); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}

	_, stderr, err := runGrep(t, dir, "", "x", "missing.txt")
	if got := exitStatus(err); got != 2 {
		t.Errorf("missing file exit status = %d, want 2", got)
	}
	if !strings.HasPrefix(stderr, "grep: ") {
		t.Errorf("stderr = %q, want grep: prefix", stderr)
	}
}

func TestSplitShortFlags(t *testing.T) {
	t.Parallel()

	got := splitShortFlags([]string{"-in", "-c", "--", "-v", "file"})
	want := []string{"-i", "-n", "-c", "--", "-v", "file"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("splitShortFlags() mismatch (-want +got):\n%s", diff)
	}
}
