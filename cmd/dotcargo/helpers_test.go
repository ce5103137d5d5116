// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/dotcargo/dotcargo/internal/config"
	"github.com/dotcargo/dotcargo/internal/shell"
	"github.com/dotcargo/dotcargo/internal/testutil"
)

type stubConfig struct {
	cfg *config.Config
	err error
}

func (s *stubConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cfg, nil
}

type harness struct {
	app     *App
	runner  *testutil.FakeRunner
	mode    shell.Mode
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	baseDir string
}

// newHarness builds an App around cfg whose commands exit with def.
func newHarness(t *testing.T, cfg *config.Config, def shell.ExitCode) *harness {
	t.Helper()
	h := &harness{
		runner:  testutil.NewFakeRunner(def),
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		baseDir: t.TempDir(),
	}
	h.app = NewApp(Dependencies{
		Config: &stubConfig{cfg: cfg},
		NewRunner: func(mode shell.Mode, _ string) (shell.Runner, error) {
			h.mode = mode
			return h.runner, nil
		},
		Stdin:  &bytes.Buffer{},
		Stdout: h.stdout,
		Stderr: h.stderr,
	})
	return h
}

func (h *harness) writeTaskFile(t *testing.T, name, content string) string {
	t.Helper()
	return testutil.MustWriteFile(t, h.baseDir, name, content)
}

func boolPtr(b bool) *bool { return &b }
