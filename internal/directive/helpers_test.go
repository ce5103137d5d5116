// SPDX-License-Identifier: MPL-2.0

package directive

import (
	"bytes"
	"testing"

	"github.com/dotcargo/dotcargo/internal/shell"
	"github.com/dotcargo/dotcargo/internal/testutil"

	"github.com/charmbracelet/log"
)

type testHost struct {
	baseDir   string
	overrides map[Name]Overrides
	logger    *log.Logger
}

func (h *testHost) BaseDirectory() string        { return h.baseDir }
func (h *testHost) Defaults(name Name) Overrides { return h.overrides[name] }
func (h *testHost) Logger() *log.Logger          { return h.logger }

type fixture struct {
	plugin *Plugin
	runner *testutil.FakeRunner
	logs   *testutil.LogRecorder
	host   *testHost
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newFixture builds a plugin whose unscripted commands exit with def.
func newFixture(t *testing.T, def shell.ExitCode) *fixture {
	t.Helper()
	logger, logs := testutil.NewLogRecorder(t)
	host := &testHost{
		baseDir:   t.TempDir(),
		overrides: map[Name]Overrides{},
		logger:    logger,
	}
	runner := testutil.NewFakeRunner(def)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	stdin := bytes.NewBufferString("")
	return &fixture{
		plugin: New(host, runner, WithStdIO(stdin, stdout, stderr)),
		runner: runner,
		logs:   logs,
		host:   host,
		stdout: stdout,
		stderr: stderr,
	}
}

func boolPtr(b bool) *bool { return &b }
