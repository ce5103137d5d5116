// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"sort"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type (
	// Id identifies an issue page.
	Id int

	// MarkdownMsg is markdown shown to the user.
	MarkdownMsg string

	// HttpLink is a documentation link.
	HttpLink string

	// Issue is a markdown help page for a class of failure.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

const (
	TaskFileNotFoundId Id = iota + 1
	TaskFileParseErrorId
	ConfigLoadFailedId
	UnknownDirectiveId
	CargoNotFoundId
	DirectivesFailedId
)

var (
	render = glamour.Render

	taskFileNotFoundIssue = &Issue{
		id: TaskFileNotFoundId,
		mdMsg: `
# No task file found!

dotcargo looks for these files in the current directory, in order:

1. install.conf.yaml
2. dotcargo.cue
3. dotcargo.toml

## Things you can try:
- Pass the file explicitly:
~~~
$ dotcargo run path/to/install.conf.yaml
~~~

## Minimal task file:
~~~yaml
- install-rustup: true
- cargo:
    - ripgrep
    - bat --locked
- cargo-update: true
~~~`,
	}

	taskFileParseErrorIssue = &Issue{
		id: TaskFileParseErrorId,
		mdMsg: `
# Failed to parse the task file!

## Common issues:
- A task entry that is not a mapping (YAML) or table (TOML)
- ` + "`cargo`" + ` given a single string instead of a list
- Option values under ` + "`defaults`" + ` that are not booleans

## Recognized option keys:
` + "`stdin`, `stdout`, `stderr`, `force_intel`",
		docLinks: []HttpLink{"https://github.com/anishathalye/dotbot#configuration"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the configuration!

## Things you can try:
- Show where dotcargo looks for its config:
~~~
$ dotcargo config path
~~~
- Regenerate a default config file:
~~~
$ dotcargo config init
~~~`,
	}

	unknownDirectiveIssue = &Issue{
		id: UnknownDirectiveId,
		mdMsg: `
# Unknown directive!

dotcargo handles ` + "`install-rustup`, `cargo` and `cargo-update`" + ` only.
Other dotbot directives (link, shell, clean...) belong to dotbot itself.

~~~
$ dotcargo directives
~~~`,
	}

	cargoNotFoundIssue = &Issue{
		id: CargoNotFoundId,
		mdMsg: `
# cargo is not on your PATH!

Add ` + "`install-rustup: true`" + ` as the first task, then make sure
` + "`~/.cargo/bin`" + ` is on PATH (rustup is installed with --no-modify-path).`,
		docLinks: []HttpLink{"https://rustup.rs"},
	}

	directivesFailedIssue = &Issue{
		id: DirectivesFailedId,
		mdMsg: `
# Some directives failed!

Re-run with ` + "`--verbose`" + ` to see every command that was issued, or
lift stream suppression for a directive in the task file:

~~~yaml
- defaults:
    cargo:
      stderr: false
~~~`,
	}

	issues = map[Id]*Issue{
		taskFileNotFoundIssue.Id():   taskFileNotFoundIssue,
		taskFileParseErrorIssue.Id(): taskFileParseErrorIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		unknownDirectiveIssue.Id():   unknownDirectiveIssue,
		cargoNotFoundIssue.Id():      cargoNotFoundIssue,
		directivesFailedIssue.Id():   directivesFailedIssue,
	}
)

// Id returns the issue id.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw markdown.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the page with the given glamour style ("dark", "light", "notty"...).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			md += "- " + string(link) + "\n"
		}
	}
	return render(md, stylePath)
}

// Values returns every issue ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].id < out[b].id })
	return out
}

// Get returns the issue for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
