// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/interp"
)

// grepCommand is a POSIX-flavoured grep over RE2 patterns. Supported flags:
// -i -v -n -c -q -F -H -h. Exit status is 0 on a match, 1 on none and 2 on
// error, as POSIX grep.
type grepCommand struct{}

func newGrepCommand() *grepCommand { return &grepCommand{} }

// Name returns "grep".
func (c *grepCommand) Name() string { return "grep" }

type grepOptions struct {
	ignoreCase   bool
	invert       bool
	lineNumbers  bool
	countOnly    bool
	quiet        bool
	fixed        bool
	withFilename bool
	noFilename   bool
}

// Run executes grep.
func (c *grepCommand) Run(ctx context.Context, args []string) error {
	hc := handlerContext(ctx)

	var opts grepOptions
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&opts.ignoreCase, "i", false, "ignore case")
	fs.BoolVar(&opts.invert, "v", false, "select non-matching lines")
	fs.BoolVar(&opts.lineNumbers, "n", false, "prefix line numbers")
	fs.BoolVar(&opts.countOnly, "c", false, "print match counts")
	fs.BoolVar(&opts.quiet, "q", false, "print nothing")
	fs.BoolVar(&opts.fixed, "F", false, "fixed string pattern")
	fs.BoolVar(&opts.withFilename, "H", false, "always print file names")
	fs.BoolVar(&opts.noFilename, "h", false, "never print file names")
	if err := fs.Parse(splitShortFlags(args[1:])); err != nil {
		return usageError(hc, c.Name(), "%v", err)
	}

	operands := fs.Args()
	if len(operands) == 0 {
		return usageError(hc, c.Name(), "missing pattern")
	}

	pattern := operands[0]
	if opts.fixed {
		pattern = regexp.QuoteMeta(pattern)
	}
	if opts.ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return usageError(hc, c.Name(), "invalid pattern: %v", err)
	}

	files := operands[1:]
	showName := (len(files) > 1 || opts.withFilename) && !opts.noFilename

	matched := false
	if len(files) == 0 {
		in := hc.Stdin
		if in == nil {
			in = strings.NewReader("")
		}
		found, err := c.scan(hc.Stdout, in, re, "", opts, false)
		if err != nil {
			return usageError(hc, c.Name(), "%v", err)
		}
		matched = found
	}
	for _, name := range files {
		found, err := c.scanFile(hc, name, re, opts, showName)
		if err != nil {
			return usageError(hc, c.Name(), "%v", err)
		}
		matched = matched || found
	}

	if !matched {
		return interp.ExitStatus(1)
	}
	return nil
}

func (c *grepCommand) scanFile(hc *HandlerContext, name string, re *regexp.Regexp, opts grepOptions, showName bool) (found bool, err error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(hc.Dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return c.scan(hc.Stdout, f, re, name, opts, showName)
}

// scan streams in line by line, writing selected lines (or the count) to out.
func (c *grepCommand) scan(out io.Writer, in io.Reader, re *regexp.Regexp, name string, opts grepOptions, showName bool) (bool, error) {
	if out == nil {
		out = io.Discard
	}

	count := 0
	lineNum := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if re.MatchString(line) == opts.invert {
			continue
		}
		count++
		if opts.quiet || opts.countOnly {
			continue
		}

		var prefix string
		if showName {
			prefix = name + ":"
		}
		if opts.lineNumbers {
			prefix += fmt.Sprintf("%d:", lineNum)
		}
		fmt.Fprintln(out, prefix+line)
	}
	if err := scanner.Err(); err != nil {
		return count > 0, fmt.Errorf("reading input: %w", err)
	}

	if opts.countOnly && !opts.quiet {
		if showName {
			fmt.Fprintf(out, "%s:%d\n", name, count)
		} else {
			fmt.Fprintln(out, count)
		}
	}
	return count > 0, nil
}

// splitShortFlags expands combined short flags ("-in" becomes "-i -n") for
// flag.FlagSet. Parsing stops at "--" or the first operand.
func splitShortFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" || !strings.HasPrefix(a, "-") || a == "-" {
			return append(out, args[i:]...)
		}
		if strings.HasPrefix(a, "--") || len(a) == 2 {
			out = append(out, a)
			continue
		}
		for _, r := range a[1:] {
			out = append(out, "-"+string(r))
		}
	}
	return out
}
