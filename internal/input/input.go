// Package input contains readers used to get Coins source from the CLI for
// the coinsc REPL. A single REPL submission may be more than one physical
// line: Coins statement bodies are brace-delimited (spec.md's
// compound_stmt := ... "{" { statement } "}"), so both readers accumulate
// lines until braces balance before handing the whole block back.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// DirectCommandReader reads Coins source from any generic input stream
// directly. It can be used generically with any io.Reader but does not
// sanitize the input of control and escape sequences.
//
// DirectCommandReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectCommandReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveCommandReader reads Coins source from stdin using a Go
// implementation of the GNU Readline library. This keeps input clear of all
// typing and editing escape sequences, enables the use of line history, and
// switches to a continuation prompt while a brace-delimited block is still
// open. This should in general probably only be used when directly
// connecting to a TTY for input.
//
// InteractiveCommandReader should not be used directly; instead, create one
// with [NewInteractiveReader].
type InteractiveCommandReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
	contPrompt    string
}

// NewDirectReader creates a new DirectCommandReader and initializes a
// buffered reader on the provided reader. The returned reader must have
// Close() called on it before disposal.
func NewDirectReader(r io.Reader) *DirectCommandReader {
	return &DirectCommandReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates a new InteractiveCommandReader and
// initializes readline. The returned reader must have Close() called on it
// before disposal to properly teardown readline resources.
func NewInteractiveReader() (*InteractiveCommandReader, error) {
	const prompt = "coins> "

	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveCommandReader{
		rl:         rl,
		prompt:     prompt,
		contPrompt: continuationPrompt(prompt),
	}, nil
}

// continuationPrompt derives a "..." style continuation prompt the same
// width as p, the way most block-structured REPLs (Python's >>> / ...)
// signal an open block.
func continuationPrompt(p string) string {
	width := len(p) - 1
	if width < 0 {
		width = 0
	}
	return strings.Repeat(".", width) + " "
}

// Close cleans up resources associated with the DirectCommandReader. For now
// it doesn't do anything, as DirectCommandReader does not itself hold
// resources, but callers should treat it as though it must be called.
func (dcr *DirectCommandReader) Close() error {
	return nil
}

// Close cleans up readline resources associated with the
// InteractiveCommandReader.
func (icr *InteractiveCommandReader) Close() error {
	return icr.rl.Close()
}

// ReadCommand reads the next Coins submission from the underlying reader,
// which may span several physical lines if it opens a brace-delimited block
// that has not yet been closed. The returned string will only be empty if
// there is an error reading input, otherwise this function blocks until a
// complete, non-blank submission is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dcr *DirectCommandReader) ReadCommand() (string, error) {
	return readBlock(dcr.blanksAllowed, func() (string, error) {
		return dcr.r.ReadString('\n')
	}, nil)
}

// ReadCommand reads the next Coins submission from stdin via readline, which
// may span several physical lines if it opens a brace-delimited block that
// has not yet been closed; while such a block is open, the prompt switches
// to a continuation prompt derived from the configured one. The returned
// string will only be empty if there is an error, otherwise this function
// blocks until a complete, non-blank submission is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (icr *InteractiveCommandReader) ReadCommand() (string, error) {
	return readBlock(icr.blanksAllowed, icr.rl.Readline, func(continuing bool) {
		if continuing {
			icr.rl.SetPrompt(icr.contPrompt)
		} else {
			icr.rl.SetPrompt(icr.prompt)
		}
	})
}

// readBlock is the shared accumulation loop used by both reader
// implementations: it reads physical lines via next until any opened braces
// are balanced, skipping leading blank lines unless blanksAllowed, and
// reports via setContinuing (if non-nil) whenever a continuation line is
// about to be read.
func readBlock(blanksAllowed bool, next func() (string, error), setContinuing func(continuing bool)) (string, error) {
	var lines []string
	depth := 0

	for {
		if setContinuing != nil {
			setContinuing(len(lines) > 0)
		}

		raw, err := next()
		if err != nil && (err != io.EOF || raw == "") {
			return "", err
		}

		line := strings.TrimRight(raw, "\r\n")

		if len(lines) == 0 {
			line = strings.TrimSpace(line)
			if line == "" {
				if blanksAllowed {
					return "", nil
				}
				continue
			}
		}

		lines = append(lines, line)
		depth += braceDelta(line)

		if depth <= 0 {
			break
		}
	}

	return strings.Join(lines, "\n"), nil
}

// braceDelta returns the net change in brace nesting depth line contributes,
// counting every '{' as +1 and every '}' as -1. It does not account for
// braces inside string or comment text; it is a REPL convenience heuristic,
// not a lexer.
func braceDelta(line string) int {
	delta := 0
	for _, r := range line {
		switch r {
		case '{':
			delta++
		case '}':
			delta--
		}
	}
	return delta
}

// AllowBlank sets whether blank input is allowed. By default it is not.
func (dcr *DirectCommandReader) AllowBlank(allow bool) {
	dcr.blanksAllowed = allow
}

// AllowBlank sets whether blank input is allowed. By default it is not.
func (icr *InteractiveCommandReader) AllowBlank(allow bool) {
	icr.blanksAllowed = allow
}

// SetPrompt updates the prompt to the given text. The continuation prompt
// shown while a brace-delimited block is open is derived from it.
func (icr *InteractiveCommandReader) SetPrompt(p string) {
	icr.prompt = p
	icr.contPrompt = continuationPrompt(p)
	icr.rl.SetPrompt(p)
}

// GetPrompt gets the current prompt.
func (icr *InteractiveCommandReader) GetPrompt() string {
	return icr.prompt
}
