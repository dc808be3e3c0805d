/*
 * TCL  interactive shell.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package shell implements the byte-buffer tolerant-probing REPL spec.md
// §6 describes: grow a buffer one read at a time, re-tokenize it with
// tcl.Ready whenever a command terminator arrives, and evaluate as soon as
// it holds one complete command.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/dcrawford/minitcl/tcl"
)

// ErrIncomplete is returned by Run when stdin hits EOF with an unevaluated
// partial command still in the buffer (spec.md §6: "EOF with a non-empty
// buffer exits with a nonzero status").
var ErrIncomplete = errors.New("shell: incomplete input at eof")

// Run drives the REPL against in until stdin closes. When stdin is a
// terminal it uses liner for history and line editing; otherwise (a pipe,
// a redirected file) it falls back to a plain byte-buffer probing loop
// (runPiped), since line editing on a non-tty is both useless and liner's
// own docs warn against it.
func Run(in *tcl.Interp, log *logrus.Logger) error {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return runLiner(in, log)
	}
	return runPiped(in, os.Stdin, os.Stdout)
}

func runLiner(in *tcl.Interp, log *logrus.Logger) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	log.Info("repl started")
	defer log.Info("repl stopped")

	var buf string
	for {
		prompt := "tcl> "
		if buf != "" {
			prompt = "tcl... "
		}
		text, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				buf = ""
				continue
			}
			if buf != "" {
				return ErrIncomplete
			}
			return nil
		}
		line.AppendHistory(text)
		buf += text + "\n"
		if !tcl.Ready(buf) {
			continue
		}
		evalAndPrint(in, buf, os.Stdout)
		buf = ""
	}
}

// runPiped implements the literal byte-at-a-time version of spec.md §6:
// no line editing, just a growing buffer probed each time a newline,
// carriage return or semicolon is read.
func runPiped(in *tcl.Interp, r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	var buf []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if len(buf) > 0 {
				return ErrIncomplete
			}
			return nil
		}
		buf = append(buf, b)
		if (b != '\n' && b != '\r' && b != ';') || !tcl.Ready(string(buf)) {
			continue
		}
		evalAndPrint(in, string(buf), w)
		buf = buf[:0]
	}
}

// evalAndPrint runs one complete command and prints it the way spec.md §6
// specifies: `result> <value>` on success, `?!` on error. The terminator
// that completed src is trimmed first, so the empty command after it does
// not clear the result.
func evalAndPrint(in *tcl.Interp, src string, w io.Writer) {
	flow := in.Eval(strings.TrimRight(src, " \t\r\n;"))
	if flow == tcl.FlowError {
		fmt.Fprintln(w, "?!")
		return
	}
	fmt.Fprintln(w, "result> "+in.Result())
}
