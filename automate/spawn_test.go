/*
 * TCL  Test set for TCL.
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

package automate

import (
	"os"
	"os/exec"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/dcrawford/minitcl/tcl"
)

func newInterp() *tcl.Interp {
	in := tcl.Create()
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.PanicLevel)
	Register(in, log)
	return in
}

func skipIfMissing(t *testing.T, prog string) {
	t.Helper()
	if _, err := exec.LookPath(prog); err != nil {
		t.Skipf("%s not available: %v", prog, err)
	}
}

func TestSpawnSendExpect(t *testing.T) {
	skipIfMissing(t, "cat")
	in := newInterp()

	// A brace-quoted word is the only way to embed a literal newline in a
	// single argument (there is no backslash-escape syntax), so the line
	// cat needs to echo it back is written as {hello<LF>} rather than the
	// shell-familiar "hello\n".
	script := "spawn cat\nsend {hello\n}\nexpect hello {set matched yes}\nset matched"
	if flow := in.Eval(script); flow == tcl.FlowError {
		t.Fatalf("script failed: %s", in.Result())
	}
	if in.Result() != "yes" {
		t.Errorf("got %q, want %q", in.Result(), "yes")
	}
	in.Eval("disconnect")
}

func TestExpectTimeoutFallsThrough(t *testing.T) {
	skipIfMissing(t, "cat")
	in := newInterp()
	in.SetVar("timeout", "0")

	script := `
spawn cat
expect timeout {set hit yes} nosuchpattern {set hit no}
set hit`
	if flow := in.Eval(script); flow == tcl.FlowError {
		t.Fatalf("script failed: %s", in.Result())
	}
	if in.Result() != "yes" {
		t.Errorf("got %q, want %q", in.Result(), "yes")
	}
	in.Eval("disconnect")
}

func TestDisconnectUnknownSpawnIsError(t *testing.T) {
	in := newInterp()
	flow := in.Eval("disconnect -i nosuch")
	if flow != tcl.FlowError {
		t.Errorf("expected error, got result %q", in.Result())
	}
}

func TestSendWithoutSpawnIsError(t *testing.T) {
	in := newInterp()
	flow := in.Eval("send hello")
	if flow != tcl.FlowError {
		t.Errorf("expected error, got result %q", in.Result())
	}
}
