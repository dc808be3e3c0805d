/*
 * TCL  shell tests.
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

package shell

import (
	"errors"
	"strings"
	"testing"

	"github.com/dcrawford/minitcl/tcl"
)

func TestRunPipedEvaluatesEachCompleteCommand(t *testing.T) {
	in := tcl.Create()
	var out strings.Builder
	err := runPiped(in, strings.NewReader("set a 1\nset b 2\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "result> 1\nresult> 2\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunPipedReportsErrorsWithoutStopping(t *testing.T) {
	in := tcl.Create()
	var out strings.Builder
	err := runPiped(in, strings.NewReader("nosuch 1\nset x 5\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "?!\nresult> 5\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunPipedIncompleteAtEOF(t *testing.T) {
	in := tcl.Create()
	var out strings.Builder
	err := runPiped(in, strings.NewReader("set a {"), &out)
	if !errors.Is(err, ErrIncomplete) {
		t.Errorf("err = %v, want ErrIncomplete", err)
	}
}

func TestRunPipedCleanEOFNoError(t *testing.T) {
	in := tcl.Create()
	var out strings.Builder
	err := runPiped(in, strings.NewReader(""), &out)
	if err != nil {
		t.Errorf("err = %v, want nil", err)
	}
}
