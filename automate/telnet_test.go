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
	"testing"

	"github.com/dcrawford/minitcl/tcl"
)

func TestReceiveStripsIACNegotiation(t *testing.T) {
	tn := &tnState{state: tnStateData}
	// IAC DO ECHO, then plain text, then a doubled literal IAC byte.
	input := []byte{tnIAC, tnDO, 1, 'h', 'i', tnIAC, tnIAC}
	got := tn.receive(input)
	want := "hi" + string([]byte{tnIAC})
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReceiveHandlesSubnegotiation(t *testing.T) {
	tn := &tnState{state: tnStateData}
	input := []byte{tnIAC, tnSB, 1, 2, 3, tnIAC, tnSE, 'o', 'k'}
	got := tn.receive(input)
	if string(got) != "ok" {
		t.Errorf("got %q, want %q", got, "ok")
	}
}

func TestConnectUnreachableHostIsError(t *testing.T) {
	in := newInterp()
	// Port 1 is reserved (tcpmux) and essentially never has a listener in
	// a test sandbox, so the dial should fail and surface as a flow error.
	if flow := in.Eval("connect 127.0.0.1 1"); flow != tcl.FlowError {
		t.Errorf("expected error connecting to a closed port, got result %q", in.Result())
	}
}
