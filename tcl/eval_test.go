/*
 * TCL  evaluator and built-in command tests.
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

package tcl

import (
	"strings"
	"testing"
)

type scenario struct {
	src  string
	want string
}

func runAll(t *testing.T, cases []scenario) {
	t.Helper()
	for _, c := range cases {
		in := Create()
		flow := in.Eval(c.src)
		if flow != FlowNormal {
			t.Fatalf("%q: flow = %d, want FlowNormal", c.src, flow)
		}
		if in.Result() != c.want {
			t.Errorf("%q: result = %q, want %q", c.src, in.Result(), c.want)
		}
	}
}

func TestEvalEndToEndScenarios(t *testing.T) {
	runAll(t, []scenario{
		{`if {< 1 2} {puts A} {puts B}`, "A"},
		{`set x 0; while {< $x 5} {set x [+ $x 1]}`, "0"},
		{`proc fib {x} { if {<= $x 1} {return 1} {return [+ [fib [- $x 1]] [fib [- $x 2]]]}}; fib 20`, "10946"},
		{`set a su; set b bst; $a$b Hello`, "Hello"},
		{`set q {"}; subst $q[]hello[]$q`, `"hello"`},
		{`set a 5; set b 7; subst [- [* 4 [+ $a $b]] 6]`, "42"},
	})
}

func TestSubstBraceIsVerbatim(t *testing.T) {
	cases := []string{"x", "hello world", "no specials here"}
	for _, x := range cases {
		in := Create()
		flow := in.Eval("subst {" + x + "}")
		if flow != FlowNormal {
			t.Fatalf("subst {%s}: flow=%d", x, flow)
		}
		if in.Result() != x {
			t.Errorf("subst {%s} = %q, want %q", x, in.Result(), x)
		}
	}
}

func TestSetRoundTrip(t *testing.T) {
	in := Create()
	if flow := in.Eval("set a X; set a"); flow != FlowNormal {
		t.Fatalf("flow = %d", flow)
	}
	if in.Result() != "X" {
		t.Errorf("set a X; set a = %q, want X", in.Result())
	}
}

func TestSubstConcatenationIdiom(t *testing.T) {
	in := Create()
	if flow := in.Eval("set a hey"); flow != FlowNormal {
		t.Fatalf("flow = %d", flow)
	}
	if flow := in.Eval("subst $a[]$a"); flow != FlowNormal {
		t.Fatalf("flow = %d", flow)
	}
	want := "hey" + "hey"
	if in.Result() != want {
		t.Errorf("subst $a[]$a = %q, want %q", in.Result(), want)
	}
}

func TestSetCreatesOnMiss(t *testing.T) {
	in := Create()
	if flow := in.Eval("set unset_var"); flow != FlowNormal {
		t.Fatalf("flow = %d, want FlowNormal", flow)
	}
	if in.Result() != "" {
		t.Errorf("set of unset variable = %q, want empty", in.Result())
	}
}

func TestUnterminatedBraceIsError(t *testing.T) {
	in := Create()
	if flow := in.Eval("set a {"); flow != FlowError {
		t.Errorf("flow = %d, want FlowError", flow)
	}
	if in.Result() != "" {
		t.Errorf("result on error = %q, want empty", in.Result())
	}
}

func TestUnknownCommandIsError(t *testing.T) {
	in := Create()
	if flow := in.Eval("nosuchcommand 1 2"); flow != FlowError {
		t.Errorf("flow = %d, want FlowError", flow)
	}
}

func TestWrongArityIsError(t *testing.T) {
	in := Create()
	if flow := in.Eval("while {1}"); flow != FlowError {
		t.Errorf("flow = %d, want FlowError (while takes exactly 2 args)", flow)
	}
}

func TestWhileBreak(t *testing.T) {
	in := Create()
	flow := in.Eval(`set i 0; while {< $i 10} { set i [+ $i 1]; if {== $i 3} {break} }`)
	if flow != FlowNormal {
		t.Fatalf("flow = %d", flow)
	}
	if got := in.GetVar("i"); got != "3" {
		t.Errorf("i = %q, want 3", got)
	}
}

func TestWhileContinue(t *testing.T) {
	in := Create()
	flow := in.Eval(`set i 0; set sum 0
while {< $i 5} {
  set i [+ $i 1]
  if {== $i 3} {continue}
  set sum [+ $sum $i]
}`)
	if flow != FlowNormal {
		t.Fatalf("flow = %d", flow)
	}
	if got := in.GetVar("sum"); got != "12" {
		t.Errorf("sum = %q, want 12 (1+2+4+5)", got)
	}
}

func TestProcLocalScope(t *testing.T) {
	in := Create()
	flow := in.Eval(`set x outer; proc p {x} { set x inner; return $x }; p arg`)
	if flow != FlowNormal {
		t.Fatalf("flow = %d", flow)
	}
	if in.Result() != "inner" {
		t.Errorf("p arg = %q, want inner", in.Result())
	}
	if got := in.GetVar("x"); got != "outer" {
		t.Errorf("outer x = %q, want outer (proc scope must not leak)", got)
	}
}

func TestProcMissingActualsBindEmpty(t *testing.T) {
	in := Create()
	// A variable name runs up to the next special byte, so `[]` ends $a
	// before the dot.
	flow := in.Eval(`proc p {a b} { return "$a[].$b" }; p one`)
	if flow != FlowNormal {
		t.Fatalf("flow = %d", flow)
	}
	if in.Result() != "one." {
		t.Errorf("p one = %q, want %q", in.Result(), "one.")
	}
}

func TestProcExtraActualsIgnored(t *testing.T) {
	in := Create()
	flow := in.Eval(`proc p {a} { return $a }; p one two three`)
	if flow != FlowNormal {
		t.Fatalf("flow = %d", flow)
	}
	if in.Result() != "one" {
		t.Errorf("p one two three = %q, want one", in.Result())
	}
}

func TestProcRedefinitionShadows(t *testing.T) {
	in := Create()
	in.Eval(`proc p {} { return 1 }`)
	in.Eval(`proc p {} { return 2 }`)
	flow := in.Eval(`p`)
	if flow != FlowNormal {
		t.Fatalf("flow = %d", flow)
	}
	if in.Result() != "2" {
		t.Errorf("p = %q, want 2 (latest definition shadows)", in.Result())
	}
}

func TestArithmeticOperators(t *testing.T) {
	cases := []scenario{
		{"+ 3 4", "7"},
		{"- 10 3", "7"},
		{"* 6 7", "42"},
		{"/ 20 5", "4"},
		{"> 3 2", "1"},
		{">= 2 2", "1"},
		{"< 2 3", "1"},
		{"<= 2 2", "1"},
		{"== 5 5", "1"},
		{"!= 5 6", "1"},
	}
	runAll(t, cases)
}

func TestPutsWritesAndReturnsItsArgument(t *testing.T) {
	in := Create()
	var out strings.Builder
	in.Stdout = &out
	flow := in.Eval(`puts hello`)
	if flow != FlowNormal {
		t.Fatalf("flow = %d", flow)
	}
	if in.Result() != "hello" {
		t.Errorf("puts result = %q, want hello", in.Result())
	}
	if out.String() != "hello\n" {
		t.Errorf("puts wrote %q, want %q", out.String(), "hello\n")
	}
}

func TestIfNoMatchNoElse(t *testing.T) {
	in := Create()
	flow := in.Eval(`if {== 1 2} {puts nope}`)
	if flow != FlowNormal {
		t.Fatalf("flow = %d", flow)
	}
	if in.Result() != "0" {
		t.Errorf("result = %q, want 0", in.Result())
	}
}

func TestIfElseBranch(t *testing.T) {
	in := Create()
	flow := in.Eval(`if {== 1 2} {set r first} {set r second}`)
	if flow != FlowNormal {
		t.Fatalf("flow = %d", flow)
	}
	if in.Result() != "second" {
		t.Errorf("result = %q, want second", in.Result())
	}
}

func TestReturnFromTopLevelPropagatesAsFlow(t *testing.T) {
	in := Create()
	flow := in.Eval(`return 9`)
	if flow != FlowReturn {
		t.Errorf("flow = %d, want FlowReturn", flow)
	}
	if in.Result() != "9" {
		t.Errorf("result = %q, want 9", in.Result())
	}
}

func TestDivisionByZeroIsError(t *testing.T) {
	in := Create()
	if flow := in.Eval(`/ 1 0`); flow != FlowError {
		t.Errorf("flow = %d, want FlowError", flow)
	}
}
