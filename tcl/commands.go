/*
 * TCL  built-in commands.
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

import "fmt"

// registerBuiltins wires up every command spec.md §4.5 names. Arities
// follow the source exactly: `set` and `if` are variadic (0), `subst` and
// `puts` take exactly one argument beyond the command name, `proc` takes
// exactly three, `while` exactly two, `break`/`continue` take none beyond
// the name, `return` is variadic over 0 or 1, and the ten arithmetic and
// comparison operators each take exactly two operands.
func (in *Interp) registerBuiltins() {
	in.Register("set", 0, cmdSet, nil)
	in.Register("subst", 2, cmdSubst, nil)
	in.Register("puts", 2, cmdPuts, nil)
	in.Register("proc", 4, cmdProc, nil)
	in.Register("if", 0, cmdIf, nil)
	in.Register("while", 3, cmdWhile, nil)
	in.Register("return", 0, cmdReturn, nil)
	in.Register("break", 1, cmdBreak, nil)
	in.Register("continue", 1, cmdContinue, nil)

	for _, op := range []string{"+", "-", "*", "/", ">", ">=", "<", "<=", "==", "!="} {
		in.Register(op, 3, cmdMath, op)
	}
}

// cmdSet implements `set name ?value?` (spec.md §4.5). Reading an unset
// variable creates it with an empty value rather than erroring — spec.md
// §9's documented choice, resolved by the original's `tcl_var`.
func cmdSet(in *Interp, args []string, _ any) int {
	name := args[1]
	if len(args) > 2 {
		in.SetVar(name, args[2])
	}
	return in.setResult(FlowNormal, in.GetVar(name))
}

// cmdSubst implements `subst s` by running §4.3 substitution on its sole
// argument.
func cmdSubst(in *Interp, args []string, _ any) int {
	result, flow := in.subst(args[1])
	return in.setResult(flow, result)
}

// cmdPuts implements `puts s`: write s and a newline to the configured
// sink, and return s.
func cmdPuts(in *Interp, args []string, _ any) int {
	fmt.Fprintln(in.Stdout, args[1])
	return in.setResult(FlowNormal, args[1])
}

// cmdIf implements `if cond then ?cond2 then2 ...? ?else?` (spec.md §4.5):
// conditions are evaluated in order as programs; the first with a nonzero
// integer result runs its branch. An odd trailing argument is the else
// branch; with no match and no else, the result is the integer 0.
func cmdIf(in *Interp, args []string, _ any) int {
	i := 1
	n := len(args)
	for i+1 < n {
		flow := in.eval(args[i])
		if flow != FlowNormal {
			return flow
		}
		if toInt(in.result) != 0 {
			return in.eval(args[i+1])
		}
		i += 2
	}
	if i < n {
		// One argument left over after the last (condition, branch) pair:
		// the else branch.
		return in.eval(args[i])
	}
	return in.setResult(FlowNormal, intToString(0))
}

// cmdWhile implements `while cond body` (spec.md §4.5). The result value on
// exit is whatever the condition program last produced — the original
// `tcl_cmd_while`'s behavior, carried forward per SPEC_FULL's supplemented
// resolution of spec.md §9's open question.
func cmdWhile(in *Interp, args []string, _ any) int {
	cond, body := args[1], args[2]
	for {
		flow := in.eval(cond)
		if flow != FlowNormal {
			return flow
		}
		if toInt(in.result) == 0 {
			return FlowNormal
		}
		flow = in.eval(body)
		switch flow {
		case FlowNormal, FlowContinue:
		case FlowBreak:
			return in.setResult(FlowNormal, in.result)
		default:
			return flow
		}
	}
}

// cmdReturn, cmdBreak, cmdContinue implement the flow commands (spec.md
// §4.5): `return` optionally sets the result before unwinding to the
// enclosing procedure call; `break`/`continue` unwind to the enclosing
// `while` and carry no result of their own.
func cmdReturn(in *Interp, args []string, _ any) int {
	if len(args) > 1 {
		return in.setResult(FlowReturn, args[1])
	}
	return in.setResult(FlowReturn, "")
}

func cmdBreak(in *Interp, _ []string, _ any) int {
	return FlowBreak
}

func cmdContinue(in *Interp, _ []string, _ any) int {
	return FlowContinue
}

// cmdMath implements the ten binary arithmetic/comparison operators
// (spec.md §4.5). payload carries the operator symbol this registration is
// for, since all ten share one handler.
func cmdMath(in *Interp, args []string, payload any) int {
	op := payload.(string)
	a, b := toInt(args[1]), toInt(args[2])
	var c int
	switch op {
	case "+":
		c = a + b
	case "-":
		c = a - b
	case "*":
		c = a * b
	case "/":
		if b == 0 {
			return in.setResult(FlowError, "")
		}
		c = a / b
	case ">":
		c = boolInt(a > b)
	case ">=":
		c = boolInt(a >= b)
	case "<":
		c = boolInt(a < b)
	case "<=":
		c = boolInt(a <= b)
	case "==":
		c = boolInt(a == b)
	case "!=":
		c = boolInt(a != b)
	}
	return in.setResult(FlowNormal, intToString(c))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
