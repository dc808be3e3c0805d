/*
 * TCL  minimal embedded command-language interpreter.
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

// Package tcl implements the core of a minimalist embedded command-language
// interpreter in the Tcl tradition: a tokenizer, a string/list value model,
// a variable-scope stack, a recursive evaluator, and the built-in commands
// needed to observe all of it from the language itself.
package tcl

import (
	"errors"
	"io"
	"os"
)

// Flow codes threaded through every evaluation.
const (
	FlowNormal   = iota // Evaluation completed normally.
	FlowError           // Lexical, dispatch, or command error.
	FlowReturn          // `return` unwinding to the enclosing procedure call.
	FlowBreak           // `break` unwinding to the enclosing `while`.
	FlowContinue        // `continue` restarting the enclosing `while`.
)

var (
	// ErrError reports that EvalString's buffer produced FlowError.
	ErrError = errors.New("tcl: error")
)

// cmd is a registered command: its required arity (0 means variadic), its
// native handler, and an opaque payload the handler can use however it
// likes. User procedures store their defining (name, params, body) triple
// as payload.
type cmd struct {
	name   string
	arity  int
	fn     func(*Interp, []string, any) int
	payload any
}

// scope is one level of the variable-binding stack. parent exists only to
// be restored on procedure return; lookup never walks it (spec.md §3/§9:
// variables are purely local to the current scope).
type scope struct {
	vars   map[string]string
	parent *scope
}

// Interp holds one running interpreter: its scope stack, its command
// table, its last result, and the sink `puts` writes to.
type Interp struct {
	env    *scope
	cmds   []*cmd // insertion order; lookup scans newest first.
	result string
	Stdout io.Writer
}

// Create returns a new interpreter with a global scope and every built-in
// command registered (spec.md §6 `create()`).
func Create() *Interp {
	in := &Interp{
		env:    &scope{vars: map[string]string{}},
		Stdout: os.Stdout,
	}
	in.registerBuiltins()
	return in
}

// Destroy pops every scope and clears the command table and last result
// (spec.md §6 `destroy(i)`). The zero value left behind must not be reused
// for evaluation.
func (in *Interp) Destroy() {
	for in.env != nil {
		in.env = in.env.parent
	}
	in.cmds = nil
	in.result = ""
}

// Result returns the bytes of the last-result value (spec.md §6 `result(i)`).
func (in *Interp) Result() string {
	return in.result
}

// setResult records the outcome of a step and returns its flow code, the
// same shape as the original `tcl_result` helper: every place that produces
// a result produces a flow code in the same breath.
func (in *Interp) setResult(flow int, result string) int {
	in.result = result
	return flow
}

// SetResultOK is the FlowNormal half of setResult, exported so command
// handlers registered from outside this package (osfile, automate) can
// report success without reaching into unexported fields.
func (in *Interp) SetResultOK(result string) int {
	return in.setResult(FlowNormal, result)
}

// SetErr is the FlowError half of setResult, exported for the same reason
// as SetResultOK.
func (in *Interp) SetErr(message string) int {
	return in.setResult(FlowError, message)
}

// Register adds a native command. arity == 0 means variadic; otherwise the
// word count of an invocation (including the command name) must equal
// arity to match. A second registration under an existing name shadows the
// first until that later command is itself overwritten — first match by
// insertion order still wins at lookup, but lookup walks the table from the
// most recently registered entry first, so the later definition is "first".
func (in *Interp) Register(name string, arity int, fn func(*Interp, []string, any) int, payload any) {
	in.cmds = append(in.cmds, &cmd{name: name, arity: arity, fn: fn, payload: payload})
}

// lookup finds the most recently registered command matching name and
// arity (spec.md §3: "registering a new command with an existing name does
// not remove the old one — it shadows it").
func (in *Interp) lookup(name string, argc int) *cmd {
	for i := len(in.cmds) - 1; i >= 0; i-- {
		c := in.cmds[i]
		if c.name == name && (c.arity == 0 || c.arity == argc) {
			return c
		}
	}
	return nil
}

// Eval runs the buffer as a program and returns its flow code (spec.md §6
// `eval(i, bytes, len)`).
func (in *Interp) Eval(src string) int {
	return in.eval(src)
}

// EvalString is the convenience entry point used by embedders that want a
// Go error instead of a raw flow code: FlowNormal/FlowReturn/FlowBreak/
// FlowContinue all report as success (spec.md §7: these are not errors),
// FlowError reports as ErrError.
func (in *Interp) EvalString(src string) error {
	if in.eval(src) == FlowError {
		return ErrError
	}
	return nil
}

// SetVar assigns name to value in the current scope, creating it if
// necessary (spec.md §6 `set_var`).
func (in *Interp) SetVar(name, value string) {
	in.env.vars[name] = value
}

// GetVar returns the current value of name in the current scope, creating
// it with an empty value if it does not yet exist — lookups create on miss,
// matching the original `tcl_var` and spec.md §9's documented behavior for
// `set name` with no value (spec.md §6 `get_var`).
func (in *Interp) GetVar(name string) string {
	v, ok := in.env.vars[name]
	if !ok {
		in.env.vars[name] = ""
		return ""
	}
	return v
}

// UnsetVar removes a binding from the current scope. Not part of the
// external-interface list in spec.md §6; procedure teardown drops the whole
// scope instead, and no package in this repository calls it.
func (in *Interp) UnsetVar(name string) {
	delete(in.env.vars, name)
}

// pushScope creates a fresh scope whose parent is the current one and
// makes it current (procedure entry, spec.md §3 "Lifecycles").
func (in *Interp) pushScope() {
	in.env = &scope{vars: map[string]string{}, parent: in.env}
}

// popScope restores the parent scope (procedure exit, always, regardless of
// the body's flow outcome).
func (in *Interp) popScope() {
	in.env = in.env.parent
}
