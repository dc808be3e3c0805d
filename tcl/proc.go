/*
 * TCL  user procedures.
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

// cmdProc implements `proc name params body` (spec.md §4.5/§4.6). The
// entire defining invocation's argument list is kept as the registered
// command's payload — name at index 1, params at index 2, body at index 3
// — the same self-referential payload shape the original `tcl_cmd_proc`
// stores, deliberately including the command's own name.
func cmdProc(in *Interp, args []string, _ any) int {
	name := args[1]
	defn := append([]string(nil), args...)
	in.Register(name, 0, userProc, defn)
	return in.setResult(FlowNormal, "")
}

// userProc is the native handler every `proc`-defined command shares: it
// pushes a fresh scope, binds formals to actuals (missing actuals bind to
// empty, extra actuals are ignored), evaluates the body, and always pops
// the scope and returns FlowNormal — the procedure itself never propagates
// RETURN/BREAK/CONTINUE past its own call, only the result value the body
// left behind (spec.md §4.6).
func userProc(in *Interp, args []string, payload any) int {
	defn := payload.([]string)
	params, body := defn[2], defn[3]

	in.pushScope()
	n := listLength(params)
	for i := 0; i < n; i++ {
		formal, _ := listAt(params, i)
		var actual string
		if i+1 < len(args) {
			actual = args[i+1]
		}
		in.SetVar(formal, actual)
	}
	in.eval(body)
	in.popScope()
	return FlowNormal
}
