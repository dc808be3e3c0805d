/*
 * TCL  substitution.
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

// maxVarName bounds the `set <name>` buffer synthesized for `$name`
// substitution (spec.md §4.3); a name longer than this is a lexical error
// rather than silently truncated.
const maxVarName = 256

// subst dispatches on the first byte of a token's text, per spec.md §4.3,
// and returns the substituted value together with its flow code: empty
// input is empty, `{...}` strips its braces verbatim, `$name` reuses the
// command dispatcher via a synthesized `set <name>`, `[...]` evaluates its
// interior as a nested program, anything else passes through unchanged.
func (in *Interp) subst(s string) (string, int) {
	if s == "" {
		return "", FlowNormal
	}
	switch s[0] {
	case '{':
		return s[1 : len(s)-1], FlowNormal
	case '$':
		name := s[1:]
		if len(name) > maxVarName {
			return "", FlowError
		}
		flow := in.eval("set " + name)
		return in.result, flow
	case '[':
		flow := in.eval(s[1 : len(s)-1])
		return in.result, flow
	default:
		return s, FlowNormal
	}
}
