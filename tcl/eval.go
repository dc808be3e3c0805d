/*
 * TCL  evaluator.
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

// eval drives the tokenizer over src, assembling words from parts via
// substitution, accumulating an argument list, and dispatching to the
// command table on each command terminator (spec.md §4.4).
func (in *Interp) eval(src string) int {
	in.result = ""
	if src == "" {
		return FlowNormal
	}

	buf := withSentinel(src)
	from, to, q := 0, 0, 0

	var cur string
	haveCur := false
	var list string

	for from < len(buf) {
		tok := next(buf, &from, &to, &q)
		switch tok {
		case tokError:
			in.result = ""
			return FlowError

		case tokWord:
			substituted, flow := in.subst(string(buf[from:to]))
			if flow != FlowNormal {
				return flow
			}
			if haveCur {
				cur += substituted
			} else {
				cur = substituted
			}
			list = listAppend(list, cur)
			cur = ""
			haveCur = false

		case tokPart:
			substituted, flow := in.subst(string(buf[from:to]))
			if flow != FlowNormal {
				return flow
			}
			cur += substituted
			haveCur = true

		case tokCmd:
			if listLength(list) == 0 {
				in.result = ""
			} else {
				flow := in.dispatch(list)
				if flow != FlowNormal {
					return flow
				}
			}
			list = ""
		}
		from = to
	}
	return FlowNormal
}

// dispatch looks up the command named by the first element of list and
// invokes it with the full argument list (spec.md §4.4's TCMD case).
func (in *Interp) dispatch(list string) int {
	args := toArgs(list)
	name := args[0]
	c := in.lookup(name, len(args))
	if c == nil {
		in.result = ""
		return FlowError
	}
	return c.fn(in, args, c.payload)
}

// toArgs splits a list value into its Go string slice; native command
// handlers work with []string rather than re-tokenizing on every access.
func toArgs(list string) []string {
	n := listLength(list)
	args := make([]string, n)
	for i := 0; i < n; i++ {
		args[i], _ = listAt(list, i)
	}
	return args
}
