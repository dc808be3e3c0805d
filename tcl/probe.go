/*
 * TCL  incremental-input probing for interactive and streaming callers.
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

// Ready tokenizes buf tolerantly and reports whether it holds one complete
// command: a CMD token reached at a position where at least one WORD/PART
// has already been seen. A lexical error (an unterminated brace, bracket,
// or quote) is not a verdict of "never" — it means buf needs more bytes
// before it can be judged, so Ready returns false the same as it would for
// plain trailing whitespace. Because every buffer carries an implicit
// terminator at its end, a buffer of whole words is ready; the CLI shell
// (spec.md §6) therefore polls this each time a command-terminator byte
// arrives on standard input.
func Ready(buf string) bool {
	b := withSentinel(buf)
	from, to, q := 0, 0, 0
	sawWord := false
	for from < len(b) {
		tok := next(b, &from, &to, &q)
		switch tok {
		case tokError:
			return false
		case tokWord, tokPart:
			sawWord = true
		case tokCmd:
			if sawWord {
				return true
			}
		}
		from = to
	}
	return false
}
