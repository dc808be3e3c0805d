/*
 * TCL  value and list operations.
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

import "strconv"

// Every datum in the language is a string; a "list" is just a value with a
// canonical whitespace/brace formatting that these functions know how to
// read and write (spec.md §3/§4.2). There is no separate list type.

// withSentinel appends the trailing NUL the tokenizer's "plus one" length
// convention requires (spec.md §4.1 step 8, §8 tokenizer invariant 2) so
// that a final word is always followed by a recognizable command
// terminator.
func withSentinel(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// listLength counts the WORD tokens in v.
func listLength(v string) int {
	b := withSentinel(v)
	from, to, q := 0, 0, 0
	count := 0
	for from < len(b) {
		tok := next(b, &from, &to, &q)
		if tok == tokError {
			break
		}
		if tok == tokWord {
			count++
		}
		from = to
	}
	return count
}

// listAt returns the index-th WORD token of v, with one outer pair of
// braces stripped if the word is brace-quoted. Returns ("", false) if
// index is out of range.
func listAt(v string, index int) (string, bool) {
	b := withSentinel(v)
	from, to, q := 0, 0, 0
	i := 0
	for from < len(b) {
		tok := next(b, &from, &to, &q)
		if tok == tokError {
			break
		}
		if tok == tokWord {
			if i == index {
				word := string(b[from:to])
				if len(word) >= 2 && word[0] == '{' && word[len(word)-1] == '}' {
					return word[1 : len(word)-1], true
				}
				return word, true
			}
			i++
		}
		from = to
	}
	return "", false
}

// needsBraceQuoting reports whether w must be wrapped in a single pair of
// braces to round-trip as one list element: it contains whitespace or any
// lexically special byte (spec.md §3).
func needsBraceQuoting(w string) bool {
	for i := 0; i < len(w); i++ {
		c := w[i]
		if isSpace(c) || isSpecial(c, 0) {
			return true
		}
	}
	return false
}

// listAppend appends w as one new element of the list v, following the
// canonical concatenation rule: a separating space if v is non-empty, `{}`
// for an empty element, `{w}` if w needs quoting, else w verbatim.
func listAppend(v, w string) string {
	out := v
	if len(out) > 0 {
		out += " "
	}
	switch {
	case w == "":
		out += "{}"
	case needsBraceQuoting(w):
		out += "{" + w + "}"
	default:
		out += w
	}
	return out
}

// toInt converts a value to a signed integer: decimal with an optional
// leading sign, trailing garbage ignored, empty (or non-numeric) is 0 —
// matching the original `tcl_int`'s use of `atoi`.
func toInt(v string) int {
	i := 0
	n := len(v)
	for i < n && (v[i] == ' ' || v[i] == '\t') {
		i++
	}
	start := i
	if i < n && (v[i] == '+' || v[i] == '-') {
		i++
	}
	digitsStart := i
	for i < n && v[i] >= '0' && v[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return 0
	}
	n64, err := strconv.ParseInt(v[start:i], 10, 64)
	if err != nil {
		// Overflow: wrap as a machine-word integer would.
		u, _ := strconv.ParseUint(v[digitsStart:i], 10, 64)
		return int(int64(u)) * sign(v[start])
	}
	return int(n64)
}

func sign(c byte) int {
	if c == '-' {
		return -1
	}
	return 1
}

// intToString renders an integer result in decimal, as every arithmetic
// built-in does.
func intToString(n int) string {
	return strconv.Itoa(n)
}
