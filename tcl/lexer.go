/*
 * TCL  tokenizer.
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

// Token kinds.
const (
	tokCmd   = iota // Command terminator.
	tokWord         // Complete word.
	tokPart         // Fragment of a word, to be concatenated with neighbors.
	tokError        // Malformed or incomplete input.
)

// isSpace reports a space/tab byte.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// isEnd reports an end-of-command byte: LF, CR, semicolon, or NUL.
func isEnd(c byte) bool {
	return c == '\n' || c == '\r' || c == ';' || c == 0
}

// isSpecial reports a lexically special byte for the current quoting mode.
// $ [ ] " NUL are always special; { } ; CR LF are special only when
// unquoted (q == 0).
func isSpecial(c byte, q int) bool {
	if c == '$' || c == '[' || c == ']' || c == '"' || c == 0 {
		return true
	}
	return q == 0 && (c == '{' || c == '}' || c == ';' || c == '\r' || c == '\n')
}

// next scans one token starting at s[*from] and is the sole primitive the
// evaluator and list operations drive. s must carry the sentinel NUL byte
// spec.md §4.1/§8 describe ("the length passed to the tokenizer is the
// string length plus one") so that a final command terminator can be
// recognized at the true end of input; eval and the list helpers both
// arrange for that sentinel themselves rather than require every caller to
// append one.
//
// On entry *from is the offset to resume scanning from (normally the
// previous call's *to) and *q carries the quoting mode (0 unquoted, 1
// inside a double-quoted word) across calls. On return *from/*to delimit
// the token within s and *q reflects any toggle a `"` caused.
func next(s []byte, from, to *int, q *int) int {
	n := len(s)
	i := *from

	// Skip leading spaces unless quoted.
	if *q == 0 {
		for i < n && isSpace(s[i]) {
			i++
		}
	}
	*from = i

	if *q == 0 && i < n && isEnd(s[i]) {
		*to = i + 1
		return tokCmd
	}

	switch {
	case i < n && s[i] == '$':
		// Variable token; must not start with a space or a quote.
		if i+1 >= n || isSpace(s[i+1]) || s[i+1] == '"' {
			*to = i
			return tokError
		}
		// The recursive call's from and to both alias *to, the same trick
		// original_source/tcl.c's tcl_next plays by passing `to` for both
		// out-params: it can only ever advance *to, never *from, so the
		// outer *from set above (line 78) stays pinned at the '$' and the
		// token's range keeps its leading '$'.
		mode := *q
		*q = 0
		*to = i + 1
		r := next(s, to, to, q)
		*q = mode
		if r == tokWord && *q == 1 {
			return tokPart
		}
		return r

	case i < n && (s[i] == '[' || (*q == 0 && s[i] == '{')):
		// Balanced pair; interleaving a different opener inside is not
		// tracked separately, matching the reference scanner.
		open := s[i]
		close := byte(']')
		if open == '{' {
			close = '}'
		}
		depth := 1
		j := i + 1
		for j < n && depth != 0 {
			switch s[j] {
			case open:
				depth++
			case close:
				depth--
			}
			j++
		}
		i = j // falls through to the shared word/part decision below.

	case i < n && s[i] == '"':
		*q = 1 - *q
		*from, *to = i+1, i+1
		if *q == 1 {
			return tokPart
		}
		if i+1 >= n || !(isSpace(s[i+1]) || isEnd(s[i+1])) {
			return tokError
		}
		return tokWord

	default:
		j := i
		for j < n && (*q == 1 || !isSpace(s[j])) && !isSpecial(s[j], *q) {
			j++
		}
		if j == i {
			// Nothing to scan: a stray closer, or the sentinel reached
			// inside an open double quote.
			*to = i
			return tokError
		}
		i = j
	}

	*to = i
	if i == n {
		return tokError
	}
	if *q == 1 {
		return tokPart
	}
	if isSpace(s[i]) || isEnd(s[i]) {
		return tokWord
	}
	return tokPart
}
