/*
 * TCL  background reader and pattern matching.
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
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/muesli/cancelreader"

	"github.com/dcrawford/minitcl/tcl"
)

// streamReader runs one cancelable background read loop over a pty or
// network connection, feeding everything it reads into a shared buffer that
// cmdExpect scans for patterns. Grounded on the teacher's streamReader, cut
// down to the single blocking-read/append/notify loop `expect` needs — the
// teacher's stdin-interleaving path (`interact`) is not part of this spec.
type streamReader struct {
	mu     sync.Mutex
	rdr    cancelreader.CancelReader
	buf    strings.Builder
	eof    bool
	notify chan struct{}
	filter func([]byte) []byte
}

func newStreamReader(src io.Reader) *streamReader {
	return newFilteredStreamReader(src, nil)
}

// newFilteredStreamReader runs filter over every chunk read before it is
// appended to the match buffer — used to strip telnet negotiation out of a
// network connection's raw bytes (automate/telnet.go). A nil filter passes
// bytes through unchanged, the pty/spawn case.
func newFilteredStreamReader(src io.Reader, filter func([]byte) []byte) *streamReader {
	r := &streamReader{notify: make(chan struct{}, 1), filter: filter}
	cr, err := cancelreader.NewReader(src)
	if err != nil {
		r.eof = true
		return r
	}
	r.rdr = cr
	go r.loop()
	return r
}

func (r *streamReader) loop() {
	buf := make([]byte, 1024)
	for {
		n, err := r.rdr.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if r.filter != nil {
				chunk = r.filter(chunk)
			}
			r.mu.Lock()
			r.buf.Write(chunk)
			r.mu.Unlock()
			select {
			case r.notify <- struct{}{}:
			default:
			}
		}
		if err != nil {
			r.mu.Lock()
			r.eof = true
			r.mu.Unlock()
			select {
			case r.notify <- struct{}{}:
			default:
			}
			return
		}
	}
}

func (r *streamReader) cancel() {
	if r.rdr != nil {
		r.rdr.Cancel()
	}
}

// snapshot returns the buffer accumulated so far and whether the source has
// hit EOF.
func (r *streamReader) snapshot() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.String(), r.eof
}

// consume drops the first n bytes of the buffer — called once a pattern has
// matched through position n, so the next expect call starts past it.
func (r *streamReader) consume(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rest := r.buf.String()[n:]
	r.buf.Reset()
	r.buf.WriteString(rest)
}

// cmdExpect implements `expect ?-i spawn_id pattern1 body1 ?pattern2 body2
// ...`. Patterns are matched as plain substrings against the accumulated
// buffer in order; the first to match runs its body and the matched prefix
// is consumed. `timeout`/`eof` are reserved pattern keywords matching the
// `timeout` variable's deadline or the stream's EOF, mirroring the
// teacher's `matchSpecial`. Polls the shared buffer instead of the
// teacher's channel-based notification scheme, since this package drops
// the interleaved-stdin `interact` path that scheme exists for.
func cmdExpect(in *tcl.Interp, args []string, payload any) int {
	reg := payload.(*registry)
	i := 1
	id := in.GetVar("spawn_id")
	if i < len(args) && args[i] == "-i" {
		i++
		if i >= len(args) {
			return in.SetErr("-i missing argument")
		}
		id = args[i]
		i++
	}
	if id == "" {
		return in.SetErr("spawn_id variable not defined")
	}
	p, exists := reg.procs[id]
	if !exists {
		return in.SetErr("no process " + id)
	}
	if (len(args)-i)%2 != 0 {
		return in.SetErr("expect: pattern without body")
	}

	deadline := time.Time{}
	if t := in.GetVar("timeout"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs >= 0 {
			deadline = time.Now().Add(time.Duration(secs) * time.Second)
		}
	}

	for {
		buf, eof := p.rdr.snapshot()
		for j := i; j+1 < len(args); j += 2 {
			pattern, body := args[j], args[j+1]
			switch pattern {
			case "eof":
				if eof {
					return in.Eval(body)
				}
			case "timeout":
				if !deadline.IsZero() && time.Now().After(deadline) {
					return in.Eval(body)
				}
			default:
				if pos := strings.Index(buf, pattern); pos >= 0 {
					p.rdr.consume(pos + len(pattern))
					return in.Eval(body)
				}
			}
		}
		if eof {
			return in.SetResultOK("")
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return in.SetResultOK("")
		}
		select {
		case <-p.rdr.notify:
		case <-time.After(50 * time.Millisecond):
		}
	}
}
