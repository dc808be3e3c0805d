/*
 * TCL  Telnet connection.
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
	"net"

	"github.com/sirupsen/logrus"

	"github.com/dcrawford/minitcl/tcl"
)

// Telnet protocol bytes this state machine needs to strip IAC sequences
// out of a byte stream. Option negotiation is discarded without any reply;
// this is not a negotiating client.
const (
	tnIAC  byte = 255
	tnDONT byte = 254
	tnDO   byte = 253
	tnWONT byte = 252
	tnWILL byte = 251
	tnSB   byte = 250
	tnSE   byte = 240

	tnStateData = iota
	tnStateIAC
	tnStateOption
	tnStateSub
)

type tnState struct {
	conn  net.Conn
	state int
}

func openTelnet(conn net.Conn) *tnState {
	return &tnState{conn: conn, state: tnStateData}
}

// send writes output to the connection, doubling any literal IAC byte so
// it is not mistaken for the start of a negotiation sequence.
func (tn *tnState) send(output []byte) error {
	buf := make([]byte, 0, len(output))
	for _, b := range output {
		buf = append(buf, b)
		if b == tnIAC {
			buf = append(buf, tnIAC)
		}
	}
	_, err := tn.conn.Write(buf)
	return err
}

// receive strips telnet negotiation out of input and returns the plain
// data bytes that remain — a reduction of the teacher's full option state
// machine. DO/WILL/DONT/WONT requests and subnegotiations are consumed and
// dropped; no DONT/WONT answer is written back to the connection.
func (tn *tnState) receive(input []byte) []byte {
	out := make([]byte, 0, len(input))
	for _, ch := range input {
		switch tn.state {
		case tnStateData:
			if ch == tnIAC {
				tn.state = tnStateIAC
			} else {
				out = append(out, ch)
			}
		case tnStateIAC:
			switch ch {
			case tnIAC:
				out = append(out, tnIAC)
				tn.state = tnStateData
			case tnDO, tnWILL:
				tn.state = tnStateOption
			case tnDONT, tnWONT:
				tn.state = tnStateOption
			case tnSB:
				tn.state = tnStateSub
			default:
				tn.state = tnStateData
			}
		case tnStateOption:
			tn.state = tnStateData
		case tnStateSub:
			if ch == tnSE {
				tn.state = tnStateData
			}
		}
	}
	return out
}

// cmdConnect implements `connect host ?port` (the `connect` component of
// the automation extension): dial a remote host and register it under a
// fresh spawn_id exactly like cmdSpawn does for a local process, so
// `send`/`expect` treat both uniformly.
func cmdConnect(in *tcl.Interp, args []string, payload any) int {
	reg := payload.(*registry)
	if len(args) < 2 {
		return in.SetErr("connect host ?port")
	}
	port := "23"
	if len(args) > 2 {
		port = args[2]
	}
	conn, err := net.Dial("tcp", args[1]+":"+port)
	if err != nil {
		reg.log.WithField("host", args[1]).WithError(err).Warn("connect failed")
		return in.SetErr(err.Error())
	}
	tn := openTelnet(conn)
	id := reg.newID()
	p := &process{conn: conn, tn: tn}
	p.rdr = newFilteredStreamReader(conn, tn.receive)
	reg.procs[id] = p
	in.SetVar("spawn_id", id)
	reg.log.WithFields(logrus.Fields{"id": id, "host": args[1], "port": port}).Info("connected")
	return in.SetResultOK("")
}
