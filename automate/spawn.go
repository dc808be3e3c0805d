/*
 * TCL  Expect-style process automation.
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

// Package automate registers spawn/expect/send commands that drive a
// subprocess over a pty or a remote host over a telnet connection, the way
// an expect script does. Like osfile, it is an external collaborator that
// calls Register from outside the tcl core.
package automate

import (
	"net"
	"os"
	"os/exec"
	"strconv"

	"github.com/creack/pty"
	"github.com/sirupsen/logrus"

	"github.com/dcrawford/minitcl/tcl"
)

// process is one spawned child or remote connection this package is
// driving. Exactly one of pty/conn is set.
type process struct {
	pty   *os.File
	conn  net.Conn
	cmd   *exec.Cmd
	tn    *tnState
	rdr   *streamReader
	last  []byte
}

type registry struct {
	procs map[string]*process
	next  int
	log   *logrus.Entry
}

// Register wires spawn, connect, send, expect, wait, and disconnect into in.
func Register(in *tcl.Interp, log *logrus.Logger) {
	reg := &registry{procs: map[string]*process{}, log: log.WithField("pkg", "automate")}
	in.Register("spawn", 0, cmdSpawn, reg)
	in.Register("connect", 0, cmdConnect, reg)
	in.Register("send", 0, cmdSend, reg)
	in.Register("expect", 0, cmdExpect, reg)
	in.Register("wait", 0, cmdWait, reg)
	in.Register("disconnect", 0, cmdClose, reg)
	in.SetVar("timeout", "-1")
}

func (r *registry) newID() string {
	id := "spawn" + strconv.Itoa(r.next)
	r.next++
	return id
}

// cmdSpawn implements `spawn program ?arg ...` (automate.md's `spawn`
// component): start program on a pty and remember it under a fresh
// spawn_id, the way the teacher's cmdSpawn does with creack/pty.
func cmdSpawn(in *tcl.Interp, args []string, payload any) int {
	reg := payload.(*registry)
	if len(args) < 2 {
		return in.SetErr("spawn program ?arg ...")
	}
	cmd := exec.Command(args[1], args[2:]...)
	f, err := pty.Start(cmd)
	if err != nil {
		reg.log.WithField("program", args[1]).WithError(err).Warn("spawn failed")
		return in.SetErr("unable to start " + args[1] + ": " + err.Error())
	}
	id := reg.newID()
	p := &process{pty: f, cmd: cmd}
	p.rdr = newStreamReader(f)
	reg.procs[id] = p
	in.SetVar("spawn_id", id)
	reg.log.WithFields(logrus.Fields{"id": id, "program": args[1], "pid": cmd.Process.Pid}).Info("spawned")
	return in.SetResultOK(strconv.Itoa(cmd.Process.Pid))
}

// cmdSend implements `send ?-i spawn_id string` (automate.md's `send`
// component): write string to the process or connection's input side.
func cmdSend(in *tcl.Interp, args []string, payload any) int {
	reg := payload.(*registry)
	id, text, ok := spawnArg(in, args[1:])
	if !ok {
		return in.SetErr("send ?-i spawn_id string")
	}
	p, exists := reg.procs[id]
	if !exists {
		return in.SetErr("no process " + id)
	}
	var err error
	switch {
	case p.pty != nil:
		_, err = p.pty.Write([]byte(text))
	case p.conn != nil:
		err = p.tn.send([]byte(text))
	}
	if err != nil {
		return in.SetErr(err.Error())
	}
	return in.SetResultOK("")
}

// cmdWait implements `wait ?-i spawn_id`: block for the spawned command to
// exit and report its exit code as the result.
func cmdWait(in *tcl.Interp, args []string, payload any) int {
	reg := payload.(*registry)
	id, ok := spawnOnly(in, args[1:])
	if !ok {
		return in.SetErr("wait ?-i spawn_id")
	}
	p, exists := reg.procs[id]
	if !exists {
		return in.SetErr("no process " + id)
	}
	delete(reg.procs, id)
	if p.cmd == nil {
		return in.SetResultOK("")
	}
	err := p.cmd.Wait()
	if exitErr, isExit := err.(*exec.ExitError); isExit {
		return in.SetResultOK(strconv.Itoa(exitErr.ExitCode()))
	}
	return in.SetResultOK("0")
}

// cmdClose implements `disconnect ?-i spawn_id` (named to avoid colliding
// with osfile's channel-based `close`, the same reason the teacher keeps
// them separate): tear down the pty or connection without waiting for the
// child.
func cmdClose(in *tcl.Interp, args []string, payload any) int {
	reg := payload.(*registry)
	id, ok := spawnOnly(in, args[1:])
	if !ok {
		return in.SetErr("disconnect ?-i spawn_id")
	}
	p, exists := reg.procs[id]
	if !exists {
		return in.SetErr("no process " + id)
	}
	p.rdr.cancel()
	if p.pty != nil {
		p.pty.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	delete(reg.procs, id)
	return in.SetResultOK("")
}

// spawnArg scans an optional `-i spawn_id` pair followed by exactly one
// trailing argument, falling back to the `spawn_id` variable when `-i` is
// absent — the same convention every expect command in the teacher shares.
func spawnArg(in *tcl.Interp, args []string) (id string, rest string, ok bool) {
	i := 0
	if i < len(args) && args[i] == "-i" {
		i++
		if i >= len(args) {
			return "", "", false
		}
		id = args[i]
		i++
	} else {
		id = in.GetVar("spawn_id")
	}
	if i >= len(args) {
		return "", "", false
	}
	return id, args[i], true
}

func spawnOnly(in *tcl.Interp, args []string) (id string, ok bool) {
	if len(args) > 0 && args[0] == "-i" {
		if len(args) < 2 {
			return "", false
		}
		return args[1], true
	}
	id = in.GetVar("spawn_id")
	return id, id != ""
}
