/*
 * TCL  file command.
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

// Package osfile registers file-I/O commands (open, close, read, gets,
// puts, seek, flush, file ...) against a tcl.Interp from outside the core
// package, the way spec.md frames file I/O: an external collaborator, not
// part of the evaluator itself.
package osfile

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dcrawford/minitcl/tcl"
)

type channels struct {
	files map[string]*os.File
	eof   map[string]bool
	log   *logrus.Entry
}

var openModes = map[string]int{
	"r":  os.O_RDONLY,
	"r+": os.O_RDWR | os.O_CREATE,
	"w":  os.O_WRONLY | os.O_TRUNC | os.O_CREATE,
	"w+": os.O_RDWR | os.O_TRUNC | os.O_CREATE,
	"a":  os.O_WRONLY | os.O_APPEND | os.O_CREATE,
	"a+": os.O_RDWR | os.O_APPEND | os.O_CREATE,
}

// Register wires every command this package provides into in, sharing one
// open-channel table across all of them via the payload each is registered
// with.
func Register(in *tcl.Interp, log *logrus.Logger) {
	ch := &channels{
		files: map[string]*os.File{
			"stdin": os.Stdin, "stdout": os.Stdout, "stderr": os.Stderr,
		},
		eof: map[string]bool{"stdin": false, "stdout": false, "stderr": false},
		log: log.WithField("pkg", "osfile"),
	}

	in.Register("open", 0, cmdOpen, ch)
	in.Register("close", 2, cmdClose, ch)
	in.Register("eof", 2, cmdEOF, ch)
	in.Register("read", 0, cmdRead, ch)
	in.Register("gets", 0, cmdGets, ch)
	in.Register("puts", 0, cmdPuts, ch)
	in.Register("seek", 0, cmdSeek, ch)
	in.Register("tell", 2, cmdSeek, ch)
	in.Register("flush", 2, cmdFlush, ch)
	in.Register("file", 0, cmdFile, ch)
}

func cmdOpen(in *tcl.Interp, args []string, payload any) int {
	ch := payload.(*channels)
	if len(args) < 2 || len(args) > 4 {
		return in.SetErr("open name ?access ?permissions")
	}
	name := args[1]
	access := "r"
	if len(args) > 2 {
		access = args[2]
	}
	perm := int64(0o666)
	if len(args) > 3 {
		p, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			return in.SetErr("invalid permissions " + args[3])
		}
		perm = p
	}

	mode, ok := openModes[access]
	if !ok {
		return in.SetErr("invalid access mode " + access)
	}

	f, err := os.OpenFile(name, mode, os.FileMode(perm))
	if err != nil {
		ch.log.WithField("name", name).WithError(err).Warn("open failed")
		return in.SetErr("unable to open " + name + ": " + err.Error())
	}

	channel := "file" + strconv.Itoa(int(f.Fd()))
	ch.files[channel] = f
	ch.eof[channel] = false
	ch.log.WithFields(logrus.Fields{"name": name, "channel": channel}).Info("opened")
	return in.SetResultOK(channel)
}

func cmdClose(in *tcl.Interp, args []string, payload any) int {
	ch := payload.(*channels)
	f, ok := ch.files[args[1]]
	if !ok {
		return in.SetErr("file " + args[1] + " not opened")
	}
	err := f.Close()
	delete(ch.files, args[1])
	delete(ch.eof, args[1])
	ch.log.WithField("channel", args[1]).Info("closed")
	if err != nil {
		return in.SetErr(err.Error())
	}
	return in.SetResultOK("")
}

func cmdEOF(in *tcl.Interp, args []string, payload any) int {
	ch := payload.(*channels)
	eof, ok := ch.eof[args[1]]
	if !ok {
		return in.SetErr("file " + args[1] + " not opened")
	}
	if eof {
		return in.SetResultOK("1")
	}
	return in.SetResultOK("0")
}

func cmdRead(in *tcl.Interp, args []string, payload any) int {
	ch := payload.(*channels)
	if len(args) < 2 {
		return in.SetErr("read ?-nonewline channel ?numchars")
	}
	nonewline := false
	i := 1
	if args[i] == "-nonewline" {
		nonewline = true
		i++
	}
	if i >= len(args) {
		return in.SetErr("no channel given")
	}
	f, ok := ch.files[args[i]]
	if !ok {
		return in.SetErr("file " + args[i] + " not opened")
	}

	var buf []byte
	if i+1 < len(args) {
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			return in.SetErr("can't convert number of bytes to integer")
		}
		buf = make([]byte, n)
	} else {
		info, err := f.Stat()
		if err != nil {
			return in.SetErr("read error " + err.Error())
		}
		pos, err := f.Seek(0, io.SeekCurrent)
		if err != nil {
			return in.SetErr("read error " + err.Error())
		}
		buf = make([]byte, int(info.Size())-int(pos))
	}

	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return in.SetErr("read error " + err.Error())
	}
	if n == 0 {
		ch.eof[args[i]] = true
		return in.SetResultOK("")
	}
	if nonewline && buf[n-1] == '\n' {
		n--
	}
	return in.SetResultOK(string(buf[:n]))
}

func cmdGets(in *tcl.Interp, args []string, payload any) int {
	ch := payload.(*channels)
	if len(args) < 2 || len(args) > 3 {
		return in.SetErr("gets channel ?varname")
	}
	f, ok := ch.files[args[1]]
	if !ok {
		return in.SetErr("file " + args[1] + " not opened")
	}
	var line strings.Builder
	one := make([]byte, 1)
	for {
		n, err := f.Read(one)
		if err != nil && err != io.EOF {
			return in.SetErr("read error " + err.Error())
		}
		if n == 0 {
			ch.eof[args[1]] = true
			break
		}
		if one[0] == '\n' {
			break
		}
		line.WriteByte(one[0])
	}
	if len(args) < 3 {
		return in.SetResultOK(line.String())
	}
	in.SetVar(args[2], line.String())
	return in.SetResultOK(strconv.Itoa(line.Len()))
}

func cmdPuts(in *tcl.Interp, args []string, payload any) int {
	ch := payload.(*channels)
	if len(args) < 2 {
		return in.SetErr("puts ?-nonewline ?channel text")
	}
	nonewline := false
	i := 1
	if args[i] == "-nonewline" {
		nonewline = true
		i++
	}
	f := ch.files["stdout"]
	if i+1 < len(args) {
		var ok bool
		f, ok = ch.files[args[i]]
		if !ok {
			return in.SetErr("file " + args[i] + " not opened")
		}
		i++
	}
	if i >= len(args) {
		return in.SetErr("puts ?-nonewline ?channel text")
	}
	text := args[i]
	if !nonewline {
		text += "\n"
	}
	if _, err := f.WriteString(text); err != nil {
		return in.SetErr(err.Error())
	}
	return in.SetResultOK("")
}

func cmdSeek(in *tcl.Interp, args []string, payload any) int {
	ch := payload.(*channels)
	if len(args) < 2 {
		return in.SetErr("seek channel offset ?origin")
	}
	f, ok := ch.files[args[1]]
	if !ok {
		return in.SetErr("file " + args[1] + " not opened")
	}
	if args[0] == "tell" {
		pos, err := f.Seek(0, io.SeekCurrent)
		if err != nil {
			return in.SetErr(err.Error())
		}
		return in.SetResultOK(strconv.FormatInt(pos, 10))
	}

	origin := io.SeekStart
	offset := 0
	if len(args) >= 3 {
		o, err := strconv.Atoi(args[2])
		if err != nil {
			return in.SetErr("offset not a valid number")
		}
		offset = o
	}
	if len(args) == 4 {
		switch args[3] {
		case "start":
			origin = io.SeekStart
		case "current":
			origin = io.SeekCurrent
		case "end":
			origin = io.SeekEnd
		default:
			return in.SetErr("invalid origin")
		}
	}
	if _, err := f.Seek(int64(offset), origin); err != nil {
		return in.SetErr(err.Error())
	}
	return in.SetResultOK("")
}

func cmdFlush(in *tcl.Interp, args []string, payload any) int {
	ch := payload.(*channels)
	f, ok := ch.files[args[1]]
	if !ok {
		return in.SetErr("file " + args[1] + " not opened")
	}
	if err := f.Sync(); err != nil {
		return in.SetErr(err.Error())
	}
	return in.SetResultOK("")
}

var fileFuncs = map[string]bool{
	"atime": true, "mtime": true, "exists": true, "isdirectory": true,
	"isfile": true, "size": true, "type": true, "executable": true,
	"dirname": true, "extension": true, "rootname": true, "tail": true,
	"join": true, "mkdir": true, "pwd": true, "cwd": true, "separator": true,
	"delete": true, "dir": true,
}

// cmdFile implements `file subcommand ?args` for the subset spec.md §1's
// "external collaborators" clause leaves room for: inspection, path parts,
// and basic directory manipulation. It does not open channels itself.
func cmdFile(in *tcl.Interp, args []string, payload any) int {
	if len(args) < 2 {
		return in.SetErr("file subcommand ?args")
	}
	sub := args[1]
	if !fileFuncs[sub] {
		return in.SetErr("file: unknown subcommand " + sub)
	}
	switch sub {
	case "dirname":
		return in.SetResultOK(filepath.Dir(args[2]))
	case "extension":
		return in.SetResultOK(filepath.Ext(args[2]))
	case "rootname":
		return in.SetResultOK(strings.TrimSuffix(args[2], filepath.Ext(args[2])))
	case "tail":
		return in.SetResultOK(filepath.Base(args[2]))
	case "join":
		return in.SetResultOK(filepath.Join(args[2:]...))
	case "separator":
		return in.SetResultOK(string(filepath.Separator))
	case "pwd":
		dir, err := os.Getwd()
		if err != nil {
			return in.SetErr(err.Error())
		}
		return in.SetResultOK(dir)
	case "cwd":
		if len(args) != 3 {
			return in.SetErr("file cwd dir")
		}
		if err := os.Chdir(args[2]); err != nil {
			return in.SetErr(err.Error())
		}
		return in.SetResultOK("")
	case "mkdir":
		if len(args) != 3 {
			return in.SetErr("file mkdir dir")
		}
		if err := os.MkdirAll(args[2], 0o750); err != nil {
			return in.SetErr(err.Error())
		}
		return in.SetResultOK("")
	case "delete":
		if len(args) != 3 {
			return in.SetErr("file delete name")
		}
		if err := os.Remove(args[2]); err != nil {
			return in.SetErr(err.Error())
		}
		return in.SetResultOK("")
	case "dir":
		dir := "."
		if len(args) > 2 {
			dir = args[2]
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return in.SetErr(err.Error())
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		return in.SetResultOK(strings.Join(names, " "))
	default:
		return fileStat(in, sub, args)
	}
}

func fileStat(in *tcl.Interp, sub string, args []string) int {
	if len(args) != 3 {
		return in.SetErr("file " + sub + " name")
	}
	info, err := os.Lstat(args[2])
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return in.SetErr(err.Error())
	}
	switch sub {
	case "atime", "mtime":
		// Both report the modification time; the access time is not read.
		if !exists {
			return in.SetErr("file does not exist")
		}
		return in.SetResultOK(strconv.FormatInt(info.ModTime().Unix(), 10))
	case "exists":
		return in.SetResultOK(boolStr(exists))
	case "isdirectory":
		return in.SetResultOK(boolStr(exists && info.IsDir()))
	case "isfile":
		return in.SetResultOK(boolStr(exists && info.Mode().IsRegular()))
	case "executable":
		return in.SetResultOK(boolStr(exists && info.Mode().IsRegular() && info.Mode()&0o111 != 0))
	case "size":
		if !exists {
			return in.SetErr("file does not exist")
		}
		return in.SetResultOK(strconv.FormatInt(info.Size(), 10))
	case "type":
		if !exists {
			return in.SetErr("file does not exist")
		}
		switch {
		case info.Mode().IsRegular():
			return in.SetResultOK("file")
		case info.IsDir():
			return in.SetResultOK("directory")
		default:
			return in.SetResultOK("special")
		}
	}
	return in.SetErr("file: unhandled subcommand " + sub)
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
