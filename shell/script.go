/*
 * TCL  non-interactive script runner.
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

package shell

import (
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dcrawford/minitcl/tcl"
)

// RunFile loads path as a single program and evaluates it with in,
// mirroring the teacher's `len(os.Args) > 2` branch in main.go: argv0 is
// set to path, argv/argc carry any trailing arguments.
func RunFile(in *tcl.Interp, log *logrus.Logger, path string, scriptArgs []string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		log.WithField("path", path).WithError(err).Error("failed to read script")
		return err
	}
	in.SetVar("argv0", path)
	in.SetVar("argv", strings.Join(scriptArgs, " "))
	in.SetVar("argc", strconv.Itoa(len(scriptArgs)))

	log.WithField("path", path).Info("running script")
	return in.EvalString(string(text))
}
