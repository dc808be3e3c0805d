/*
 * TCL example interactive/script runner.
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

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dcrawford/minitcl/automate"
	"github.com/dcrawford/minitcl/osfile"
	"github.com/dcrawford/minitcl/shell"
	"github.com/dcrawford/minitcl/tcl"
)

var (
	quiet   bool
	timeout int
)

func newInterp(log *logrus.Logger) *tcl.Interp {
	in := tcl.Create()
	in.SetVar("argv0", os.Args[0])
	in.SetVar("argc", "0")
	in.SetVar("argv", "")
	osfile.Register(in, log)
	automate.Register(in, log)
	return in
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if quiet {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

func main() {
	root := &cobra.Command{
		Use:   "minitcl",
		Short: "A minimalist embedded command-language interpreter",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			in := newInterp(log)
			in.SetVar("timeout", fmt.Sprint(timeout))
			err := shell.Run(in, log)
			if errors.Is(err, shell.ErrIncomplete) {
				os.Exit(1)
			}
			return err
		},
	}
	root.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress informational logging")
	root.PersistentFlags().IntVar(&timeout, "timeout", -1, "default expect/automate timeout in seconds")

	runCmd := &cobra.Command{
		Use:   "run <file> [args...]",
		Short: "Evaluate a script file non-interactively",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			in := newInterp(log)
			in.SetVar("timeout", fmt.Sprint(timeout))
			err := shell.RunFile(in, log, args[0], args[1:])
			if errors.Is(err, tcl.ErrError) {
				fmt.Fprintln(os.Stderr, "Error: "+in.Result())
				os.Exit(1)
			}
			return err
		},
	}
	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
