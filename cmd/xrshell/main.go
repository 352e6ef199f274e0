// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command xrshell runs the input capture engine of the shell against
// replay scripts or terminal mouse input.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"cogentcore.org/xrshell/logx"
	"cogentcore.org/xrshell/settings"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options are the flags shared by all commands.
type options struct {
	settingsFile string
	logLevel     string
	strict       bool
}

// load loads the settings, applies the flags on top of them,
// and installs the logger writing to w. Without a settings flag,
// the user settings file is used if it exists.
func (o *options) load(w io.Writer) (*settings.Settings, error) {
	if o.settingsFile == "" {
		if fn := settings.UserFile(); fn != "" {
			if _, err := os.Stat(fn); err == nil {
				o.settingsFile = fn
			}
		}
	}
	s, err := settings.Open(o.settingsFile)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		s.LogLevel = o.logLevel
	}
	if o.strict {
		s.Strict = true
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	logx.Init(w, s.Level())
	return s, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "xrshell",
		Short:        "Run the input capture engine of the shell",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.settingsFile, "settings", "", "settings file (.toml, .yaml or .yml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&opts.strict, "strict", false, "panic on faults in mouse and gamepad capture updates")
	root.AddCommand(newReplayCmd(opts), newTermCmd(opts))
	return root
}
