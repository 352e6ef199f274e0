// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cogentcore.org/xrshell/capture"
	"cogentcore.org/xrshell/replay"
	"cogentcore.org/xrshell/settings"
	"cogentcore.org/xrshell/shell"
)

func newReplayCmd(opts *options) *cobra.Command {
	var focusLost int
	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "Run a replay script through the demo scene and print the capture transitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			sc, err := replay.Open(args[0])
			if err != nil {
				return err
			}
			return runReplay(cmd.OutOrStdout(), sc, s.Clone(), focusLost)
		},
	}
	cmd.Flags().IntVar(&focusLost, "focus-lost", 0, "simulate losing window focus after the given frame")
	return cmd
}

// runReplay plays the script and writes one line per capture
// transition and demo event, followed by the counters.
func runReplay(w io.Writer, sc *replay.Script, s *settings.Settings, focusLost int) error {
	ctx := shell.NewContext()
	src := replay.NewSource(sc)
	r := shell.NewRouter(ctx, src)
	r.ApplySettings(s)

	logf := func(format string, args ...any) {
		fmt.Fprintf(w, "%d: %s\n", r.Stats().Frames, fmt.Sprintf(format, args...))
	}
	if _, err := newDemo(ctx, logf); err != nil {
		return err
	}
	ctx.Arbiter.OnTransition.Add(func(tr capture.Transition) {
		logf("%v %v %s %v", tr.Kind, tr.Channel, tr.Capture.Identifier(), tr.Capture.Side)
	})

	for !src.Done() {
		in, err := r.Frame()
		if err != nil {
			return err
		}
		if focusLost > 0 && in.Frame == uint64(focusLost) {
			logf("focus lost")
			if err := r.FocusLost(); err != nil {
				return err
			}
		}
	}
	st := r.Stats()
	fmt.Fprintf(w, "frames %d, begins %d, ends %d, forced ends %d, declines %d, faults %d, conflicts %d\n",
		st.Frames, st.Begins, st.Ends, st.ForcedEnds, st.Declines, st.Faults, st.Conflicts)
	return nil
}
