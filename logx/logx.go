// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the user log level and a colored
// terminal handler for the standard [slog] package.
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. It should typically
// be set through [Init] or [SetUserLevel].
var UserLevel = defaultUserLevel

var levelVar = func() *slog.LevelVar {
	lv := &slog.LevelVar{}
	lv.Set(defaultUserLevel)
	return lv
}()

// SetUserLevel sets [UserLevel] and the level of any handler made by [NewHandler].
func SetUserLevel(level slog.Level) {
	UserLevel = level
	levelVar.Set(level)
}

// ParseLevel parses a level name ("debug", "info", "warn", "error"),
// case insensitively. An empty string returns the default level.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return defaultUserLevel, nil
	}
	var l slog.Level
	err := l.UnmarshalText([]byte(strings.ToUpper(s)))
	if err != nil {
		return defaultUserLevel, fmt.Errorf("logx: invalid level %q: %w", s, err)
	}
	return l, nil
}

// Init sets the user level and installs a [NewHandler] writing to w
// as the default slog logger.
func Init(w io.Writer, level slog.Level) {
	SetUserLevel(level)
	slog.SetDefault(slog.New(NewHandler(w)))
}

// Handler is a [slog.Handler] that prints one line per record,
// with the level colored for terminals that support it.
type Handler struct {
	mu     *sync.Mutex
	out    *termenv.Output
	attrs  []slog.Attr
	groups []string
}

// NewHandler returns a new [Handler] writing to w, filtered at [UserLevel].
func NewHandler(w io.Writer) *Handler {
	return &Handler{mu: &sync.Mutex{}, out: termenv.NewOutput(w)}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= levelVar.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(h.levelString(r.Level))
	sb.WriteByte(' ')
	sb.WriteString(r.Message)
	prefix := strings.Join(h.groups, ".")
	write := func(a slog.Attr) bool {
		sb.WriteByte(' ')
		if prefix != "" {
			sb.WriteString(prefix)
			sb.WriteByte('.')
		}
		sb.WriteString(a.Key)
		sb.WriteByte('=')
		sb.WriteString(a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	nh := *h
	nh.groups = append(append([]string{}, h.groups...), name)
	return &nh
}

func (h *Handler) levelString(level slog.Level) string {
	s := h.out.String(level.String())
	switch {
	case level >= slog.LevelError:
		s = s.Foreground(h.out.Color("1")).Bold()
	case level >= slog.LevelWarn:
		s = s.Foreground(h.out.Color("3"))
	case level >= slog.LevelInfo:
		s = s.Foreground(h.out.Color("2"))
	default:
		s = s.Foreground(h.out.Color("6"))
	}
	return s.String()
}
