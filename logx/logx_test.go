// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = ParseLevel("Warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	l, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, defaultUserLevel, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	defer SetUserLevel(defaultUserLevel)

	var buf bytes.Buffer
	lg := slog.New(NewHandler(&buf)).With("channel", "touch")
	SetUserLevel(slog.LevelInfo)

	lg.Debug("hidden")
	assert.Equal(t, "", buf.String())

	lg.Info("capture begin", "behavior", "button")
	out := buf.String()
	assert.True(t, strings.Contains(out, "capture begin"), out)
	assert.True(t, strings.Contains(out, "channel=touch"), out)
	assert.True(t, strings.Contains(out, "behavior=button"), out)
	assert.True(t, strings.HasSuffix(out, "\n"))
}
