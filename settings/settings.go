// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings loads the user settings of the shell from defaults,
// a TOML or YAML file, and XRSHELL_* environment variables, in increasing
// order of precedence.
package settings

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/caarlos0/env/v11"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"cogentcore.org/xrshell/base/errors"
	"cogentcore.org/xrshell/input"
	"cogentcore.org/xrshell/logx"
)

// Version is the settings format version written by [Defaults].
const Version = "1.0.0"

// SupportedVersions is the constraint that the version of a settings file must satisfy.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "XRSHELL_"

// ErrVersion is returned for a settings file with an unsupported version.
var ErrVersion = errors.New("settings: unsupported version")

// Settings are the user settings of the shell.
type Settings struct {

	// Version is the settings format version, which must satisfy [SupportedVersions].
	Version string `toml:"version" yaml:"version" env:"VERSION"`

	// Strict makes faults in mouse and gamepad capture updates panic, for debugging.
	Strict bool `toml:"strict" yaml:"strict" env:"STRICT"`

	// LogLevel is the user log level: debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level" env:"LOG_LEVEL"`

	// GamepadDeadzone is the stick radius under which gamepad sticks read as zero.
	GamepadDeadzone float32 `toml:"gamepad_deadzone" yaml:"gamepad_deadzone" env:"GAMEPAD_DEADZONE"`

	// ForceMode pins the routing mode to mouse, touch or spatial.
	// If it is empty, the mode follows the available devices.
	ForceMode string `toml:"force_mode" yaml:"force_mode" env:"FORCE_MODE"`

	// CameraModifiers are the keyboard modifiers that, held with the left
	// mouse button, start camera control: any of shift, control, alt and meta.
	CameraModifiers []string `toml:"camera_modifiers" yaml:"camera_modifiers" env:"CAMERA_MODIFIERS" envSeparator:","`
}

// Defaults returns the default settings.
func Defaults() *Settings {
	return &Settings{
		Version:         Version,
		LogLevel:        "info",
		GamepadDeadzone: 0.15,
		CameraModifiers: []string{"alt"},
	}
}

// Clone returns a deep copy of the settings.
func (s *Settings) Clone() *Settings {
	c := &Settings{}
	errors.Log(copier.CopyWithOption(c, s, copier.Option{DeepCopy: true}))
	return c
}

// Mode returns the forced routing mode, and false if the mode is automatic.
func (s *Settings) Mode() (input.Modes, bool) {
	if s.ForceMode == "" {
		return input.MouseOrGamepadMode, false
	}
	m, err := input.ParseMode(s.ForceMode)
	if err != nil {
		return input.MouseOrGamepadMode, false
	}
	return m, true
}

// Level returns the parsed log level.
func (s *Settings) Level() slog.Level {
	l, _ := logx.ParseLevel(s.LogLevel)
	return l
}

// Modifiers returns the parsed camera modifiers.
func (s *Settings) Modifiers() input.Modifiers {
	m, _ := input.ParseModifiers(s.CameraModifiers...)
	return m
}

// Validate returns an error for any invalid setting.
func (s *Settings) Validate() error {
	var errs []error
	if err := CheckVersion(s.Version); err != nil {
		errs = append(errs, err)
	}
	if _, err := logx.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if s.GamepadDeadzone < 0 || s.GamepadDeadzone >= 1 {
		errs = append(errs, fmt.Errorf("settings: gamepad deadzone %g is not in [0, 1)", s.GamepadDeadzone))
	}
	if s.ForceMode != "" {
		if _, err := input.ParseMode(s.ForceMode); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := input.ParseModifiers(s.CameraModifiers...); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// CheckVersion returns an error wrapping [ErrVersion] if the
// version does not satisfy [SupportedVersions].
func CheckVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrVersion, version, err)
	}
	c := errors.Must1(semver.NewConstraint(SupportedVersions))
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrVersion, v, SupportedVersions)
	}
	return nil
}

// UserFile returns the settings file in the config directory of the user,
// or "" if the home directory is unknown.
func UserFile() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "xrshell", "settings.toml")
}

// Open loads settings from the given file on top of [Defaults], then
// applies environment overrides. The format is chosen by the extension:
// .toml, or .yaml and .yml. A leading ~ is the home directory.
// An empty filename only applies the environment.
func Open(filename string) (*Settings, error) {
	s := Defaults()
	if filename != "" {
		filename, err := homedir.Expand(filename)
		if err != nil {
			return nil, err
		}
		b, err := os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		if err := Decode(s, filepath.Ext(filename), b); err != nil {
			return nil, fmt.Errorf("settings: %s: %w", filename, err)
		}
	}
	if err := ApplyEnv(s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Decode decodes settings data in the format of the given file extension into s.
func Decode(s *Settings, ext string, b []byte) error {
	switch strings.ToLower(ext) {
	case ".toml":
		return toml.Unmarshal(b, s)
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, s)
	}
	return fmt.Errorf("unsupported settings format %q", ext)
}

// ApplyEnv overrides settings from XRSHELL_* environment variables.
func ApplyEnv(s *Settings) error {
	if err := env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("settings: parse env: %w", err)
	}
	return nil
}

// Save writes the settings to the given file in the format of its extension.
func Save(s *Settings, filename string) error {
	var b []byte
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		b, err = toml.Marshal(s)
	case ".yaml", ".yml":
		b, err = yaml.Marshal(s)
	default:
		err = fmt.Errorf("settings: unsupported settings format %q", filepath.Ext(filename))
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}
