// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2019-2025, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package cmdline is a narrowed declarative flag-registration helper
// over spf13/cobra and spf13/pflag: describe a flag once as a *Flag* and
// register it on one or more commands, instead of repeating
// Flags().StringVarP(...) boilerplate at every call site. This is the
// subset of the teacher's own pkg/cmdline this repo's CLI surface needs
// (string, bool and repeatable string-slice values) — no env-var
// binding, bash-completion or man-page generation, which belong to a
// much larger CLI than selfdock's three subcommands.
package cmdline

import (
	"fmt"
	"reflect"

	"github.com/spf13/cobra"
)

// Flag describes one flag: its storage, default, and names. Register it
// on one or more commands with CommandManager.RegisterFlagForCmd.
type Flag struct {
	Value        interface{}
	DefaultValue interface{}
	Name         string
	ShortHand    string
	Usage        string
}

// FlagValTypeErr reports a Flag whose Value doesn't match DefaultValue's
// type.
type FlagValTypeErr struct {
	name     string
	expected string
	found    string
}

func (e FlagValTypeErr) Error() string {
	return fmt.Sprintf("expected value of flag %q to be of type %s, but encountered %s instead", e.name, e.expected, e.found)
}

// CommandManager registers Flags onto cobra commands.
type CommandManager struct{}

// NewCommandManager returns a ready-to-use CommandManager.
func NewCommandManager() *CommandManager {
	return &CommandManager{}
}

// RegisterFlagForCmd registers flag on every command in cmds, dispatching
// on the type of flag.DefaultValue.
func (m *CommandManager) RegisterFlagForCmd(flag *Flag, cmds ...*cobra.Command) error {
	for _, c := range cmds {
		if c == nil {
			return fmt.Errorf("nil command provided")
		}
	}
	if flag == nil {
		return fmt.Errorf("nil flag provided")
	}

	switch flag.DefaultValue.(type) {
	case string:
		return m.registerStringVar(flag, cmds)
	case bool:
		return m.registerBoolVar(flag, cmds)
	case []string:
		return m.registerStringArrayVar(flag, cmds)
	default:
		return fmt.Errorf("flag %s of type %T is not supported", flag.Name, flag.DefaultValue)
	}
}

func (m *CommandManager) registerStringVar(flag *Flag, cmds []*cobra.Command) error {
	for _, c := range cmds {
		val, ok := flag.Value.(*string)
		if !ok {
			return FlagValTypeErr{name: flag.Name, expected: "string", found: reflect.TypeOf(flag.Value).String()}
		}
		defaultVal, _ := flag.DefaultValue.(string) //nolint:forcetypeassert
		if flag.ShortHand != "" {
			c.Flags().StringVarP(val, flag.Name, flag.ShortHand, defaultVal, flag.Usage)
		} else {
			c.Flags().StringVar(val, flag.Name, defaultVal, flag.Usage)
		}
	}
	return nil
}

// registerBoolVar has no caller in cmd/selfdock today — none of its
// flags are boolean — but is kept as part of the general dispatch in
// RegisterFlagForCmd rather than narrowed further, since a future flag
// (e.g. a --quiet) would otherwise need this case re-added.
func (m *CommandManager) registerBoolVar(flag *Flag, cmds []*cobra.Command) error {
	for _, c := range cmds {
		val, ok := flag.Value.(*bool)
		if !ok {
			return FlagValTypeErr{name: flag.Name, expected: "bool", found: reflect.TypeOf(flag.Value).String()}
		}
		defaultVal, _ := flag.DefaultValue.(bool) //nolint:forcetypeassert
		if flag.ShortHand != "" {
			c.Flags().BoolVarP(val, flag.Name, flag.ShortHand, defaultVal, flag.Usage)
		} else {
			c.Flags().BoolVar(val, flag.Name, defaultVal, flag.Usage)
		}
	}
	return nil
}

func (m *CommandManager) registerStringArrayVar(flag *Flag, cmds []*cobra.Command) error {
	for _, c := range cmds {
		val, ok := flag.Value.(*[]string)
		if !ok {
			return FlagValTypeErr{name: flag.Name, expected: "[]string", found: reflect.TypeOf(flag.Value).String()}
		}
		defaultVal, _ := flag.DefaultValue.([]string) //nolint:forcetypeassert
		if flag.ShortHand != "" {
			c.Flags().StringArrayVarP(val, flag.Name, flag.ShortHand, defaultVal, flag.Usage)
		} else {
			c.Flags().StringArrayVar(val, flag.Name, defaultVal, flag.Usage)
		}
	}
	return nil
}
