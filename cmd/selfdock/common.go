// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package main

import (
	"fmt"
	"strings"

	"github.com/selfdock/selfdock/internal/pkg/launch"
	"github.com/selfdock/selfdock/pkg/cmdline"
	"github.com/spf13/cobra"
)

// Flag storage shared by run and build: only one subcommand executes per
// process, so there is no aliasing hazard in reusing the same variables
// across both commands' flag registrations.
var (
	rootfsFlag   string
	cwdFlag      string
	mapFlag      []string
	volFlag      []string
	tmpfsFlag    []string
	envSetFlag   []string
	envUnsetFlag []string
	instanceFlag string
)

// registerCommonFlags wires the run/build flag table from spec.md §6
// onto cmd. SRC/DST-shaped flags take a single colon-delimited value
// (e.g. "-m /etc:/etc"), following the teacher's own "--bind SRC:DST"
// convention rather than inventing a two-argument flag pflag has no
// native support for.
func registerCommonFlags(manager *cmdline.CommandManager, cmd *cobra.Command) error {
	flags := []*cmdline.Flag{
		{Value: &rootfsFlag, DefaultValue: "/", Name: "rootfs", ShortHand: "r", Usage: "host directory to use as container root"},
		{Value: &cwdFlag, DefaultValue: "", Name: "cd", ShortHand: "C", Usage: "working directory inside the container"},
		{Value: &mapFlag, DefaultValue: []string{}, Name: "map", ShortHand: "m", Usage: "read-only bind mount, SRC:DST"},
		{Value: &volFlag, DefaultValue: []string{}, Name: "vol", ShortHand: "v", Usage: "read-write bind mount, SRC:DST"},
		{Value: &tmpfsFlag, DefaultValue: []string{}, Name: "tmpfs", ShortHand: "t", Usage: "tmpfs mount, OPTIONS:DST"},
		{Value: &envSetFlag, DefaultValue: []string{}, Name: "env", ShortHand: "e", Usage: "set environment variable, NAME=VALUE"},
		{Value: &envUnsetFlag, DefaultValue: []string{}, Name: "env-rm", ShortHand: "E", Usage: "unset environment variable, NAME"},
		{Value: &instanceFlag, DefaultValue: "", Name: "instance-name", ShortHand: "i", Usage: "register the run under this instance name"},
	}
	for _, f := range flags {
		if err := manager.RegisterFlagForCmd(f, cmd); err != nil {
			return err
		}
	}
	return nil
}

// buildSpec turns the parsed common flags plus argv into a launch.Spec,
// validating it before returning.
func buildSpec(mode launch.Mode, permitWritable bool, argv []string) (*launch.Spec, error) {
	maps, err := parsePairs(mapFlag)
	if err != nil {
		return nil, fmt.Errorf("--map: %w", err)
	}
	vols, err := parsePairs(volFlag)
	if err != nil {
		return nil, fmt.Errorf("--vol: %w", err)
	}
	tmpfs, err := parseTmpfs(tmpfsFlag)
	if err != nil {
		return nil, fmt.Errorf("--tmpfs: %w", err)
	}
	env, err := parseEnvSet(envSetFlag)
	if err != nil {
		return nil, fmt.Errorf("--env: %w", err)
	}
	env = append(env, parseEnvUnset(envUnsetFlag)...)

	spec := &launch.Spec{
		Mode:           mode,
		OldRoot:        rootfsFlag,
		Cwd:            cwdFlag,
		Argv:           argv,
		Maps:           maps,
		Vols:           vols,
		Tmpfs:          tmpfs,
		Env:            env,
		PermitWritable: permitWritable,
		InstanceName:   instanceFlag,
		RootOverlay:    launch.RootOverlay(),
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func parsePairs(pairs []string) ([]launch.Bind, error) {
	out := make([]launch.Bind, 0, len(pairs))
	for _, p := range pairs {
		src, dst, ok := strings.Cut(p, ":")
		if !ok {
			return nil, fmt.Errorf("%q: expected SRC:DST", p)
		}
		out = append(out, launch.Bind{Src: src, Dst: dst})
	}
	return out, nil
}

func parseTmpfs(pairs []string) ([]launch.Tmpfs, error) {
	out := make([]launch.Tmpfs, 0, len(pairs))
	for _, p := range pairs {
		opts, dst, ok := strings.Cut(p, ":")
		if !ok {
			return nil, fmt.Errorf("%q: expected OPTIONS:DST", p)
		}
		out = append(out, launch.Tmpfs{Options: opts, Dst: dst})
	}
	return out, nil
}

func parseEnvSet(pairs []string) ([]launch.EnvOp, error) {
	out := make([]launch.EnvOp, 0, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("%q: expected NAME=VALUE", p)
		}
		out = append(out, launch.EnvOp{Name: name, Value: value})
	}
	return out, nil
}

func parseEnvUnset(names []string) []launch.EnvOp {
	out := make([]launch.EnvOp, 0, len(names))
	for _, n := range names {
		out = append(out, launch.EnvOp{Name: n, Unset: true})
	}
	return out
}
