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
	"os"

	"github.com/selfdock/selfdock/internal/pkg/launch"
	"github.com/selfdock/selfdock/internal/pkg/supervisor"
	"github.com/selfdock/selfdock/pkg/cmdline"
	"github.com/selfdock/selfdock/pkg/sylog"
	"github.com/spf13/cobra"
)

// buildCmd is identical to run except that it leaves the bind-mounted
// root writable, for use when the command populates or modifies the
// rootfs rather than merely executing inside it.
var buildCmd = &cobra.Command{
	Use:                   "build -- COMMAND [ARGS...]",
	Short:                 "run a command inside a fresh namespace with the root left writable",
	Args:                  cobra.MinimumNArgs(1),
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := buildSpec(launch.ModeBuild, true, args)
		if err != nil {
			sylog.Errorf("%s", err)
			os.Exit(launch.ExitCannot)
		}
		os.Exit(supervisor.Run(spec))
		return nil
	},
}

func init() {
	cmdInits = append(cmdInits, func(manager *cmdline.CommandManager) {
		if err := registerCommonFlags(manager, buildCmd); err != nil {
			sylog.Fatalf("registering build flags: %s", err)
		}
		rootCmd.AddCommand(buildCmd)
	})
}
