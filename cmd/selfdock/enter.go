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

var (
	enterInstanceFlag string
	enterCwdFlag      string
)

var enterCmd = &cobra.Command{
	Use:                   "enter -- COMMAND [ARGS...]",
	Short:                 "run a command inside an already-running instance's namespaces",
	Args:                  cobra.MinimumNArgs(1),
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if enterInstanceFlag == "" {
			sylog.Errorf("enter requires --instance-name")
			os.Exit(launch.ExitCannot)
		}
		os.Exit(supervisor.Enter(enterInstanceFlag, enterCwdFlag, args))
		return nil
	},
}

func init() {
	cmdInits = append(cmdInits, func(manager *cmdline.CommandManager) {
		flags := []*cmdline.Flag{
			{Value: &enterInstanceFlag, DefaultValue: "", Name: "instance-name", ShortHand: "i", Usage: "instance to enter"},
			{Value: &enterCwdFlag, DefaultValue: "", Name: "cd", ShortHand: "C", Usage: "working directory inside the container"},
		}
		for _, f := range flags {
			if err := manager.RegisterFlagForCmd(f, enterCmd); err != nil {
				sylog.Fatalf("registering enter flags: %s", err)
			}
		}
		rootCmd.AddCommand(enterCmd)
	})
}
