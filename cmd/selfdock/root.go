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

	"github.com/pkg/errors"
	"github.com/selfdock/selfdock/pkg/cmdline"
	"github.com/selfdock/selfdock/pkg/sylog"
	"github.com/spf13/cobra"
)

// cmdInits holds the per-subcommand flag-registration functions, run
// once against the shared manager before Execute dispatches, mirroring
// the teacher's own cmdInits accumulation in cmd/internal/cli.
var cmdInits = make([]func(*cmdline.CommandManager), 0)

var rootCmd = &cobra.Command{
	Use:           "selfdock",
	Short:         "run a single unprivileged process inside bind-mounted namespaces",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute builds the command tree and runs it, exiting the process
// itself: every code path here is terminal.
func Execute() {
	manager := cmdline.NewCommandManager()
	for _, cmdInit := range cmdInits {
		cmdInit(manager)
	}

	if err := rootCmd.Execute(); err != nil {
		sylog.Errorf("%+v", errors.WithStack(err))
		os.Exit(1)
	}
}
