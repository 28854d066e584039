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
)

func main() {
	// Dispatch straight into the child setup pipeline when re-exec'd by
	// our own Spawn — this path never goes through cobra.
	if len(os.Args) > 1 && os.Args[1] == launch.ChildArg {
		os.Exit(launch.RunChild())
	}

	Execute()
}
