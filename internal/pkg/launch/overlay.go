// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package launch

import "os"

// DefaultRootOverlay is the package-installed host directory holding the
// minimal dev/ template and the dev/empty anchor mountpoint (spec.md's
// ROOTOVERLAY). Overridable for testing via SELFDOCK_ROOTOVERLAY.
const DefaultRootOverlay = "/usr/libexec/selfdock/rootoverlay"

// RootOverlay resolves the effective ROOTOVERLAY directory.
func RootOverlay() string {
	if dir := os.Getenv("SELFDOCK_ROOTOVERLAY"); dir != "" {
		return dir
	}
	return DefaultRootOverlay
}
