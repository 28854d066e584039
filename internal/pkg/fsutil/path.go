// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package fsutil

import (
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// ContainerDest rewrites an in-container destination (e.g. "/etc/passwd")
// into a path relative to root that cannot escape root through ".." or
// symlink components, mirroring the C original's plain "strip the
// leading slash" but closed against traversal.
func ContainerDest(root, dst string) (string, error) {
	rel := strings.TrimPrefix(dst, "/")
	full, err := securejoin.SecureJoin(root, rel)
	if err != nil {
		return "", err
	}
	return full, nil
}
