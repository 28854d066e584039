// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package fsutil holds the small, broadly-reused path and filesystem
// primitives the rest of selfdock is built from.
package fsutil

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// ErrNameTooLong is returned by Compose when the formatted result would
// exceed unix.PathMax, mirroring the C original's fixed-size buffer
// truncation check.
var ErrNameTooLong = errors.New("name too long")

// Compose formats a path the way C's snprintf-into-a-fixed-buffer does,
// but fails loudly instead of silently truncating.
func Compose(format string, a ...interface{}) (string, error) {
	s := fmt.Sprintf(format, a...)
	if len(s) >= unix.PathMax {
		return "", ErrNameTooLong
	}
	return s, nil
}
