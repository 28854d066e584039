// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package fsutil

import "golang.org/x/sys/unix"

// IsReadOnly reports whether path lives on a read-only filesystem. It
// updates atime if the attempt succeeds, so it is only suitable for
// checking a path that is expected to be read-only. Unlike opening with
// O_RDWR, this works for directories too.
func IsReadOnly(path string) bool {
	atime := []unix.Timespec{
		{Sec: 0, Nsec: unix.UTIME_NOW},
		{Sec: 0, Nsec: unix.UTIME_OMIT},
	}
	err := unix.UtimesNanoAt(unix.AT_FDCWD, path, atime, 0)
	return err == unix.EROFS
}
