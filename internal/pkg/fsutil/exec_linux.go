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
	"os"
	"strings"
	"syscall"
)

// ExecDiagnosis classifies why a target program could not be execed.
type ExecDiagnosis int

const (
	// DiagnosisMissing means the path does not exist.
	DiagnosisMissing ExecDiagnosis = iota
	// DiagnosisNoSUID means the path exists but does not have the setuid
	// bit set.
	DiagnosisNoSUID
	// DiagnosisSUID means the path exists and has the setuid bit set; its
	// owner is not checked.
	DiagnosisSUID
)

// DiagnoseExecutable stats path and classifies it, substituting
// syscall.EISDIR for syscall.EACCES when path is (a symlink to) a
// directory and looks like a pathname (contains a slash) — execvp would
// otherwise report a plain, unhelpful "permission denied".
func DiagnoseExecutable(path string) (ExecDiagnosis, syscall.Errno) {
	info, err := os.Stat(path)
	if err != nil {
		return DiagnosisMissing, 0
	}

	var errno syscall.Errno
	if info.IsDir() && strings.Contains(path, "/") {
		errno = syscall.EISDIR
	}

	if info.Mode()&os.ModeSetuid != 0 {
		return DiagnosisSUID, errno
	}
	return DiagnosisNoSUID, errno
}
