// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package mount

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorMessageNamesPair(t *testing.T) {
	wrapped := errors.New("permission denied")
	err := &Error{Op: "bind", Src: "/host/etc", Dst: "/ctr/etc", Err: wrapped}

	msg := err.Error()
	for _, want := range []string{"bind", "/host/etc", "/ctr/etc", "permission denied"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
	if !errors.Is(err, wrapped) {
		t.Error("Error must unwrap to the underlying error")
	}
}

func TestErrorMessageWithoutSrc(t *testing.T) {
	err := &Error{Op: "tmpfs", Dst: "/tmp", Err: errors.New("no space left on device")}
	if strings.Contains(err.Error(), "->") {
		t.Errorf("single-path error should not contain an arrow: %q", err.Error())
	}
}
