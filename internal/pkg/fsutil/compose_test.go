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
	"testing"
)

func TestComposeOK(t *testing.T) {
	s, err := Compose("%s/selfdock/%s", "/run/user/1000", "demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != "/run/user/1000/selfdock/demo" {
		t.Fatalf("got %q", s)
	}
}

func TestComposeTooLong(t *testing.T) {
	_, err := Compose("%s", strings.Repeat("a", 5000))
	if err != ErrNameTooLong {
		t.Fatalf("expected ErrNameTooLong, got %v", err)
	}
}
