// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package launch

import (
	"os"
	"testing"
)

func TestValidateRejectsRelativeMapDestination(t *testing.T) {
	s := &Spec{Argv: []string{"/bin/true"}, Maps: []Bind{{Src: "/etc", Dst: "etc"}}}
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for relative --map destination")
	}
}

func TestValidateRejectsRelativeVolDestination(t *testing.T) {
	s := &Spec{Argv: []string{"/bin/true"}, Vols: []Bind{{Src: "/tmp", Dst: "var"}}}
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for relative --vol destination")
	}
}

func TestValidateRejectsRelativeTmpfsDestination(t *testing.T) {
	s := &Spec{Argv: []string{"/bin/true"}, Tmpfs: []Tmpfs{{Options: "size=1M", Dst: "tmp"}}}
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for relative --tmpfs destination")
	}
}

func TestValidateRejectsEmptyArgv(t *testing.T) {
	s := &Spec{}
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for empty argv")
	}
}

func TestValidateAcceptsAbsoluteDestinations(t *testing.T) {
	s := &Spec{
		Argv:  []string{"/bin/true"},
		Maps:  []Bind{{Src: "/etc", Dst: "/etc"}},
		Vols:  []Bind{{Src: "/tmp", Dst: "/var/tmp"}},
		Tmpfs: []Tmpfs{{Options: "size=1M", Dst: "/tmp"}},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyEnvSetsAndUnsets(t *testing.T) {
	t.Setenv("SELFDOCK_TEST_KEEP", "old")
	os.Unsetenv("SELFDOCK_TEST_NEW")

	s := &Spec{Env: []EnvOp{
		{Name: "SELFDOCK_TEST_NEW", Value: "hello"},
		{Name: "SELFDOCK_TEST_KEEP", Unset: true},
	}}
	s.ApplyEnv()

	if got := os.Getenv("SELFDOCK_TEST_NEW"); got != "hello" {
		t.Fatalf("SELFDOCK_TEST_NEW = %q, want hello", got)
	}
	if _, ok := os.LookupEnv("SELFDOCK_TEST_KEEP"); ok {
		t.Fatal("SELFDOCK_TEST_KEEP should have been unset")
	}
}
