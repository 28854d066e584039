// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018-2022, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package sylog

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestWritefRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	old := SetWriter(&buf)
	defer SetWriter(old)

	oldLevel := loggerLevel
	defer func() { loggerLevel = oldLevel }()

	loggerLevel = WarnLevel
	Infof("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written at WarnLevel, got %q", buf.String())
	}

	Warningf("disk %s", "full")
	if !strings.Contains(buf.String(), "disk full") {
		t.Fatalf("expected message to contain %q, got %q", "disk full", buf.String())
	}
}

func TestWriterDiscardsBelowLogLevel(t *testing.T) {
	oldLevel := loggerLevel
	defer func() { loggerLevel = oldLevel }()

	loggerLevel = FatalLevel
	if Writer() == nil {
		t.Fatal("Writer() must never return nil")
	}
	if Writer() != io.Discard {
		t.Fatal("Writer() at FatalLevel should be io.Discard")
	}
}
