// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package tmpfsutil validates tmpfs mount-option strings before they
// reach the kernel.
package tmpfsutil

import (
	"fmt"
	"strings"

	units "github.com/docker/go-units"
)

// ValidateOptions walks a comma-separated tmpfs option string (as passed
// to mount(2) for a "tmpfs" filesystem) and, for any "size=" clause,
// checks it parses as a byte quantity with go-units' RAMInBytes. Every
// other option token passes through unexamined: selfdock does not attempt
// to understand the full tmpfs option grammar. RAMInBytes also accepts
// forms such as "2MB" or "2 MiB" that the kernel's own size parser
// rejects, so those are not caught here.
func ValidateOptions(options string) error {
	for _, tok := range strings.Split(options, ",") {
		if tok == "" {
			continue
		}
		name, value, hasValue := strings.Cut(tok, "=")
		if name != "size" || !hasValue {
			continue
		}
		if _, err := units.RAMInBytes(value); err != nil {
			return fmt.Errorf("invalid tmpfs size %q: %w", value, err)
		}
	}
	return nil
}
