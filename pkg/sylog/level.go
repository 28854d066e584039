// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018-2022, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package sylog

// messageLevel represents the level of a log message, higher is more verbose.
type messageLevel int

const (
	FatalLevel   messageLevel = iota - 4 // FatalLevel message level
	ErrorLevel                           // ErrorLevel message level
	WarnLevel                            // WarnLevel message level
	LogLevel                             // LogLevel message level
	InfoLevel                            // InfoLevel message level
	VerboseLevel                         // VerboseLevel message level
	DebugLevel                           // DebugLevel message level
)

var levelNames = map[messageLevel]string{
	FatalLevel:   "FATAL",
	ErrorLevel:   "ERROR",
	WarnLevel:    "WARNING",
	LogLevel:     "LOG",
	InfoLevel:    "INFO",
	VerboseLevel: "VERBOSE",
	DebugLevel:   "DEBUG",
}

// String returns the human-readable name of the level.
func (l messageLevel) String() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return "UNKNOWN"
}
