// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package instance

import (
	"fmt"
	"os"

	"github.com/ccoveille/go-safecast"
	"github.com/selfdock/selfdock/internal/pkg/fsutil"
	"github.com/selfdock/selfdock/internal/pkg/util/priv"
)

// subDir is the name of the selfdock-owned directory inside
// $XDG_RUNTIME_DIR.
const subDir = "selfdock"

// RuntimeDir returns $XDG_RUNTIME_DIR, defaulting to and, if create is
// true, lazily materialising /run/user/<uid> at 0700 owned by uid. The
// directory is always created with the real uid in force — never while
// running as effective root — per the mkdir_as_realuser contract.
func RuntimeDir(uid int, create bool) (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}
	dir, err := fsutil.Compose("/run/user/%d", uid)
	if err != nil {
		return "", err
	}
	if !create {
		return dir, nil
	}

	if _, err := os.Stat(dir); err == nil {
		return dir, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	if err := priv.WithRoot(func() error {
		if err := os.Mkdir("/run/user", 0o755); err != nil && !os.IsExist(err) {
			return err
		}
		return nil
	}); err != nil {
		return "", fmt.Errorf("create /run/user: %w", err)
	}

	if err := priv.MkdirAsRealUser(dir, 0o700); err != nil && !os.IsExist(err) {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	safeUID, err := safecast.ToUint32(uid)
	if err != nil {
		return "", fmt.Errorf("convert uid: %w", err)
	}
	if err := priv.WithRoot(func() error {
		return os.Chown(dir, int(safeUID), -1)
	}); err != nil {
		return "", fmt.Errorf("chown %s: %w", dir, err)
	}

	return dir, nil
}

// selfdockDir returns (and for create=true, lazily creates at 0700 owned
// by uid) $XDG_RUNTIME_DIR/selfdock.
func selfdockDir(uid int, create bool) (string, error) {
	runtimeDir, err := RuntimeDir(uid, create)
	if err != nil {
		return "", err
	}
	dir, err := fsutil.Compose("%s/%s", runtimeDir, subDir)
	if err != nil {
		return "", err
	}
	if !create {
		return dir, nil
	}

	// MkdirAsRealUser itself guarantees dir ends up owned by uid whether
	// or not the caller still has euid 0 in force, so no separate chown
	// is needed here.
	if err := priv.MkdirAsRealUser(dir, 0o700); err != nil && !os.IsExist(err) {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return dir, nil
}
