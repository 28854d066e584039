// Copyright (c) Contributors to the Apptainer project, established as
//   Apptainer a Series of LF Projects LLC.
//   For website terms of use, trademark policy, privacy policy and other
//   project policies see https://lfprojects.org/policies
// Copyright (c) 2018, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package sigrelay forwards a fixed set of signals received by this
// process to whichever child it currently supervises. It is the Go
// reinterpretation of an async-signal-safe C handler: Go forbids doing
// anything non-trivial inside a real signal handler, so the "handler" is
// a channel read in an ordinary goroutine, and the "current child"
// global is an atomic int32 rather than a bare global pid_t.
package sigrelay

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/unix"
)

// Signals is the fixed set relayed to the supervised child, matching the
// original launcher's handler registration.
var Signals = []os.Signal{
	syscall.SIGHUP,
	syscall.SIGINT,
	syscall.SIGUSR1,
	syscall.SIGUSR2,
	syscall.SIGPIPE,
	syscall.SIGTERM,
}

// Relay publishes incoming signals to a single "current child" PID. A
// zero PID means no child has been published yet, and signals received
// in that window are silently dropped rather than queued — there is
// nothing yet to deliver them to.
type Relay struct {
	ch    chan os.Signal
	child atomic.Int32
	done  chan struct{}
}

// New installs signal.Notify for sigs (or Signals, if none given) and
// begins forwarding them to whatever PID is published via Publish. The
// returned Relay must be stopped with Stop once the caller is done with
// it, to release the os/signal registration.
func New(sigs ...os.Signal) *Relay {
	if len(sigs) == 0 {
		sigs = Signals
	}

	r := &Relay{
		ch:   make(chan os.Signal, 16),
		done: make(chan struct{}),
	}
	signal.Notify(r.ch, sigs...)

	go r.forward()

	return r
}

// Publish sets the PID that subsequent signals are relayed to. Passing 0
// unpublishes: signals received afterwards are dropped until the next
// Publish call.
func (r *Relay) Publish(pid int) {
	r.child.Store(int32(pid))
}

// Stop deregisters the signal handler and terminates the forwarding
// goroutine. It must not be called more than once.
func (r *Relay) Stop() {
	signal.Stop(r.ch)
	close(r.ch)
	<-r.done
}

func (r *Relay) forward() {
	defer close(r.done)
	for sig := range r.ch {
		pid := r.child.Load()
		if pid == 0 {
			continue
		}
		s, ok := sig.(syscall.Signal)
		if !ok {
			continue
		}
		_ = unix.Kill(int(pid), s)
	}
}
