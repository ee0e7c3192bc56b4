// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package cwerr holds the sentinel error kinds shared by the keyer core
// (key, tonequeue, params, generator) so callers can use errors.Is across
// package boundaries instead of matching on error strings.
package cwerr

import "errors"

var (
	// ErrInvalidArgument is returned by a parameter setter given a value
	// outside its [MIN,MAX] range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBusy is reserved for future use: the tone queue or another
	// sub-machine is occupying the sound system.
	ErrBusy = errors.New("busy")

	// ErrDeadlockLikely is returned by IKWaitForKeyer when a paddle is
	// still closed, so the keyer would never reach Idle.
	ErrDeadlockLikely = errors.New("deadlock likely")

	// ErrReEntered is returned when a caller observes the iambic keyer's
	// re-entrancy guard already held.
	ErrReEntered = errors.New("re-entered")

	// ErrQueueOverflow is returned by the tone queue when it is full.
	ErrQueueOverflow = errors.New("tone queue overflow")
)
