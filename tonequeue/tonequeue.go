// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package tonequeue implements the bounded FIFO of tones the Generator
// dequeues at audio-thread rate, plus the condition variable waiters used
// by wait_for_tone / wait_for_tone_queue.
package tonequeue

import (
	"sync"

	"github.com/hamkit/gocw/cwerr"
)

// Tone is one entry in the queue: a duration/frequency pair, or a
// "forever" tone whose length is held until replaced.
type Tone struct {
	DurationUs uint32
	FrequencyHz uint32
	IsForever   bool
}

// DefaultCapacity is the ring buffer capacity used by New.
const DefaultCapacity = 32

// DefaultLowWaterMark is the default trigger level for the low-water-mark
// callback.
const DefaultLowWaterMark = 1

// ToneQueue is a bounded ring buffer of Tone entries with a low-water-mark
// callback and condition-variable waiters.
type ToneQueue struct {
	mu   sync.Mutex
	cond *sync.Cond

	buf   []Tone
	head  int
	count int

	lowWaterMark int
	onLowWater   func()
}

// New returns a ToneQueue with the given capacity (a capacity below 1 is
// replaced by DefaultCapacity) and low-water-mark trigger level.
func New(capacity, lowWaterMark int) *ToneQueue {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	tq := &ToneQueue{
		buf:          make([]Tone, capacity),
		lowWaterMark: lowWaterMark,
	}
	tq.cond = sync.NewCond(&tq.mu)
	return tq
}

// SetLowWaterCallback registers the callback fired when Dequeue leaves the
// queue length at or below the low-water mark.
func (tq *ToneQueue) SetLowWaterCallback(fn func()) {
	tq.mu.Lock()
	tq.onLowWater = fn
	tq.mu.Unlock()
}

// Len returns the current queue length.
func (tq *ToneQueue) Len() int {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	return tq.count
}

// Capacity returns the maximum number of entries the queue can hold.
func (tq *ToneQueue) Capacity() int {
	return len(tq.buf)
}

// Enqueue appends a tone, returning ErrQueueOverflow if the queue is full.
func (tq *ToneQueue) Enqueue(t Tone) error {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	if tq.count == len(tq.buf) {
		return cwerr.ErrQueueOverflow
	}
	idx := (tq.head + tq.count) % len(tq.buf)
	tq.buf[idx] = t
	tq.count++
	tq.cond.Broadcast()
	return nil
}

// Dequeue removes and returns the head tone, reporting ok=false if empty.
// It fires the low-water-mark callback outside the lock when the
// resulting length is at or below the configured mark.
func (tq *ToneQueue) Dequeue() (Tone, bool) {
	tq.mu.Lock()
	if tq.count == 0 {
		tq.mu.Unlock()
		return Tone{}, false
	}
	t := tq.buf[tq.head]
	tq.head = (tq.head + 1) % len(tq.buf)
	tq.count--
	remaining := tq.count
	cb := tq.onLowWater
	tq.cond.Broadcast()
	tq.mu.Unlock()

	if cb != nil && remaining <= tq.lowWaterMark {
		cb()
	}
	return t, true
}

// WaitForTone blocks until the queue length changes from its value at
// call time (a tone has been dequeued or enqueued).
func (tq *ToneQueue) WaitForTone() {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	start := tq.count
	for tq.count == start {
		tq.cond.Wait()
	}
}

// WaitForToneQueue blocks until the queue is empty.
func (tq *ToneQueue) WaitForToneQueue() {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	for tq.count != 0 {
		tq.cond.Wait()
	}
}
