// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package tonequeue

import (
	"errors"
	"testing"
	"time"

	"github.com/hamkit/gocw/cwerr"
)

func TestEnqueueDequeueFIFO(t *testing.T) {
	tq := New(4, 1)
	_ = tq.Enqueue(Tone{DurationUs: 1})
	_ = tq.Enqueue(Tone{DurationUs: 2})

	first, ok := tq.Dequeue()
	if !ok || first.DurationUs != 1 {
		t.Fatalf("first dequeue = %+v, ok=%v, want DurationUs=1", first, ok)
	}
	second, ok := tq.Dequeue()
	if !ok || second.DurationUs != 2 {
		t.Fatalf("second dequeue = %+v, ok=%v, want DurationUs=2", second, ok)
	}
	if _, ok := tq.Dequeue(); ok {
		t.Fatalf("dequeue on empty queue returned ok=true")
	}
}

func TestEnqueueOverflow(t *testing.T) {
	tq := New(2, 0)
	if err := tq.Enqueue(Tone{}); err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	if err := tq.Enqueue(Tone{}); err != nil {
		t.Fatalf("second enqueue: %v", err)
	}
	err := tq.Enqueue(Tone{})
	if !errors.Is(err, cwerr.ErrQueueOverflow) {
		t.Fatalf("third enqueue err = %v, want ErrQueueOverflow", err)
	}
}

func TestLowWaterCallback(t *testing.T) {
	tq := New(4, 1)
	fired := make(chan int, 4)
	tq.SetLowWaterCallback(func() { fired <- tq.Len() })

	_ = tq.Enqueue(Tone{})
	_ = tq.Enqueue(Tone{})
	tq.Dequeue() // len goes 2->1, at the mark: fires
	tq.Dequeue() // len goes 1->0, below the mark: fires

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatalf("low-water callback did not fire")
	}
}

func TestWaitForToneUnblocksOnEnqueue(t *testing.T) {
	tq := New(4, 1)
	done := make(chan struct{})
	go func() {
		tq.WaitForTone()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	_ = tq.Enqueue(Tone{})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("WaitForTone did not unblock after Enqueue")
	}
}

func TestWaitForToneQueueUnblocksWhenEmptied(t *testing.T) {
	tq := New(4, 1)
	_ = tq.Enqueue(Tone{})

	done := make(chan struct{})
	go func() {
		tq.WaitForToneQueue()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	tq.Dequeue()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("WaitForToneQueue did not unblock once queue emptied")
	}
}

func TestCapacityDefaultsWhenInvalid(t *testing.T) {
	tq := New(0, 0)
	if tq.Capacity() != DefaultCapacity {
		t.Fatalf("Capacity() = %d, want default %d", tq.Capacity(), DefaultCapacity)
	}
}
