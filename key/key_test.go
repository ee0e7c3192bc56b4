// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package key

import "testing"

type recordingReceiver struct {
	begins int
	ends   int
	syncs  int
}

func (r *recordingReceiver) MarkBegin(t Timestamp) error { r.begins++; return nil }
func (r *recordingReceiver) MarkEnd(t Timestamp) error   { r.ends++; return nil }
func (r *recordingReceiver) SyncParameters() error       { r.syncs++; return nil }

func TestTKSetValueFiresReceiverOnEdgesOnly(t *testing.T) {
	k := NewKey()
	rec := &recordingReceiver{}
	k.RegisterReceiver(rec)

	if err := k.TKSetValue(Closed); err != nil {
		t.Fatalf("TKSetValue(Closed): %v", err)
	}
	if err := k.TKSetValue(Closed); err != nil {
		t.Fatalf("repeat TKSetValue(Closed): %v", err)
	}
	if rec.begins != 1 {
		t.Fatalf("MarkBegin calls = %d, want 1", rec.begins)
	}

	if err := k.TKSetValue(Open); err != nil {
		t.Fatalf("TKSetValue(Open): %v", err)
	}
	if rec.ends != 1 {
		t.Fatalf("MarkEnd calls = %d, want 1", rec.ends)
	}
	if k.TKGetValue() != Open {
		t.Fatalf("TKGetValue() = %v, want Open", k.TKGetValue())
	}
}

func TestKeyingCallbackFiresForEverySubMachine(t *testing.T) {
	k := NewKey()
	var calls []KeyValue
	k.RegisterKeyingCallback(func(t Timestamp, v KeyValue, arg interface{}) {
		calls = append(calls, v)
	}, nil)

	_ = k.SKNotifyEvent(Closed)
	_ = k.TKSetValue(Closed)

	if len(calls) != 2 {
		t.Fatalf("callback fired %d times, want 2 (%v)", len(calls), calls)
	}
	for _, v := range calls {
		if v != Closed {
			t.Fatalf("callback value = %v, want Closed", v)
		}
	}
}

func TestLegacyKeyingCallbackFiresAlongsideModern(t *testing.T) {
	k := NewKey()
	var modern, legacyCalls int
	k.RegisterKeyingCallback(func(Timestamp, KeyValue, interface{}) { modern++ }, nil)
	k.RegisterLegacyKeyingCallback(func(arg interface{}, v KeyValue) { legacyCalls++ }, nil)

	_ = k.SKNotifyEvent(Closed)

	if modern != 1 || legacyCalls != 1 {
		t.Fatalf("modern=%d legacy=%d, want 1 and 1", modern, legacyCalls)
	}
}

func TestCloseSeversBindings(t *testing.T) {
	k := NewKey()
	gen := &recordingGenerator{}
	rec := &recordingReceiver{}
	k.RegisterGenerator(gen)
	k.RegisterReceiver(rec)

	k.Close()

	if err := k.SKNotifyEvent(Closed); err != nil {
		t.Fatalf("SKNotifyEvent after Close: %v", err)
	}
	if gen.marks != 0 {
		t.Fatalf("generator invoked after Close")
	}
	if err := k.TKSetValue(Closed); err != nil {
		t.Fatalf("TKSetValue after Close: %v", err)
	}
	if rec.begins != 0 {
		t.Fatalf("receiver invoked after Close")
	}
}

func TestTimestampAddCarries(t *testing.T) {
	ts := Timestamp{Sec: 1, Usec: 900_000}
	got := ts.Add(200_000)
	want := Timestamp{Sec: 2, Usec: 100_000}
	if got != want {
		t.Fatalf("Add carried wrong: got %+v, want %+v", got, want)
	}
}
