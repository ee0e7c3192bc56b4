// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package key implements the Morse keyer subsystem: the straight-key,
// iambic-paddle and tone-queue sub-state-machines bound together in a
// single Key value, plus its optional Generator and Receiver bindings.
package key

import (
	"errors"
	"sync"
	"time"

	"github.com/hamkit/gocw/cwerr"
)

// Generator is the contract Key needs from its sound generator: enqueuing
// tones and silencing the output. The concrete *generator.Generator type
// in package generator implements this interface structurally.
type Generator interface {
	EnqueueBeginMark() error
	EnqueueBeginSpace() error
	EnqueuePartialSymbol(s Symbol) error
	Silence() error
}

// Receiver is the contract Key needs from a timing receiver: edge
// timestamps for the tone-queue-driven (logical) key path.
type Receiver interface {
	MarkBegin(t Timestamp) error
	MarkEnd(t Timestamp) error
	SyncParameters() error
}

// KeyingCallback is fired on every observed key-value transition.
type KeyingCallback func(t Timestamp, value KeyValue, arg interface{})

// LegacyKeyingCallback is the historical (arg, value)-only signature.
type LegacyKeyingCallback func(arg interface{}, value KeyValue)

// Key owns the three sub-state-machines plus the bindings and callback
// registered against them. The zero value is not usable; construct with
// NewKey.
type Key struct {
	mu sync.Mutex // guards timer + callback/generator/receiver bindings

	sk StraightKey
	ik IambicKeyer
	tk ToneQueueKey

	timer Timestamp

	callback       KeyingCallback
	callbackArg    interface{}
	legacyCallback LegacyKeyingCallback
	legacyArg      interface{}

	gen Generator
	rec Receiver
}

// NewKey returns a Key in the blank state described by spec §3: every
// KeyValue Open, IK at Idle, no latches, Curtis-B disabled, no bindings.
func NewKey() *Key {
	k := &Key{}
	k.ik.cond = sync.NewCond(&k.ik.mu)
	return k
}

// Close severs the Generator and Receiver bindings. It does not flush any
// tone queue the Generator owns.
func (k *Key) Close() {
	k.mu.Lock()
	k.gen = nil
	k.rec = nil
	k.mu.Unlock()
}

// RegisterGenerator binds a Generator to this Key. Binding is one-shot in
// spirit (spec §3): a later call simply replaces the previous binding.
func (k *Key) RegisterGenerator(gen Generator) {
	k.mu.Lock()
	k.gen = gen
	k.mu.Unlock()
}

// RegisterReceiver binds a Receiver to this Key.
func (k *Key) RegisterReceiver(rec Receiver) {
	k.mu.Lock()
	k.rec = rec
	k.mu.Unlock()
}

// RegisterKeyingCallback registers the (timer, value, arg) callback fired
// on every observed transition of any of the three sub-machines.
func (k *Key) RegisterKeyingCallback(fn KeyingCallback, arg interface{}) {
	k.mu.Lock()
	k.callback = fn
	k.callbackArg = arg
	k.mu.Unlock()
}

// RegisterLegacyKeyingCallback registers the historical (arg, value)
// callback signature, fired alongside the modern one if both are set.
func (k *Key) RegisterLegacyKeyingCallback(fn LegacyKeyingCallback, arg interface{}) {
	k.mu.Lock()
	k.legacyCallback = fn
	k.legacyArg = arg
	k.mu.Unlock()
}

// Timer returns the last-recognised edge timestamp.
func (k *Key) Timer() Timestamp {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.timer
}

func (k *Key) generator() Generator {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.gen
}

func (k *Key) receiver() Receiver {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.rec
}

// refreshTimer snapshots the monotonic clock and stores it as the Key's
// logical "now", per spec §5's atomic-snapshot-then-store rule for
// straight-key and paddle-event timestamps.
func (k *Key) refreshTimer() Timestamp {
	t := nowTimestamp()
	k.mu.Lock()
	k.timer = t
	k.mu.Unlock()
	return t
}

// clockEpoch anchors nowTimestamp to Go's monotonic clock; readings are
// the time elapsed since package initialisation.
var clockEpoch = time.Now()

func nowTimestamp() Timestamp {
	d := time.Since(clockEpoch)
	return Timestamp{Sec: int64(d / time.Second), Usec: int64((d % time.Second) / time.Microsecond)}
}

// fireCallback invokes whichever keying callbacks are registered, outside
// of any internal lock, so a callback is free to call back into Key.
func (k *Key) fireCallback(t Timestamp, v KeyValue) {
	k.mu.Lock()
	cb := k.callback
	arg := k.callbackArg
	legacyCb := k.legacyCallback
	legacyArg := k.legacyArg
	k.mu.Unlock()

	if cb != nil {
		cb(t, v, arg)
	}
	if legacyCb != nil {
		legacyCb(legacyArg, v)
	}
}

///////////////////////////////////////////////////////////////////////////
// Straight key (§4.1)

// SKNotifyEvent updates the straight key's value, firing the keying
// callback and driving the Generator exactly once per observed change.
func (k *Key) SKNotifyEvent(v KeyValue) error {
	k.sk.mu.Lock()
	changed := k.sk.value != v
	if changed {
		k.sk.value = v
	}
	k.sk.mu.Unlock()
	if !changed {
		return nil
	}

	t := k.refreshTimer()
	k.fireCallback(t, v)

	gen := k.generator()
	if gen == nil {
		return nil
	}
	if v == Closed {
		return gen.EnqueueBeginMark()
	}
	return gen.EnqueueBeginSpace()
}

// SKGetValue returns the last-accepted straight-key value.
func (k *Key) SKGetValue() KeyValue { return k.sk.Value() }

// SKIsBusy is a synonym for SKGetValue() == Closed.
func (k *Key) SKIsBusy() bool { return k.sk.IsBusy() }

// SKReset forces the straight key Open and silences the Generator. It is
// infallible.
func (k *Key) SKReset() {
	k.sk.mu.Lock()
	k.sk.value = Open
	k.sk.mu.Unlock()
	if gen := k.generator(); gen != nil {
		_ = gen.Silence()
	}
}

///////////////////////////////////////////////////////////////////////////
// Tone-queue key (§4.3)

// TKSetValue is called by the Generator's dequeue step with the polarity
// of the tone just dequeued.
func (k *Key) TKSetValue(v KeyValue) error {
	k.tk.mu.Lock()
	changed := k.tk.value != v
	if changed {
		k.tk.value = v
	}
	k.tk.mu.Unlock()
	if !changed {
		return nil
	}

	t := k.refreshTimer()

	var recErr error
	if rec := k.receiver(); rec != nil {
		if v == Closed {
			recErr = rec.MarkBegin(t)
		} else {
			recErr = rec.MarkEnd(t)
		}
	}
	k.fireCallback(t, v)
	return recErr
}

// TKGetValue returns the polarity of the most recently dequeued tone.
func (k *Key) TKGetValue() KeyValue { return k.tk.Value() }

///////////////////////////////////////////////////////////////////////////
// Iambic keyer (§4.2)

// IKEnableCurtisB enables Curtis mode B.
func (k *Key) IKEnableCurtisB() {
	k.ik.mu.Lock()
	k.ik.curtisBMode = true
	k.ik.mu.Unlock()
}

// IKDisableCurtisB enables Curtis mode A (disables mode B).
func (k *Key) IKDisableCurtisB() {
	k.ik.mu.Lock()
	k.ik.curtisBMode = false
	k.ik.mu.Unlock()
}

// IKGetCurtisB reports whether Curtis mode B is enabled.
func (k *Key) IKGetCurtisB() bool { return k.ik.CurtisB() }

// IKGetPaddles returns the last-recorded paddle states.
func (k *Key) IKGetPaddles() (dot, dash bool) {
	p := k.ik.Paddles()
	return p.DotPressed, p.DashPressed
}

// IKGetPaddleLatches returns the dot/dash paddle latches.
func (k *Key) IKGetPaddleLatches() (dotLatch, dashLatch bool) {
	return k.ik.Latches()
}

// IKIsBusy is equivalent to the IK key value being Closed.
func (k *Key) IKIsBusy() bool { return k.ik.IsBusy() }

// IKNotifyDotPaddleEvent notifies a change of the dot paddle only.
func (k *Key) IKNotifyDotPaddleEvent(dot bool) error {
	_, dash := k.IKGetPaddles()
	return k.IKNotifyPaddleEvent(dot, dash)
}

// IKNotifyDashPaddleEvent notifies a change of the dash paddle only.
func (k *Key) IKNotifyDashPaddleEvent(dash bool) error {
	dot, _ := k.IKGetPaddles()
	return k.IKNotifyPaddleEvent(dot, dash)
}

// IKNotifyPaddleEvent records new paddle states, arms latches, and — if
// the keyer is at rest — fires the initial impulse that starts sending.
func (k *Key) IKNotifyPaddleEvent(dot, dash bool) error {
	ik := &k.ik
	ik.mu.Lock()
	prevDot, prevDash := ik.paddles.DotPressed, ik.paddles.DashPressed
	ik.paddles.DotPressed, ik.paddles.DashPressed = dot, dash

	if dot && !prevDot {
		ik.latches.DotLatch = true
	}
	if dash && !prevDash {
		ik.latches.DashLatch = true
	}

	// Curtis-B trailing element is armed while both paddles are held
	// closed (§4.2 step 3), not at release: the oppLatch branch in
	// ikLeaveAfterState only consumes it while the squeeze is still
	// live, before release clears the ordinary latches.
	if ik.curtisBMode && dot && dash {
		ik.latches.CurtisBLatch = true
	}

	atIdle := ik.state == Idle
	ik.cond.Broadcast()
	ik.mu.Unlock()

	if !atIdle {
		return nil
	}
	k.refreshTimer()
	return k.ikUpdateStateInitial(dot, dash)
}

// ikUpdateStateInitial handles the first impulse out of Idle (§4.2).
func (k *Key) ikUpdateStateInitial(dot, dash bool) error {
	if !dot && !dash {
		return nil
	}
	ik := &k.ik
	ik.mu.Lock()
	curtisB := ik.latches.CurtisBLatch
	switch {
	case dot && !dash:
		ik.state = pretendAfterState(SymbolDash, curtisB)
	case dash && !dot:
		ik.state = pretendAfterState(SymbolDot, curtisB)
	default:
		// Both pressed: deterministic dot-first bias (spec §9 open question).
		ik.state = pretendAfterState(SymbolDash, curtisB)
	}
	ik.mu.Unlock()

	err := k.IKUpdateGraphState()
	if errors.Is(err, cwerr.ErrReEntered) {
		time.Sleep(time.Millisecond)
		err = k.IKUpdateGraphState()
	}
	return err
}

// pretendAfterState returns the After-state of justSent's own family
// (AfterDash* for SymbolDash, AfterDot* for SymbolDot; the B variant when
// curtisB is set), i.e. the state the graph should behave as if it had
// just finished, to make the normal After-state logic pick up the paddle that
// was actually pressed as "the opposite latch".
func pretendAfterState(justSent Symbol, curtisB bool) IkState {
	if justSent == SymbolDash {
		if curtisB {
			return AfterDashB
		}
		return AfterDashA
	}
	if curtisB {
		return AfterDotB
	}
	return AfterDotA
}

// IKUpdateGraphState advances the iambic-keyer graph by one transition. It
// is called both by the Generator thread after every dequeued tone and,
// via ikUpdateStateInitial, by the calling thread's first paddle impulse.
// It refuses re-entry rather than blocking.
func (k *Key) IKUpdateGraphState() error {
	ik := &k.ik
	if !ik.tryEnter() {
		return cwerr.ErrReEntered
	}
	defer ik.exit()

	ik.mu.Lock()
	state := ik.state
	ik.mu.Unlock()

	if state == Idle {
		return nil
	}
	if state.inPhase() {
		return k.ikLeaveInPhase(state)
	}
	return k.ikLeaveAfterState(state)
}

// ikLeaveInPhase handles rule 2 of §4.2: leaving an In* state opens the
// key for the mandatory inter-element space and lands in the matching
// After* state.
func (k *Key) ikLeaveInPhase(state IkState) error {
	ik := &k.ik
	ik.mu.Lock()
	if ik.value != Closed {
		ik.mu.Unlock()
		return nil
	}
	ik.mu.Unlock()

	var next IkState
	switch state {
	case InDotA:
		next = AfterDotA
	case InDashA:
		next = AfterDashA
	case InDotB:
		next = AfterDotB
	default: // InDashB
		next = AfterDashB
	}

	err := k.ikSetValue(Open, SymbolSpace)

	ik.mu.Lock()
	ik.state = next
	ik.cond.Broadcast()
	ik.mu.Unlock()
	return err
}

// ikLeaveAfterState handles rule 3 of §4.2: deciding whether to repeat,
// alternate, send a Curtis-B trailing element, or return to Idle.
func (k *Key) ikLeaveAfterState(state IkState) error {
	ik := &k.ik
	ik.mu.Lock()
	if ik.value != Open {
		ik.mu.Unlock()
		return nil
	}

	if !ik.paddles.DotPressed {
		ik.latches.DotLatch = false
	}
	if !ik.paddles.DashPressed {
		ik.latches.DashLatch = false
	}

	if state == AfterDotB || state == AfterDashB {
		var sym Symbol
		var next IkState
		if state == AfterDotB {
			sym, next = SymbolDash, InDashA
		} else {
			sym, next = SymbolDot, InDotA
		}
		ik.mu.Unlock()
		err := k.ikSetValue(Closed, sym)
		ik.mu.Lock()
		ik.state = next
		ik.cond.Broadcast()
		ik.mu.Unlock()
		return err
	}

	var sameLatch, oppLatch *bool
	var sameSym, oppSym Symbol
	var sameNext, oppNextA, oppNextB IkState
	if state == AfterDotA {
		sameLatch, oppLatch = &ik.latches.DotLatch, &ik.latches.DashLatch
		sameSym, oppSym = SymbolDot, SymbolDash
		sameNext, oppNextA, oppNextB = InDotA, InDashA, InDashB
	} else {
		sameLatch, oppLatch = &ik.latches.DashLatch, &ik.latches.DotLatch
		sameSym, oppSym = SymbolDash, SymbolDot
		sameNext, oppNextA, oppNextB = InDashA, InDotA, InDotB
	}

	switch {
	case *oppLatch:
		sym := oppSym
		var next IkState
		if ik.latches.CurtisBLatch {
			ik.latches.CurtisBLatch = false
			next = oppNextB
		} else {
			next = oppNextA
		}
		ik.mu.Unlock()
		err := k.ikSetValue(Closed, sym)
		ik.mu.Lock()
		ik.state = next
		ik.cond.Broadcast()
		ik.mu.Unlock()
		return err

	case *sameLatch:
		sym, next := sameSym, sameNext
		ik.latches.CurtisBLatch = false
		ik.mu.Unlock()
		err := k.ikSetValue(Closed, sym)
		ik.mu.Lock()
		ik.state = next
		ik.cond.Broadcast()
		ik.mu.Unlock()
		return err

	default:
		ik.latches.CurtisBLatch = false
		ik.state = Idle
		ik.cond.Broadcast()
		ik.mu.Unlock()
		return nil
	}
}

// ikSetValue is §4.2's ik_set_value: updates the IK key value if it
// changed, fires the keying callback, and enqueues the partial symbol.
func (k *Key) ikSetValue(newValue KeyValue, sym Symbol) error {
	ik := &k.ik
	ik.mu.Lock()
	if ik.value == newValue {
		ik.mu.Unlock()
		return nil
	}
	ik.value = newValue
	ik.mu.Unlock()

	t := k.refreshTimer()
	k.fireCallback(t, newValue)

	gen := k.generator()
	if gen == nil {
		return nil
	}
	return gen.EnqueuePartialSymbol(sym)
}

// IKIncrementTimer adds us microseconds to the Key's timer. It is a no-op
// when the IK is Idle or when called on a nil Key (the Generator may run
// unbound).
func (k *Key) IKIncrementTimer(us uint32) {
	if k == nil {
		return
	}
	k.ik.mu.Lock()
	idle := k.ik.state == Idle
	k.ik.mu.Unlock()
	if idle {
		return
	}
	k.mu.Lock()
	k.timer = k.timer.Add(us)
	k.mu.Unlock()
}

// IKWaitForElement blocks until the keyer leaves the element currently
// in flight, then blocks again until it starts the next one (or reaches
// Idle).
func (k *Key) IKWaitForElement() error {
	ik := &k.ik
	ik.mu.Lock()
	defer ik.mu.Unlock()
	for ik.state.inPhase() {
		ik.cond.Wait()
	}
	for !ik.state.inPhase() && ik.state != Idle {
		ik.cond.Wait()
	}
	return nil
}

// IKWaitForKeyer blocks until the keyer reaches Idle. It fails fast with
// ErrDeadlockLikely if a paddle is held, since the keyer would never idle.
func (k *Key) IKWaitForKeyer() error {
	ik := &k.ik
	ik.mu.Lock()
	defer ik.mu.Unlock()
	for ik.state != Idle {
		if ik.paddles.DotPressed || ik.paddles.DashPressed {
			return cwerr.ErrDeadlockLikely
		}
		ik.cond.Wait()
	}
	return nil
}

// IKReset forces the iambic keyer to Idle, clears paddles, latches and
// Curtis-B mode, and silences the Generator. It is infallible.
func (k *Key) IKReset() {
	ik := &k.ik
	ik.mu.Lock()
	ik.state = Idle
	ik.value = Open
	ik.paddles = Paddles{}
	ik.latches = Latches{}
	ik.curtisBMode = false
	ik.cond.Broadcast()
	ik.mu.Unlock()

	if gen := k.generator(); gen != nil {
		_ = gen.Silence()
	}
}
