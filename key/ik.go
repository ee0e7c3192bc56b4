// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package key

import "sync"

// IkState is one of the nine states of the iambic-keyer graph. It
// decomposes into (Phase, Mark, Mode) for every state but Idle, which sits
// outside that product.
type IkState int

const (
	Idle IkState = iota
	InDotA
	InDashA
	AfterDotA
	AfterDashA
	InDotB
	InDashB
	AfterDotB
	AfterDashB
)

func (s IkState) String() string {
	switch s {
	case Idle:
		return "idle"
	case InDotA:
		return "in-dot-a"
	case InDashA:
		return "in-dash-a"
	case AfterDotA:
		return "after-dot-a"
	case AfterDashA:
		return "after-dash-a"
	case InDotB:
		return "in-dot-b"
	case InDashB:
		return "in-dash-b"
	case AfterDotB:
		return "after-dot-b"
	case AfterDashB:
		return "after-dash-b"
	default:
		return "unknown"
	}
}

// inPhase reports whether s is one of the InDot*/InDash* states, i.e. a
// mark is currently being sent.
func (s IkState) inPhase() bool {
	switch s {
	case InDotA, InDashA, InDotB, InDashB:
		return true
	default:
		return false
	}
}

// Paddles records which of the two iambic paddle contacts are presently
// held closed. Mutated only by paddle-event calls.
type Paddles struct {
	DotPressed  bool
	DashPressed bool
}

// Latches records per-paddle memory bits plus the Curtis-B squeeze-release
// marker. See IambicKeyer for the rules governing when each is set and
// cleared.
type Latches struct {
	DotLatch     bool
	DashLatch    bool
	CurtisBLatch bool
}

// IambicKeyer is the nine-state iambic paddle keyer sub-state-machine
// (§4.2). Orchestration that needs the owning Key's timer, callback or
// Generator binding lives on Key; this type holds only the sub-machine's
// own fields and the concurrency primitives guarding them.
type IambicKeyer struct {
	// reentry is a try-lock-only guard: it is never held across a
	// blocking wait, only used to refuse concurrent ikUpdateGraph calls.
	// It is not a general-purpose mutex. See §5 / §9.
	reentry sync.Mutex

	// mu guards every field below against concurrent paddle events,
	// graph updates and getters. cond is broadcast on every graph_state
	// change so IKWaitForElement/IKWaitForKeyer (and IKWaitForKeyer's
	// paddle check) observe it under the same lock.
	mu   sync.Mutex
	cond *sync.Cond

	state       IkState
	value       KeyValue
	paddles     Paddles
	latches     Latches
	curtisBMode bool
}

// tryEnter attempts to acquire the re-entrancy guard. It reports false if
// another call already holds it.
func (ik *IambicKeyer) tryEnter() bool {
	return ik.reentry.TryLock()
}

func (ik *IambicKeyer) exit() {
	ik.reentry.Unlock()
}

// State returns the current graph state.
func (ik *IambicKeyer) State() IkState {
	ik.mu.Lock()
	defer ik.mu.Unlock()
	return ik.state
}

// Value returns the current key value (Closed while sending a mark).
func (ik *IambicKeyer) Value() KeyValue {
	ik.mu.Lock()
	defer ik.mu.Unlock()
	return ik.value
}

// IsBusy is equivalent to Value() == Closed.
func (ik *IambicKeyer) IsBusy() bool {
	return ik.Value() == Closed
}

// Paddles returns the last-recorded paddle states.
func (ik *IambicKeyer) Paddles() Paddles {
	ik.mu.Lock()
	defer ik.mu.Unlock()
	return ik.paddles
}

// Latches returns the dot/dash paddle latches.
func (ik *IambicKeyer) Latches() (dotLatch, dashLatch bool) {
	ik.mu.Lock()
	defer ik.mu.Unlock()
	return ik.latches.DotLatch, ik.latches.DashLatch
}

// CurtisB reports whether Curtis mode B is enabled.
func (ik *IambicKeyer) CurtisB() bool {
	ik.mu.Lock()
	defer ik.mu.Unlock()
	return ik.curtisBMode
}
