// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package key

import "sync"

// ToneQueueKey mirrors the polarity of the most recently dequeued tone
// (§4.3). It exists so library-generated Morse produces the same
// callback/receiver observables as a physical key.
type ToneQueueKey struct {
	mu    sync.Mutex
	value KeyValue
}

// Value returns the last-dequeued tone polarity.
func (tk *ToneQueueKey) Value() KeyValue {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	return tk.value
}
