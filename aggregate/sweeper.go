/*
 * MIT License
 *
 * Copyright (c) 2024-2026 Holon Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package aggregate

import (
	"container/heap"
	"sync"
	"time"

	"github.com/holonhq/holon/log"
)

// passivationParticipant is what the sweeper needs from a resident process.
type passivationParticipant interface {
	passivationID() string
	passivationLatestActivity() time.Time
	tryPassivate() bool
	deactivate()
}

type sweeperEntry struct {
	participant passivationParticipant
	deadline    time.Time
	index       int
}

type entryHeap []*sweeperEntry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].deadline.Before(h[j].deadline) }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *entryHeap) Push(x any)         { e := x.(*sweeperEntry); e.index = len(*h); *h = append(*h, e) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// sweeper deactivates idle processes. One coordinator goroutine sleeps until
// the earliest deadline in a min-heap, re-checks the actual activity of the
// process due and either passivates it or pushes the deadline forward.
// Deadlines in the heap are hints; the source of truth is the process's own
// latest-activity clock, so the hot path never has to touch the heap.
type sweeper struct {
	timeout      time.Duration
	onPassivated func(passivationParticipant)
	logger       log.Logger

	mu      sync.Mutex
	heap    entryHeap
	entries map[string]*sweeperEntry

	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

func newSweeper(timeout time.Duration, onPassivated func(passivationParticipant), logger log.Logger) *sweeper {
	return &sweeper{
		timeout:      timeout,
		onPassivated: onPassivated,
		logger:       logger,
		entries:      make(map[string]*sweeperEntry),
		wake:         make(chan struct{}, 1),
		done:         make(chan struct{}),
		stopped:      make(chan struct{}),
	}
}

func (s *sweeper) Start() {
	go s.run()
}

func (s *sweeper) Stop() {
	close(s.done)
	<-s.stopped
}

// Track registers a process for passivation or pushes its deadline forward.
func (s *sweeper) Track(p passivationParticipant) {
	id := p.passivationID()
	deadline := time.Now().Add(s.timeout)

	s.mu.Lock()
	if entry, ok := s.entries[id]; ok {
		entry.deadline = deadline
		heap.Fix(&s.heap, entry.index)
	} else {
		entry := &sweeperEntry{participant: p, deadline: deadline}
		heap.Push(&s.heap, entry)
		s.entries[id] = entry
	}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Untrack removes a process from the sweeper, e.g. on eviction.
func (s *sweeper) Untrack(id string) {
	s.mu.Lock()
	if entry, ok := s.entries[id]; ok {
		heap.Remove(&s.heap, entry.index)
		delete(s.entries, id)
	}
	s.mu.Unlock()
}

func (s *sweeper) run() {
	defer close(s.stopped)

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		s.mu.Lock()
		var wait time.Duration
		idleHeap := len(s.heap) == 0
		if !idleHeap {
			wait = time.Until(s.heap[0].deadline)
		}
		s.mu.Unlock()

		if idleHeap {
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}

		if wait <= 0 {
			s.sweep()
			continue
		}

		timer.Reset(wait)
		select {
		case <-timer.C:
			s.sweep()
		case <-s.wake:
			if !timer.Stop() {
				<-timer.C
			}
		case <-s.done:
			if !timer.Stop() {
				<-timer.C
			}
			return
		}
	}
}

// sweep pops every due entry. A process whose real idle window has not yet
// elapsed, or that is busy, is rescheduled instead of passivated.
func (s *sweeper) sweep() {
	now := time.Now()
	var victims []passivationParticipant

	s.mu.Lock()
	for len(s.heap) > 0 {
		entry := s.heap[0]
		if entry.deadline.After(now) {
			break
		}

		due := entry.participant.passivationLatestActivity().Add(s.timeout)
		if due.After(now) {
			entry.deadline = due
			heap.Fix(&s.heap, 0)
			continue
		}

		if entry.participant.tryPassivate() {
			heap.Pop(&s.heap)
			delete(s.entries, entry.participant.passivationID())
			victims = append(victims, entry.participant)
			continue
		}

		// busy right now; try again after a full idle window
		entry.deadline = now.Add(s.timeout)
		heap.Fix(&s.heap, 0)
	}
	s.mu.Unlock()

	for _, victim := range victims {
		s.logger.Debugf("passivating idle aggregate %s", victim.passivationID())
		s.onPassivated(victim)
	}
}
