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

// Package passivation defines the strategies deciding when an idle aggregate
// process is deactivated. Deactivation is transparent: the next command
// reactivates the identity from its snapshot.
package passivation

import (
	"fmt"
	"time"
)

// Strategy determines when a resident aggregate process should be
// passivated.
type Strategy interface {
	fmt.Stringer
	Name() string
}

// TimeBasedStrategy passivates a process after a period of inactivity.
type TimeBasedStrategy struct {
	timeout time.Duration
}

var _ Strategy = (*TimeBasedStrategy)(nil)

// NewTimeBasedStrategy creates a strategy that passivates a process once it
// has not handled a command for the given duration.
func NewTimeBasedStrategy(timeout time.Duration) *TimeBasedStrategy {
	return &TimeBasedStrategy{timeout: timeout}
}

// Timeout returns the configured inactivity duration.
func (s *TimeBasedStrategy) Timeout() time.Duration {
	return s.timeout
}

// String returns the string representation of the strategy.
func (s *TimeBasedStrategy) String() string {
	return fmt.Sprintf("TimeBased(timeout=%s)", s.timeout)
}

// Name returns the name of the strategy.
func (s *TimeBasedStrategy) Name() string {
	return "TimeBased"
}

// MessagesCountBasedStrategy passivates a process after it has handled a
// fixed number of commands.
type MessagesCountBasedStrategy struct {
	maxMessages int
}

var _ Strategy = (*MessagesCountBasedStrategy)(nil)

// NewMessageCountBasedStrategy creates a strategy that passivates a process
// after maxMessages handled commands.
func NewMessageCountBasedStrategy(maxMessages int) *MessagesCountBasedStrategy {
	return &MessagesCountBasedStrategy{maxMessages: maxMessages}
}

// MaxMessages returns the configured command threshold.
func (s *MessagesCountBasedStrategy) MaxMessages() int {
	return s.maxMessages
}

// String returns the string representation of the strategy.
func (s *MessagesCountBasedStrategy) String() string {
	return fmt.Sprintf("MessagesCountBased(max=%d)", s.maxMessages)
}

// Name returns the name of the strategy.
func (s *MessagesCountBasedStrategy) Name() string {
	return "MessagesCountBased"
}

// LongLivedStrategy never passivates. Processes stay resident until the
// runtime stops or the identity is evicted.
type LongLivedStrategy struct{}

var _ Strategy = (*LongLivedStrategy)(nil)

// NewLongLivedStrategy creates a strategy that keeps processes resident
// indefinitely.
func NewLongLivedStrategy() *LongLivedStrategy {
	return &LongLivedStrategy{}
}

// String returns the string representation of the strategy.
func (s *LongLivedStrategy) String() string {
	return "LongLived"
}

// Name returns the name of the strategy.
func (s *LongLivedStrategy) Name() string {
	return "LongLived"
}
