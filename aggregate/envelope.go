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
	"context"
	"sync"
)

// commandResult is the success reply of one command.
type commandResult struct {
	response any
	events   []Event
}

// envelope carries one command through a process mailbox together with the
// channels the caller waits on. Envelopes are pooled; the processing loop
// releases them after the reply has been sent. Reply channels are buffered
// with capacity one so a late reply never blocks the loop when the caller
// already gave up.
type envelope struct {
	ctx          context.Context
	callerTenant string
	identity     Identity
	cmd          Command
	result       chan *commandResult
	err          chan error
	synchronous  bool
}

var envelopePool = sync.Pool{
	New: func() any { return new(envelope) },
}

func getEnvelope() *envelope {
	return envelopePool.Get().(*envelope)
}

func releaseEnvelope(env *envelope) {
	env.reset()
	envelopePool.Put(env)
}

// build sets the fields for one command execution.
func (env *envelope) build(ctx context.Context, callerTenant string, id Identity, cmd Command, synchronous bool) *envelope {
	env.ctx = ctx
	env.callerTenant = callerTenant
	env.identity = id
	env.cmd = cmd
	env.synchronous = synchronous
	env.err = make(chan error, 1)
	if synchronous {
		env.result = make(chan *commandResult, 1)
	}
	return env
}

// respond releases the success reply to the caller.
func (env *envelope) respond(result *commandResult) {
	if env.synchronous {
		env.result <- result
		close(env.result)
	}
	close(env.err)
}

// fail releases a failure reply to the caller.
func (env *envelope) fail(err error) {
	env.err <- err
	close(env.err)
}

func (env *envelope) reset() {
	env.ctx = nil
	env.callerTenant = ""
	env.identity = Identity{}
	env.cmd = nil
	env.result = nil
	env.err = nil
	env.synchronous = false
}
