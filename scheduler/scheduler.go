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

// Package scheduler delivers commands to aggregates at a future time.
// Delivery goes through the normal runtime path, so scheduled commands get
// the same tenant guard, FIFO ordering and commit protocol as direct ones.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	"github.com/holonhq/holon/aggregate"
	herrors "github.com/holonhq/holon/errors"
	"github.com/holonhq/holon/log"
)

// Dispatcher submits a command without waiting for the outcome. The
// aggregate runtime satisfies this interface.
type Dispatcher interface {
	ExecuteAsync(ctx context.Context, callerTenant string, id aggregate.Identity, cmd aggregate.Command) error
}

const defaultStopTimeout = 3 * time.Second

// Scheduler queues commands for future delivery.
type Scheduler struct {
	mu sync.Mutex

	quartzScheduler quartz.Scheduler
	dispatcher      Dispatcher
	logger          log.Logger
	stopTimeout     time.Duration
	started         *atomic.Bool
}

// New creates a scheduler dispatching through the given dispatcher.
func New(dispatcher Dispatcher, logger log.Logger) *Scheduler {
	// quartz logs through its own logger; keep it off and log here instead
	quartzScheduler, _ := quartz.NewStdScheduler(
		quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))

	return &Scheduler{
		quartzScheduler: quartzScheduler,
		dispatcher:      dispatcher,
		logger:          logger,
		stopTimeout:     defaultStopTimeout,
		started:         atomic.NewBool(false),
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quartzScheduler.Start(ctx)
	s.started.Store(s.quartzScheduler.IsStarted())
	s.logger.Infof("command scheduler started")
}

// Stop clears pending jobs and waits for running ones to finish.
func (s *Scheduler) Stop(ctx context.Context) {
	if !s.started.Load() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.quartzScheduler.Clear()
	s.quartzScheduler.Stop()
	s.started.Store(s.quartzScheduler.IsStarted())

	ctx, cancel := context.WithTimeout(ctx, s.stopTimeout)
	defer cancel()
	s.quartzScheduler.Wait(ctx)
	s.logger.Infof("command scheduler stopped")
}

// ScheduleOnce delivers the command once after the given delay.
func (s *Scheduler) ScheduleOnce(callerTenant string, id aggregate.Identity, cmd aggregate.Command, delay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started.Load() {
		return herrors.ErrSchedulerNotStarted
	}

	detail := quartz.NewJobDetail(s.newJob(callerTenant, id, cmd), quartz.NewJobKey(uuid.NewString()))
	return s.quartzScheduler.ScheduleJob(detail, quartz.NewRunOnceTrigger(delay))
}

// Schedule delivers the command repeatedly at the given interval.
func (s *Scheduler) Schedule(callerTenant string, id aggregate.Identity, cmd aggregate.Command, interval time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started.Load() {
		return herrors.ErrSchedulerNotStarted
	}

	detail := quartz.NewJobDetail(s.newJob(callerTenant, id, cmd), quartz.NewJobKey(uuid.NewString()))
	return s.quartzScheduler.ScheduleJob(detail, quartz.NewSimpleTrigger(interval))
}

// ScheduleWithCron delivers the command on a cron expression in the given
// location. A nil location means UTC.
func (s *Scheduler) ScheduleWithCron(callerTenant string, id aggregate.Identity, cmd aggregate.Command, expression string, location *time.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started.Load() {
		return herrors.ErrSchedulerNotStarted
	}

	if location == nil {
		location = time.UTC
	}
	trigger, err := quartz.NewCronTriggerWithLoc(expression, location)
	if err != nil {
		return err
	}

	detail := quartz.NewJobDetail(s.newJob(callerTenant, id, cmd), quartz.NewJobKey(uuid.NewString()))
	return s.quartzScheduler.ScheduleJob(detail, trigger)
}

func (s *Scheduler) newJob(callerTenant string, id aggregate.Identity, cmd aggregate.Command) quartz.Job {
	return job.NewFunctionJob[bool](
		func(ctx context.Context) (bool, error) {
			if err := s.dispatcher.ExecuteAsync(ctx, callerTenant, id, cmd); err != nil {
				s.logger.Errorf("scheduled command %s for %s failed: %v", cmd.CommandName(), id.String(), err)
				return false, err
			}
			return true, nil
		})
}
