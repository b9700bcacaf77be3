// Package scheduler owns hourly reminder scheduling and missed-hour
// reconciliation. The store is the single source of truth: missed hours are
// recomputed from it on every check, so the result stays correct across
// process restarts, sleep/wake cycles and clock changes.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/julianstephens/accountable/internal/constants"
	"github.com/julianstephens/accountable/internal/hours"
	"github.com/julianstephens/accountable/internal/logger"
)

// ActivityStore is the slice of the storage layer the scheduling core
// depends on.
type ActivityStore interface {
	HasActivityForHour(hour time.Time) (bool, error)
	AddActivity(hour time.Time, text string) error
	LastActivityHour() (time.Time, bool, error)
}

// ChangeFunc is invoked with the new missed-hours count whenever it differs
// from the previously emitted count.
type ChangeFunc func(count int)

// ReminderFunc presents a reminder surface for the given missed hours and
// returns when the user has dealt with it (or dismissed it).
type ReminderFunc func(missed []time.Time)

type Scheduler struct {
	store ActivityStore
	now   func() time.Time

	mu                sync.Mutex
	initialized       bool
	lastRecorded      time.Time
	hasLastRecorded   bool
	missedCount       int
	reminderActive    bool
	reminderWindowMin int
	onChange          ChangeFunc
}

func New(store ActivityStore) *Scheduler {
	return &Scheduler{
		store:             store,
		now:               time.Now,
		reminderWindowMin: constants.ReminderWindowMin,
	}
}

// OnMissedHoursChanged registers the change-notification hook. Only one
// handler is supported; the UI layer binds here.
func (s *Scheduler) OnMissedHoursChanged(fn ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// SetReminderWindow overrides how many minutes past the top of the hour an
// unforced check may still surface a reminder.
func (s *Scheduler) SetReminderWindow(minutes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if minutes > 0 {
		s.reminderWindowMin = minutes
	}
}

// Initialize loads the last recorded hour from the store, computes the
// initial missed-hour count and emits it unconditionally.
func (s *Scheduler) Initialize() {
	s.refreshLastRecorded()
	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()

	missed := s.computeMissed()
	s.mu.Lock()
	s.missedCount = len(missed)
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(len(missed))
	}
}

// MissedHours returns the ordered (oldest first) hour slots with no stored
// activity, inclusive of the current hour. Idempotent: calling it twice with
// no intervening writes yields identical results. Store read errors degrade
// to safe defaults and are logged, never propagated.
func (s *Scheduler) MissedHours() []time.Time {
	s.mu.Lock()
	ready := s.initialized
	s.mu.Unlock()
	if !ready {
		s.Initialize()
	}

	missed := s.computeMissed()
	s.emitIfChanged(len(missed))
	return missed
}

// MissedHoursCount returns the count from the most recent computation. It is
// advisory only; MissedHours recomputes from the store.
func (s *Scheduler) MissedHoursCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.missedCount
}

// RecordActivity writes text for every given hour slot and then recomputes
// the missed set. Hours need not be contiguous or sorted; duplicates are
// harmless. This is the only write path into the store from the scheduling
// core, and write errors propagate: a failed write leaves the hour missing,
// and the next check offers it again.
func (s *Scheduler) RecordActivity(hourSlots []time.Time, text string) error {
	for _, h := range hourSlots {
		if err := s.store.AddActivity(hours.Floor(h), text); err != nil {
			return err
		}
	}

	s.mu.Lock()
	for _, h := range hourSlots {
		slot := hours.Floor(h)
		if !s.hasLastRecorded || slot.After(s.lastRecorded) {
			s.lastRecorded = slot
			s.hasLastRecorded = true
		}
	}
	s.mu.Unlock()

	s.Refresh()
	return nil
}

// Refresh re-reads the last recorded hour from the store, recomputes the
// missed set and emits a change notification if the count moved.
func (s *Scheduler) Refresh() {
	s.refreshLastRecorded()
	missed := s.computeMissed()
	s.emitIfChanged(len(missed))
}

// BeginReminder claims the single reminder surface. It returns false when a
// reminder is already showing; at most one may be active at a time.
func (s *Scheduler) BeginReminder() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reminderActive {
		return false
	}
	s.reminderActive = true
	return true
}

// EndReminder releases the reminder surface and refreshes state, regardless
// of whether the user submitted or dismissed.
func (s *Scheduler) EndReminder() {
	s.mu.Lock()
	s.reminderActive = false
	s.mu.Unlock()
	s.Refresh()
}

// ReminderActive reports whether a reminder surface is currently showing.
func (s *Scheduler) ReminderActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reminderActive
}

// Run drives the reminder loop until the context is cancelled. Two timers
// trigger checks: a fixed-interval ticker, and a self-rescheduling timer
// aligned to the top of every hour which always forces a check.
func (s *Scheduler) Run(ctx context.Context, remind ReminderFunc) {
	s.Initialize()

	// Offer any missed hours immediately on startup.
	s.Check(true, remind)

	ticker := time.NewTicker(constants.CheckIntervalSec * time.Second)
	defer ticker.Stop()

	hourTimer := time.NewTimer(s.untilNextHour())
	defer hourTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(false, remind)
		case <-hourTimer.C:
			hourTimer.Reset(s.untilNextHour())
			s.Check(true, remind)
		}
	}
}

// Check runs one reminder check. Unforced checks only surface a reminder
// within the first few minutes of the hour; forced checks (hour boundary,
// startup, explicit user request) skip that gate. While a reminder is
// showing, checks are no-ops.
func (s *Scheduler) Check(force bool, remind ReminderFunc) {
	if s.ReminderActive() {
		return
	}

	missed := s.MissedHours()
	if len(missed) == 0 {
		return
	}
	if !force && !s.inReminderWindow() {
		return
	}

	if !s.BeginReminder() {
		return
	}
	defer s.EndReminder()
	remind(missed)
}

func (s *Scheduler) refreshLastRecorded() {
	last, ok, err := s.store.LastActivityHour()
	if err != nil {
		logger.Error("Failed to read last activity hour", "error", err)
		return
	}
	s.mu.Lock()
	s.lastRecorded = last
	s.hasLastRecorded = ok
	s.mu.Unlock()
}

// computeMissed is the reconciler: a read-only projection over store state
// and the current wall-clock time. The scan starts after the last recorded
// hour known to this process; every slot in the window is checked against
// the store individually, so entries written by another process still count.
func (s *Scheduler) computeMissed() []time.Time {
	now := s.now()
	current := hours.Floor(now)

	s.mu.Lock()
	last, hasLast := s.lastRecorded, s.hasLastRecorded
	s.mu.Unlock()

	var start time.Time
	if hasLast {
		start = last.Add(time.Hour)
	} else {
		start = hours.DayStart(now)
	}

	// The current hour is included even though it has not fully elapsed:
	// the user may record it proactively.
	var missed []time.Time
	for _, h := range hours.Between(start, current) {
		has, err := s.store.HasActivityForHour(h)
		if err != nil {
			logger.Error("Failed to check activity for hour", "hour", h, "error", err)
			has = false
		}
		if !has {
			missed = append(missed, h)
		}
	}

	return missed
}

func (s *Scheduler) emitIfChanged(count int) {
	s.mu.Lock()
	changed := count != s.missedCount
	s.missedCount = count
	fn := s.onChange
	s.mu.Unlock()

	if changed && fn != nil {
		fn(count)
	}
}

// untilNextHour returns the wall-clock delta to the next :00, with a one
// second safety margin so the realigning timer cannot fire twice for the
// same boundary.
func (s *Scheduler) untilNextHour() time.Duration {
	now := s.now()
	next := hours.Floor(now).Add(time.Hour)
	d := next.Sub(now)
	if d <= time.Second {
		d += time.Hour
	}
	return d
}

func (s *Scheduler) inReminderWindow() bool {
	s.mu.Lock()
	window := s.reminderWindowMin
	s.mu.Unlock()
	return s.now().Minute() < window
}
