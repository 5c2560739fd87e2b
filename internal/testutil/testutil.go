// Package testutil holds deterministic collaborators for package tests.
package testutil

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/blizon/ops-dashboard/internal/repository"
	"github.com/blizon/ops-dashboard/internal/seed"
	"github.com/blizon/ops-dashboard/internal/service"
)

// SequentialIDs hands out prefix1, prefix2, ... per prefix
type SequentialIDs struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{counts: make(map[string]int)}
}

func (g *SequentialIDs) Generate(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counts[prefix]++
	return fmt.Sprintf("%s-new%d", prefix, g.counts[prefix])
}

// FakeClock fires scheduled callbacks only when Advance moves past them
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *FakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

var _ service.Clock = (*FakeClock)(nil)

func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) service.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and runs every due callback in order
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.f()
	}
}

// Scheduled returns the number of timers neither fired nor stopped
func (c *FakeClock) Scheduled() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// SeededStore returns a store holding the sample dataset
func SeededStore() *repository.Store {
	return repository.NewStore(seed.Default())
}
