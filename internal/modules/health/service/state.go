package service

import (
	"sync/atomic"
	"time"
)

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	scansTotal   atomic.Int64
	lastScanUnix atomic.Int64 // unix seconds
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

// TouchScan отмечает завершённый батч-скан.
func (s *State) TouchScan(t time.Time) {
	s.scansTotal.Add(1)
	s.lastScanUnix.Store(t.Unix())
}

func (s *State) ScansTotal() int64 { return s.scansTotal.Load() }

func (s *State) LastScan() time.Time {
	u := s.lastScanUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
