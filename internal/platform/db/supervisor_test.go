package db

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakePinger struct {
	healthy atomic.Bool
	pings   atomic.Int32
}

func (f *fakePinger) Ping(_ context.Context) error {
	f.pings.Add(1)
	if f.healthy.Load() {
		return nil
	}
	return fmt.Errorf("connection refused")
}

func newTestSupervisor(p *fakePinger) *Supervisor {
	return NewSupervisor(p, zerolog.Nop(), 10*time.Millisecond, 10*time.Millisecond)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSupervisor_StartsConnected(t *testing.T) {
	p := &fakePinger{}
	p.healthy.Store(true)
	s := newTestSupervisor(p)
	s.Start()
	defer s.Stop()

	if !s.Connected() {
		t.Error("expected connected state after Start")
	}
}

func TestSupervisor_ReportFailureTriggersReconnect(t *testing.T) {
	p := &fakePinger{}
	s := newTestSupervisor(p)
	s.Start()
	defer s.Stop()

	s.ReportFailure(fmt.Errorf("connection lost"))
	if s.Connected() {
		t.Error("expected disconnected state after failure report")
	}

	// At least one reconnect attempt within the retry delay.
	waitFor(t, func() bool { return p.pings.Load() >= 1 })

	p.healthy.Store(true)
	waitFor(t, s.Connected)
}

func TestSupervisor_LivenessDetectsLostConnection(t *testing.T) {
	p := &fakePinger{}
	p.healthy.Store(true)
	s := newTestSupervisor(p)
	s.Start()
	defer s.Stop()

	p.healthy.Store(false)
	waitFor(t, func() bool { return !s.Connected() })

	p.healthy.Store(true)
	waitFor(t, s.Connected)
}

func TestSupervisor_RetryNotDuplicated(t *testing.T) {
	p := &fakePinger{}
	s := newTestSupervisor(p)
	s.Start()
	defer s.Stop()

	// Fire both triggers; only one retry loop may run.
	s.ReportFailure(fmt.Errorf("lost"))
	s.ReportFailure(fmt.Errorf("lost again"))
	if !s.retrying.Load() {
		t.Error("expected a retry loop in flight")
	}

	p.healthy.Store(true)
	waitFor(t, s.Connected)
	waitFor(t, func() bool { return !s.retrying.Load() })
}

func TestSupervisor_StopTerminatesRetry(t *testing.T) {
	p := &fakePinger{}
	s := newTestSupervisor(p)
	s.Start()
	s.ReportFailure(fmt.Errorf("lost"))
	s.Stop() // must not hang on the never-healing pinger

	if s.Connected() {
		t.Error("expected disconnected state after Stop")
	}
}

func TestState_String(t *testing.T) {
	if StateConnected.String() != "connected" {
		t.Errorf("unexpected string: %s", StateConnected)
	}
	if StateDisconnected.String() != "disconnected" {
		t.Errorf("unexpected string: %s", StateDisconnected)
	}
}
