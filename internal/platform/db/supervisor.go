package db

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// State describes the supervisor's view of the database connection.
type State int32

const (
	StateDisconnected State = iota
	StateConnected
)

func (s State) String() string {
	if s == StateConnected {
		return "connected"
	}
	return "disconnected"
}

// Pinger is the connection liveness probe. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Supervisor tracks connection health for a shared pool. A periodic liveness
// ping and error reports from request handlers both feed the same retry
// sequence; an in-flight flag ensures only one retry loop runs at a time, so
// overlapping triggers collapse into a single reconnect attempt.
type Supervisor struct {
	pinger         Pinger
	logger         zerolog.Logger
	retryDelay     time.Duration
	livenessPeriod time.Duration
	pingTimeout    time.Duration

	state    atomic.Int32
	retrying atomic.Bool

	stopOnce sync.Once
	stop     chan struct{}
	wg       sync.WaitGroup
}

func NewSupervisor(pinger Pinger, logger zerolog.Logger, retryDelay, livenessPeriod time.Duration) *Supervisor {
	s := &Supervisor{
		pinger:         pinger,
		logger:         logger,
		retryDelay:     retryDelay,
		livenessPeriod: livenessPeriod,
		pingTimeout:    5 * time.Second,
		stop:           make(chan struct{}),
	}
	s.state.Store(int32(StateDisconnected))
	return s
}

// Start marks the connection healthy and launches the liveness loop.
// Call after the pool's initial ping has succeeded.
func (s *Supervisor) Start() {
	s.state.Store(int32(StateConnected))
	s.wg.Add(1)
	go s.livenessLoop()
}

// Stop terminates the liveness loop and any in-flight retry sequence.
func (s *Supervisor) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()
}

func (s *Supervisor) State() State {
	return State(s.state.Load())
}

func (s *Supervisor) Connected() bool {
	return s.State() == StateConnected
}

// ReportFailure records a connectivity error observed mid-request and
// triggers the retry sequence. Safe to call from any goroutine.
func (s *Supervisor) ReportFailure(err error) {
	s.logger.Warn().Err(err).Msg("database connection failure reported")
	s.state.Store(int32(StateDisconnected))
	s.triggerRetry()
}

func (s *Supervisor) livenessLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.livenessPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if err := s.ping(); err != nil {
				s.logger.Warn().Err(err).Msg("liveness check failed")
				s.state.Store(int32(StateDisconnected))
				s.triggerRetry()
			}
		}
	}
}

// triggerRetry starts the retry loop unless one is already running.
func (s *Supervisor) triggerRetry() {
	if !s.retrying.CompareAndSwap(false, true) {
		return
	}
	s.wg.Add(1)
	go s.retryLoop()
}

func (s *Supervisor) retryLoop() {
	defer s.wg.Done()
	defer s.retrying.Store(false)

	for {
		if err := s.ping(); err == nil {
			s.state.Store(int32(StateConnected))
			s.logger.Info().Msg("database connection restored")
			return
		} else {
			s.logger.Warn().Err(err).Dur("retry_in", s.retryDelay).Msg("reconnect attempt failed")
		}

		select {
		case <-s.stop:
			return
		case <-time.After(s.retryDelay):
		}
	}
}

func (s *Supervisor) ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.pingTimeout)
	defer cancel()
	return s.pinger.Ping(ctx)
}
