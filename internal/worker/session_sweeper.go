package worker

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// IdleSessionExpirer marks sessions whose last activity is older than the
// cutoff as expired.
type IdleSessionExpirer interface {
	ExpireIdleBefore(cutoff time.Time) (int64, error)
}

// SessionSweeper periodically expires idle sessions in the database so the
// session table matches what the cache TTL already enforced.
type SessionSweeper struct {
	sessions IdleSessionExpirer
	timeout  time.Duration
	interval time.Duration
	log      *logrus.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSessionSweeper(sessions IdleSessionExpirer, timeout, interval time.Duration, log *logrus.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionSweeper{
		sessions: sessions,
		timeout:  timeout,
		interval: interval,
		log:      log,
	}
}

func (s *SessionSweeper) Start(ctx context.Context) {
	if s.cancel != nil {
		return
	}

	sweeperCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-sweeperCtx.Done():
				return
			case <-ticker.C:
				expired, err := s.sessions.ExpireIdleBefore(time.Now().Add(-s.timeout))
				if err != nil {
					s.log.WithError(err).Error("expire idle sessions failed")
					continue
				}
				if expired > 0 {
					s.log.WithField("expired", expired).Info("expired idle sessions")
				}
			}
		}
	}()
}

func (s *SessionSweeper) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}
