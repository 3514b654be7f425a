package resumesrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/fsx"
	"github.com/Abraxas-365/resumeforge/pkg/logx"
)

// Sweeper deletes files older than a TTL from one storage area.
type Sweeper struct {
	name     string
	fs       fsx.FileSystem
	ttl      time.Duration
	interval time.Duration
	match    func(name string) bool
	now      func() time.Time
}

type SweeperOption func(*Sweeper)

// WithMatch limits sweeping to names accepted by match.
func WithMatch(match func(name string) bool) SweeperOption {
	return func(s *Sweeper) { s.match = match }
}

func WithClock(now func() time.Time) SweeperOption {
	return func(s *Sweeper) { s.now = now }
}

func NewSweeper(name string, fs fsx.FileSystem, ttl, interval time.Duration, opts ...SweeperOption) *Sweeper {
	s := &Sweeper{
		name:     name,
		fs:       fs,
		ttl:      ttl,
		interval: interval,
		match:    func(string) bool { return true },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sweep deletes expired files once and returns how many were removed.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	files, err := s.fs.List(ctx, "")
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for _, f := range files {
		if f.IsDir || !s.match(f.Name) || !f.ModTime.Before(cutoff) {
			continue
		}
		if err := s.fs.DeleteFile(ctx, f.Name); err != nil {
			logx.WithError(err).WithFields(logx.Fields{"area": s.name, "file": f.Name}).Warn("Failed to delete expired file")
			continue
		}
		removed++
	}
	return removed, nil
}

// Run sweeps every interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				logx.WithError(err).WithField("area", s.name).Warn("Sweep failed")
				continue
			}
			if n > 0 {
				logx.WithFields(logx.Fields{"area": s.name, "removed": n}).Info("Expired files removed")
			}
		}
	}
}
