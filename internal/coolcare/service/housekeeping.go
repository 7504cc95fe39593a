package service

import (
	"context"
	"log/slog"
	"time"
)

// HousekeepingService purges expired verification codes on a schedule.
type HousekeepingService struct {
	Verification *VerificationService
	Logger       *slog.Logger
	Interval     time.Duration

	loop loop
}

// NewHousekeepingService defaults a non-positive interval to one hour.
func NewHousekeepingService(v *VerificationService, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Verification: v,
		Logger:       logger,
		Interval:     interval,
		loop:         newLoop(),
	}
}

// Start purges once immediately and then every Interval until Stop.
func (s *HousekeepingService) Start() {
	s.loop.start(s.Interval, true, func() { s.Cleanup(context.Background()) })
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

func (s *HousekeepingService) Stop() {
	s.loop.stop()
	s.Logger.Info("housekeeping service stopped")
}

// Cleanup runs one purge and returns how many codes it removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	n, err := s.Verification.PurgeExpired(ctx)
	if err != nil {
		s.Logger.Error("failed to delete expired verification codes", "error", err)
		return 0
	}
	if n > 0 {
		s.Logger.Info("expired verification codes deleted", "count", n)
	}
	return n
}
