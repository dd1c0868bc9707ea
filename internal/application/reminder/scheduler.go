// Package reminder sends the 30 and 7 day warranty expiry reminders.
//
// A tick looks for products whose expiry is exactly 30 or 7 days away, skips
// any that already have a SENT reminder of that type, and mails the owner.
// Ticks are serialized in-process by cron and across processes by a redis
// mutex; the partial unique index on the notification log closes whatever
// race remains.
package reminder

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/turtacn/warrify/internal/application/notification"
	"github.com/turtacn/warrify/internal/config"
	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/database/redis"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/warrify/internal/infrastructure/notification/email"
	"github.com/turtacn/warrify/internal/intelligence/risk"
	"github.com/turtacn/warrify/pkg/errors"
)

// LockName is the redis mutex guarding a tick.
const LockName = "reminder-tick"

// horizons are processed in this order within a tick.
var horizons = []warranty.NotificationType{
	warranty.NotificationReminder30,
	warranty.NotificationReminder7,
}

// TickReport summarises one tick. Skipped counts candidates that already had
// a SENT reminder. LockHeld is set when another instance was mid-tick and
// nothing ran.
type TickReport struct {
	Checked  int  `json:"checked"`
	Sent     int  `json:"sent"`
	Failed   int  `json:"failed"`
	Skipped  int  `json:"skipped"`
	LockHeld bool `json:"lockHeld,omitempty"`
}

type Deps struct {
	Products      warranty.ProductRepository
	Users         warranty.UserRepository
	Notifications warranty.NotificationRepository
	Recorder      *notification.Recorder
	Dispatcher    email.Dispatcher
	// Locker may be nil when only one process runs the scheduler.
	Locker  redis.Locker
	Clock   risk.Clock
	Config  config.ReminderConfig
	Metrics *prometheus.AppMetrics
	Logger  logging.Logger
}

type Scheduler struct {
	products      warranty.ProductRepository
	users         warranty.UserRepository
	notifications warranty.NotificationRepository
	recorder      *notification.Recorder
	dispatcher    email.Dispatcher
	locker        redis.Locker
	clock         risk.Clock
	cfg           config.ReminderConfig
	metrics       *prometheus.AppMetrics
	logger        logging.Logger
	now           func() time.Time
}

func NewScheduler(d Deps) *Scheduler {
	if d.Clock == nil {
		d.Clock = risk.SystemClock{}
	}
	if d.Logger == nil {
		d.Logger = logging.NewNopLogger()
	}
	if d.Config.Schedule == "" {
		d.Config.Schedule = config.DefaultReminderSchedule
	}
	if d.Config.TickTimeout <= 0 {
		d.Config.TickTimeout = config.DefaultReminderLockTTL
	}
	return &Scheduler{
		products:      d.Products,
		users:         d.Users,
		notifications: d.Notifications,
		recorder:      d.Recorder,
		dispatcher:    d.Dispatcher,
		locker:        d.Locker,
		clock:         d.Clock,
		cfg:           d.Config,
		metrics:       d.Metrics,
		logger:        d.Logger.Named("reminder"),
		now:           time.Now,
	}
}

// Start runs RunOnce on the configured schedule until ctx is done, then waits
// for a running tick to finish.
func (s *Scheduler) Start(ctx context.Context) error {
	cl := CronLogger(s.logger)
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := c.AddFunc(s.cfg.Schedule, func() {
		if _, err := s.RunOnce(ctx); err != nil {
			s.logger.Error("reminder tick failed", logging.Err(err))
		}
	}); err != nil {
		return errors.Wrap(err, errors.ErrCodeValidation, "invalid reminder schedule")
	}

	c.Start()
	s.logger.Info("reminder scheduler started", logging.String("schedule", s.cfg.Schedule))
	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("reminder scheduler stopped")
	return nil
}

// RunOnce performs a single tick.
func (s *Scheduler) RunOnce(ctx context.Context) (*TickReport, error) {
	start := time.Now()
	report := &TickReport{}

	if s.locker != nil {
		ok, err := s.locker.TryLock(ctx)
		if err != nil {
			prometheus.RecordReminderTick(s.metrics, "failed", time.Since(start))
			return report, err
		}
		if !ok {
			report.LockHeld = true
			prometheus.RecordReminderTick(s.metrics, "skipped", 0)
			s.logger.Debug("reminder tick skipped, lock held elsewhere")
			return report, nil
		}
		defer func() {
			if err := s.locker.Unlock(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("reminder lock release failed", logging.Err(err))
			}
		}()
	}

	tickCtx, cancel := context.WithTimeout(ctx, s.cfg.TickTimeout)
	defer cancel()

	today := s.clock.Today()
	for _, t := range horizons {
		due := today.AddDays(t.ReminderDays())
		candidates, err := s.products.ListExpiringOn(tickCtx, due)
		if err != nil {
			prometheus.RecordReminderTick(s.metrics, "failed", time.Since(start))
			return report, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load reminder candidates")
		}
		for _, p := range candidates {
			report.Checked++
			s.remind(tickCtx, p, t, report)
		}
	}

	prometheus.RecordReminderTick(s.metrics, "completed", time.Since(start))
	s.logger.Info("reminder tick completed",
		logging.String("today", today.String()),
		logging.Int("checked", report.Checked),
		logging.Int("sent", report.Sent),
		logging.Int("failed", report.Failed),
		logging.Int("skipped", report.Skipped),
		logging.Duration("elapsed", time.Since(start)))
	return report, nil
}

func (s *Scheduler) remind(ctx context.Context, p *warranty.Product, t warranty.NotificationType, report *TickReport) {
	log := s.logger.With(logging.Int64("product_id", p.ID), logging.String("type", string(t)))

	prior, err := s.notifications.Find(ctx, p.ID, t, warranty.NotificationSent)
	if err != nil {
		report.Failed++
		prometheus.RecordReminder(s.metrics, string(t), "failed")
		log.Error("reminder lookup failed", logging.Err(err))
		return
	}
	if prior != nil {
		report.Skipped++
		prometheus.RecordReminder(s.metrics, string(t), "duplicate")
		return
	}

	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		report.Failed++
		prometheus.RecordReminder(s.metrics, string(t), "failed")
		log.Error("reminder owner lookup failed", logging.Int64("user_id", p.UserID), logging.Err(err))
		return
	}

	sendErr := s.dispatcher.Send(ctx, user.Email,
		notification.ReminderSubject(p),
		notification.ReminderBody(user.Name, p, t.ReminderDays()))

	var entry *warranty.Notification
	if sendErr != nil {
		entry = warranty.NewFailed(p.UserID, p.ID, t, sendErr)
	} else {
		entry = warranty.NewSent(p.UserID, p.ID, t, s.now())
	}

	if err := s.recorder.Record(ctx, entry, user.Email); err != nil {
		if errors.IsCode(err, errors.ErrCodeNotificationDuplicate) {
			report.Skipped++
			prometheus.RecordReminder(s.metrics, string(t), "duplicate")
			log.Warn("reminder already recorded by a concurrent tick")
			return
		}
		log.Error("reminder not recorded", logging.Err(err))
	}

	if sendErr != nil {
		report.Failed++
		prometheus.RecordReminder(s.metrics, string(t), "failed")
		log.Warn("reminder dispatch failed", logging.Err(sendErr))
		return
	}
	report.Sent++
	prometheus.RecordReminder(s.metrics, string(t), "sent")
}
