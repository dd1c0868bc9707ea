package reminder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/warrify/internal/application/notification"
	"github.com/turtacn/warrify/internal/config"
	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/database/redis"
	"github.com/turtacn/warrify/internal/intelligence/risk"
	"github.com/turtacn/warrify/internal/testutil"
	"github.com/turtacn/warrify/pkg/errors"
)

var today = warranty.MustParseDate("2026-05-25")

func onDate(s string) interface{} {
	want := warranty.MustParseDate(s)
	return mock.MatchedBy(func(d warranty.Date) bool { return d.Equal(want) })
}

type SchedulerTestSuite struct {
	suite.Suite
	ctx           context.Context
	products      *testutil.MockProductRepository
	users         *testutil.MockUserRepository
	notifications *testutil.MockNotificationRepository
	dispatcher    *testutil.MockDispatcher
	logger        *testutil.MockLogger
	scheduler     *Scheduler

	in30 *warranty.Product
	in7  *warranty.Product
	user *warranty.User
}

func (s *SchedulerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.products = new(testutil.MockProductRepository)
	s.users = new(testutil.MockUserRepository)
	s.notifications = new(testutil.MockNotificationRepository)
	s.dispatcher = new(testutil.MockDispatcher)
	s.logger = testutil.NewMockLogger()
	s.scheduler = s.newScheduler(nil)

	s.in30 = testutil.Product(1, 5, "Galaxy S24", warranty.CategoryElectronics, "2025-06-24", 12, 79999)
	s.in30.Brand = "Samsung"
	s.in7 = testutil.Product(2, 5, "Air Fryer", warranty.CategoryAppliances, "2025-06-01", 12, 6000)
	s.user = testutil.User(5, "Meera", "meera@example.com")
}

func (s *SchedulerTestSuite) newScheduler(locker redis.Locker) *Scheduler {
	sch := NewScheduler(Deps{
		Products:      s.products,
		Users:         s.users,
		Notifications: s.notifications,
		Recorder:      notification.NewRecorder(s.notifications, nil, nil, s.logger),
		Dispatcher:    s.dispatcher,
		Locker:        locker,
		Clock:         risk.FixedClock(today),
		Config:        config.ReminderConfig{Enabled: true, Schedule: "*/5 * * * *", TickTimeout: time.Minute},
		Logger:        s.logger,
	})
	sch.now = func() time.Time { return time.Date(2026, 5, 25, 9, 0, 0, 0, time.UTC) }
	return sch
}

func (s *SchedulerTestSuite) expectCandidates(in30, in7 []*warranty.Product) {
	s.products.On("ListExpiringOn", mock.Anything, onDate("2026-06-24")).Return(in30, nil).Once()
	s.products.On("ListExpiringOn", mock.Anything, onDate("2026-06-01")).Return(in7, nil).Once()
}

func (s *SchedulerTestSuite) TestRunOnce_SendsBothHorizonsInOrder() {
	s.expectCandidates([]*warranty.Product{s.in30}, []*warranty.Product{s.in7})
	s.notifications.On("Find", mock.Anything, mock.Anything, mock.Anything, warranty.NotificationSent).Return(nil, nil)
	s.users.On("GetByID", mock.Anything, int64(5)).Return(s.user, nil)
	s.dispatcher.On("Send", mock.Anything, "meera@example.com", mock.Anything, mock.Anything).Return(nil)
	s.notifications.On("Record", mock.Anything, mock.AnythingOfType("*warranty.Notification")).Return(nil)

	report, err := s.scheduler.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(&TickReport{Checked: 2, Sent: 2}, report)

	sends := callsTo(&s.dispatcher.Mock, "Send")
	s.Require().Len(sends, 2)
	s.Equal("⚠️ Warranty Expiring Soon: Galaxy S24", sends[0].Arguments.String(2))
	s.Contains(sends[0].Arguments.String(3), "Hi Meera,")
	s.Contains(sends[0].Arguments.String(3), "Galaxy S24 (Samsung, purchased 2025-06-24) warranty expires on 2026-06-24. You have 30 days left.")
	s.Contains(sends[1].Arguments.String(3), "Air Fryer (N/A, purchased 2025-06-01) warranty expires on 2026-06-01. You have 7 days left.")

	records := callsTo(&s.notifications.Mock, "Record")
	s.Require().Len(records, 2)
	first := records[0].Arguments.Get(1).(*warranty.Notification)
	s.Equal(warranty.NotificationReminder30, first.Type)
	s.Equal(warranty.NotificationSent, first.Status)
	s.Require().NotNil(first.SentAt)
	second := records[1].Arguments.Get(1).(*warranty.Notification)
	s.Equal(warranty.NotificationReminder7, second.Type)
}

func (s *SchedulerTestSuite) TestRunOnce_SkipsAlreadySent() {
	s.expectCandidates([]*warranty.Product{s.in30}, nil)
	s.notifications.On("Find", mock.Anything, int64(1), warranty.NotificationReminder30, warranty.NotificationSent).
		Return(&warranty.Notification{ID: 99, Status: warranty.NotificationSent}, nil)

	report, err := s.scheduler.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(&TickReport{Checked: 1, Skipped: 1}, report)
	s.dispatcher.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *SchedulerTestSuite) TestRunOnce_DispatchFailureIsRecorded() {
	s.expectCandidates(nil, []*warranty.Product{s.in7})
	s.notifications.On("Find", mock.Anything, int64(2), warranty.NotificationReminder7, warranty.NotificationSent).Return(nil, nil)
	s.users.On("GetByID", mock.Anything, int64(5)).Return(s.user, nil)
	s.dispatcher.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(fmt.Errorf("smtp: 421 try later"))
	s.notifications.On("Record", mock.Anything, mock.MatchedBy(func(n *warranty.Notification) bool {
		return n.Status == warranty.NotificationFailed && n.ErrorMessage == "smtp: 421 try later" && n.SentAt == nil
	})).Return(nil)

	report, err := s.scheduler.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(&TickReport{Checked: 1, Failed: 1}, report)
	s.notifications.AssertExpectations(s.T())
}

func (s *SchedulerTestSuite) TestRunOnce_ConcurrentDuplicateCountsAsSkipped() {
	s.expectCandidates([]*warranty.Product{s.in30}, nil)
	s.notifications.On("Find", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	s.users.On("GetByID", mock.Anything, int64(5)).Return(s.user, nil)
	s.dispatcher.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.notifications.On("Record", mock.Anything, mock.Anything).
		Return(errors.New(errors.ErrCodeNotificationDuplicate, "reminder already sent"))

	report, err := s.scheduler.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(&TickReport{Checked: 1, Skipped: 1}, report)
}

func (s *SchedulerTestSuite) TestRunOnce_OwnerMissing() {
	s.expectCandidates([]*warranty.Product{s.in30}, nil)
	s.notifications.On("Find", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	s.users.On("GetByID", mock.Anything, int64(5)).Return(nil, errors.New(errors.ErrCodeUserNotFound, "User not found"))

	report, err := s.scheduler.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, report.Failed)
	s.True(s.logger.HasMessage("error", "reminder owner lookup failed"))
}

func (s *SchedulerTestSuite) TestRunOnce_CandidateQueryFails() {
	s.products.On("ListExpiringOn", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("connection reset"))

	_, err := s.scheduler.RunOnce(s.ctx)
	s.Error(err)
	s.True(errors.IsCode(err, errors.ErrCodeDatabaseError))
}

func (s *SchedulerTestSuite) TestRunOnce_LockHeldElsewhere() {
	mr := miniredis.RunT(s.T())
	client := redis.NewClientWithRDB(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "test", nil)

	other := redis.NewMutex(client, LockName, time.Minute, nil)
	ok, err := other.TryLock(s.ctx)
	s.Require().NoError(err)
	s.Require().True(ok)

	report, err := s.newScheduler(redis.NewMutex(client, LockName, time.Minute, nil)).RunOnce(s.ctx)
	s.Require().NoError(err)
	s.True(report.LockHeld)
	s.products.AssertNotCalled(s.T(), "ListExpiringOn", mock.Anything, mock.Anything)
}

func (s *SchedulerTestSuite) TestRunOnce_ReleasesLock() {
	mr := miniredis.RunT(s.T())
	client := redis.NewClientWithRDB(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "test", nil)
	s.expectCandidates(nil, nil)

	report, err := s.newScheduler(redis.NewMutex(client, LockName, time.Minute, nil)).RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Zero(report.Checked)
	s.False(mr.Exists("test:lock:" + LockName))
}

func TestSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

func TestCronLogger(t *testing.T) {
	log := testutil.NewMockLogger()
	cl := CronLogger(log)

	cl.Info("wake", "now", "09:00")
	cl.Error(fmt.Errorf("boom"), "panic", "entry", 1)

	require.True(t, log.HasMessage("debug", "cron: wake"))
	assert.True(t, log.HasMessage("error", "cron: panic"))
}

func callsTo(m *mock.Mock, method string) []mock.Call {
	var out []mock.Call
	for _, c := range m.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}
