package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/database/postgres"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/pkg/errors"
)

var notificationCols = []string{
	"id", "user_id", "product_id", "product_name", "type", "status", "scheduled_for", "sent_at", "error_message",
}

type NotificationRepoTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	db   *sql.DB
	repo warranty.NotificationRepository
	ctx  context.Context
}

func (s *NotificationRepoTestSuite) SetupTest() {
	var err error
	s.db, s.mock, err = sqlmock.New()
	s.Require().NoError(err)

	log := logging.NewNopLogger()
	s.repo = NewPostgresNotificationRepo(postgres.NewConnectionWithDB(s.db, log), log)
	s.ctx = context.Background()
}

func (s *NotificationRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.db.Close()
}

func (s *NotificationRepoTestSuite) TestRecord_Sent() {
	now := time.Date(2026, 5, 25, 9, 0, 0, 0, time.UTC)
	n := warranty.NewSent(7, 11, warranty.NotificationReminder30, now)

	s.mock.ExpectQuery("INSERT INTO notifications").
		WithArgs(int64(7), int64(11), "30_DAY", "SENT", nil, now, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(41)))

	s.Require().NoError(s.repo.Record(s.ctx, n))
	s.Equal(int64(41), n.ID)
}

func (s *NotificationRepoTestSuite) TestRecord_Failed() {
	n := warranty.NewFailed(7, 11, warranty.NotificationReminder7, stderrors.New("smtp down"))

	s.mock.ExpectQuery("INSERT INTO notifications").
		WithArgs(int64(7), int64(11), "7_DAY", "FAILED", nil, nil, "smtp down").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	s.NoError(s.repo.Record(s.ctx, n))
}

func (s *NotificationRepoTestSuite) TestRecord_DuplicateReminder() {
	s.mock.ExpectQuery("INSERT INTO notifications").
		WillReturnError(&pq.Error{Code: "23505", Constraint: postgres.ReminderUniqueIndex})

	err := s.repo.Record(s.ctx, warranty.NewSent(7, 11, warranty.NotificationReminder30, time.Now()))
	s.True(errors.IsCode(err, errors.ErrCodeNotificationDuplicate))
}

func (s *NotificationRepoTestSuite) TestFind_None() {
	s.mock.ExpectQuery("WHERE n.product_id = \\$1 AND n.type = \\$2 AND n.status = \\$3").
		WithArgs(int64(11), "30_DAY", "SENT").
		WillReturnRows(sqlmock.NewRows(notificationCols))

	n, err := s.repo.Find(s.ctx, 11, warranty.NotificationReminder30, warranty.NotificationSent)
	s.NoError(err)
	s.Nil(n)
}

func (s *NotificationRepoTestSuite) TestFind_Existing() {
	sent := time.Date(2026, 5, 25, 9, 0, 0, 0, time.UTC)
	s.mock.ExpectQuery("FROM notifications n LEFT JOIN products p").
		WithArgs(int64(11), "7_DAY", "SENT").
		WillReturnRows(sqlmock.NewRows(notificationCols).
			AddRow(int64(41), int64(7), int64(11), "LG Washing Machine", "7_DAY", "SENT", nil, sent, ""))

	n, err := s.repo.Find(s.ctx, 11, warranty.NotificationReminder7, warranty.NotificationSent)
	s.Require().NoError(err)
	s.Require().NotNil(n)
	s.Equal(warranty.NotificationReminder7, n.Type)
	s.Equal("LG Washing Machine", n.ProductName)
	s.Nil(n.ScheduledFor)
	s.Require().NotNil(n.SentAt)
	s.True(sent.Equal(*n.SentAt))
}

func (s *NotificationRepoTestSuite) TestListByUser_DefaultLimit() {
	sent := time.Now()
	s.mock.ExpectQuery("ORDER BY n.sent_at DESC NULLS LAST, n.id DESC LIMIT \\$2").
		WithArgs(int64(7), DefaultNotificationLimit).
		WillReturnRows(sqlmock.NewRows(notificationCols).
			AddRow(int64(2), int64(7), int64(11), "LG Washing Machine", "TEST", "SENT", nil, sent, "").
			AddRow(int64(1), int64(7), int64(11), "LG Washing Machine", "PRODUCT_ADDED", "SENT", nil, sent, ""))

	got, err := s.repo.ListByUser(s.ctx, 7, 0)
	s.Require().NoError(err)
	s.Len(got, 2)
	s.Equal(warranty.NotificationTest, got[0].Type)
}

func (s *NotificationRepoTestSuite) TestCounts() {
	s.mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM notifications$").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(9)))
	s.mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM notifications WHERE user_id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	total, err := s.repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(9), total)

	mine, err := s.repo.CountByUser(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal(int64(4), mine)
}

func TestNotificationRepoTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationRepoTestSuite))
}
