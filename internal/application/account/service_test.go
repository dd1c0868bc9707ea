package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/testutil"
	"github.com/turtacn/warrify/pkg/errors"
)

type AccountServiceTestSuite struct {
	suite.Suite
	ctx           context.Context
	users         *testutil.MockUserRepository
	products      *testutil.MockProductRepository
	notifications *testutil.MockNotificationRepository
	service       Service
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = new(testutil.MockUserRepository)
	s.products = new(testutil.MockProductRepository)
	s.notifications = new(testutil.MockNotificationRepository)
	s.service = NewService(s.users, s.products, s.notifications, testutil.NewMockLogger())
}

func (s *AccountServiceTestSuite) TearDownTest() {
	s.users.AssertExpectations(s.T())
	s.products.AssertExpectations(s.T())
	s.notifications.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestProfile() {
	s.users.On("GetByID", s.ctx, int64(7)).Return(testutil.User(7, "Asha", "asha@example.com"), nil)
	s.products.On("CountByUser", s.ctx, int64(7)).Return(int64(4), nil)
	s.notifications.On("CountByUser", s.ctx, int64(7)).Return(int64(9), nil)

	p, err := s.service.Profile(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal("Asha", p.Name)
	s.Equal(warranty.DefaultCity, p.City)
	s.Equal(int64(4), p.ProductCount)
	s.Equal(int64(9), p.NotificationCount)
}

func (s *AccountServiceTestSuite) TestProfile_UserMissing() {
	s.users.On("GetByID", s.ctx, int64(7)).Return(nil, errors.NotFound("no rows"))

	_, err := s.service.Profile(s.ctx, 7)
	s.True(errors.IsCode(err, errors.ErrCodeUserNotFound))
	s.Contains(err.Error(), "User not found")
}

func (s *AccountServiceTestSuite) TestUpdateProfile_TrimsName() {
	name, city := "  Ravi ", "Pune"
	updated := testutil.User(7, "Ravi", "r@example.com")
	updated.City = city
	s.users.On("UpdateProfile", s.ctx, int64(7), mock.MatchedBy(func(p warranty.ProfilePatch) bool {
		return p.Name != nil && *p.Name == "Ravi" && p.City != nil && *p.City == "Pune"
	})).Return(updated, nil)

	u, err := s.service.UpdateProfile(s.ctx, 7, warranty.ProfilePatch{Name: &name, City: &city})
	s.Require().NoError(err)
	s.Equal("Pune", u.City)
}

func (s *AccountServiceTestSuite) TestUpdateProfile_BlankName() {
	blank := "   "
	_, err := s.service.UpdateProfile(s.ctx, 7, warranty.ProfilePatch{Name: &blank})
	s.Error(err)
	s.users.AssertNotCalled(s.T(), "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestStats() {
	s.users.On("Count", s.ctx).Return(int64(3), nil)
	s.products.On("Count", s.ctx).Return(int64(5), nil)
	s.notifications.On("Count", s.ctx).Return(int64(11), nil)
	s.products.On("CategoryCounts", s.ctx).Return(map[warranty.Category]int64{
		warranty.CategoryElectronics: 2,
		warranty.CategoryAppliances:  1,
		warranty.CategoryOther:       2,
	}, nil)

	st, err := s.service.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), st.TotalUsers)
	s.Equal(int64(5), st.TotalProducts)
	s.Equal(int64(11), st.TotalNotifications)
	s.Equal("41.0", st.EWasteSavedKg)
	s.Equal("139.4", st.CO2SavedKg)
	s.Equal(PlatformVersion, st.PlatformVersion)
	s.NotEmpty(st.TechStack)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func TestEWasteKg(t *testing.T) {
	assert.Zero(t, EWasteKg(nil))
	kg := EWasteKg(map[warranty.Category]int64{
		warranty.CategoryVehicle:     1,
		warranty.CategoryFurniture:   2,
		warranty.CategoryAccessories: 1,
	})
	require.InDelta(t, 150.5, kg, 1e-9)
}
