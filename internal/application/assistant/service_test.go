package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/intelligence/risk"
	"github.com/turtacn/warrify/internal/testutil"
	"github.com/turtacn/warrify/pkg/errors"
)

type fakeCompleter struct {
	mock.Mock
	configured bool
}

func (f *fakeCompleter) Configured() bool { return f.configured }

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := f.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type AssistantServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	products  *testutil.MockProductRepository
	completer *fakeCompleter
	caller    Caller
	items     []*warranty.Product
}

func (s *AssistantServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.products = new(testutil.MockProductRepository)
	s.completer = &fakeCompleter{configured: true}
	s.caller = Caller{ID: 1, Name: "Asha", Email: "asha@example.com"}
	s.items = []*warranty.Product{
		testutil.Product(10, 1, "iPhone 15 Pro", warranty.CategoryElectronics, "2025-06-15", 12, 129999),
	}
}

func (s *AssistantServiceTestSuite) newService(c Completer) Service {
	return NewService(Deps{
		Products:  s.products,
		Completer: c,
		Clock:     risk.FixedClock(warranty.MustParseDate("2026-05-25")),
		Logger:    testutil.NewMockLogger(),
	})
}

func (s *AssistantServiceTestSuite) TestEmptyMessage() {
	_, err := s.newService(s.completer).Chat(s.ctx, s.caller, "   ")
	s.True(errors.IsCode(err, errors.CodeInvalidParam))
	s.Contains(err.Error(), "Message is required")
}

func (s *AssistantServiceTestSuite) TestGeminiAnswer() {
	s.products.On("ListAll", s.ctx, int64(1)).Return(s.items, nil)
	s.completer.On("Complete", s.ctx, mock.MatchedBy(func(p string) bool {
		return containsAll(p, "Current user: Asha (asha@example.com)", "Today's date: 2026-05-25",
				"iPhone 15 Pro", "21 days left", "User message: is my phone covered?")
	})).Return("Yes, 21 days left.", nil)

	r, err := s.newService(s.completer).Chat(s.ctx, s.caller, "is my phone covered?")
	s.Require().NoError(err)
	s.Equal("Yes, 21 days left.", r.Response)
	s.Equal(SourceGemini, r.Source)
	s.completer.AssertExpectations(s.T())
}

func (s *AssistantServiceTestSuite) TestEmptyCompletionApologises() {
	s.products.On("ListAll", s.ctx, int64(1)).Return(s.items, nil)
	s.completer.On("Complete", s.ctx, mock.Anything).
		Return("", errors.New(errors.ErrCodeAIEmpty, "empty completion"))

	r, err := s.newService(s.completer).Chat(s.ctx, s.caller, "hello")
	s.Require().NoError(err)
	s.Equal(Apology, r.Response)
}

func (s *AssistantServiceTestSuite) TestUpstreamFailureFallsBack() {
	s.products.On("ListAll", s.ctx, int64(1)).Return(s.items, nil)
	s.completer.On("Complete", s.ctx, mock.Anything).
		Return("", errors.New(errors.ErrCodeAIUnavailable, "quota exceeded"))

	r, err := s.newService(s.completer).Chat(s.ctx, s.caller, "hello")
	s.Require().NoError(err)
	s.Equal(SourceFallback, r.Source)
	s.Contains(r.Response, "Hello, Asha!")
}

func (s *AssistantServiceTestSuite) TestUnconfiguredUsesFallback() {
	s.products.On("ListAll", s.ctx, int64(1)).Return(s.items, nil)
	s.completer.configured = false

	r, err := s.newService(s.completer).Chat(s.ctx, s.caller, "hello")
	s.Require().NoError(err)
	s.Equal(SourceFallback, r.Source)
	s.completer.AssertNotCalled(s.T(), "Complete", mock.Anything, mock.Anything)
}

func (s *AssistantServiceTestSuite) TestNilCompleter() {
	s.products.On("ListAll", s.ctx, int64(1)).Return(s.items, nil)

	r, err := s.newService(nil).Chat(s.ctx, s.caller, "hello")
	s.Require().NoError(err)
	s.Equal(SourceFallback, r.Source)
}

func (s *AssistantServiceTestSuite) TestProductLoadFailure() {
	s.products.On("ListAll", s.ctx, int64(1)).Return(nil, errors.New(errors.ErrCodeDatabaseError, "down"))

	_, err := s.newService(s.completer).Chat(s.ctx, s.caller, "hello")
	s.Error(err)
	s.Contains(err.Error(), "Assistant service unavailable")
}

func TestAssistantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssistantServiceTestSuite))
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
