package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/warrify/pkg/errors"
)

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"product not found", errors.ErrCodeProductNotFound, "Product not found"},
		{"invalid param", errors.CodeInvalidParam, "Missing required fields"},
		{"rate limit", errors.CodeRateLimit, "Too many requests. Please slow down."},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
			assert.Contains(t, ae.Stack, "errors_test.go")
		})
	}
}

func TestAppError_Error(t *testing.T) {
	ae := errors.New(errors.ErrCodeProductNotFound, "Product not found")
	assert.Equal(t, "[PRODUCT_NOT_FOUND] Product not found", ae.Error())

	withDetail := ae.WithDetail("id=42")
	assert.Equal(t, "[PRODUCT_NOT_FOUND] Product not found: id=42", withDetail.Error())
	assert.Empty(t, ae.Detail, "WithDetail must not mutate the receiver")
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "ignored"))
}

func TestWrap_PreservesCodeWhenUnknown(t *testing.T) {
	inner := errors.New(errors.ErrCodeUserEmailTaken, "Email already exists")
	outer := errors.Wrap(inner, errors.CodeUnknown, "signup failed")

	assert.Equal(t, errors.ErrCodeUserEmailTaken, outer.Code)
	assert.True(t, stderrors.Is(outer, inner))
}

func TestIsCode_TraversesChain(t *testing.T) {
	inner := errors.New(errors.ErrCodeNotificationDuplicate, "duplicate")
	wrapped := fmt.Errorf("record: %w", inner)

	assert.True(t, errors.IsCode(wrapped, errors.ErrCodeNotificationDuplicate))
	assert.False(t, errors.IsCode(wrapped, errors.CodeInternal))
	assert.False(t, errors.IsCode(nil, errors.CodeInternal))
}

func TestIsNotFound(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"generic", errors.NotFound("not found"), true},
		{"product", errors.New(errors.ErrCodeProductNotFound, "Product not found"), true},
		{"user wrapped", fmt.Errorf("ctx: %w", errors.New(errors.ErrCodeUserNotFound, "User not found")), true},
		{"conflict", errors.Conflict("dup"), false},
		{"plain", stderrors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, errors.IsNotFound(tc.err))
		})
	}
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.CodeUnavailable, errors.GetCode(errors.Unavailable("down")))
}
