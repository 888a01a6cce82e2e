package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dice-companion/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "table not found",
			expected: "NOT_FOUND: table not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "unknown game phase",
			expected: "INVALID_ARGUMENT: unknown game phase",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWithMeta() {
	err := errors.InvalidArgument("unknown game phase").
		WithMeta("phase", "late_game").
		WithMeta("table_id", "kitchen")

	s.Assert().Equal("late_game", err.Meta["phase"])
	s.Assert().Equal("kitchen", err.Meta["table_id"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to record roll")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to record roll", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	baseErr := errors.NotFound("history not found").WithMeta("table_id", "t1")
	wrapped := errors.Wrapf(baseErr, "failed to list rolls for %s", "t1")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("failed to list rolls for t1", wrapped.Message)
	s.Assert().Equal("t1", errors.GetMeta(wrapped)["table_id"])
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("dial tcp: timeout")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "history store unavailable")

	s.Assert().Equal(errors.CodeUnavailable, wrapped.Code)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	s.Assert().True(errors.NotFound("a").Is(errors.NotFound("b")))
	s.Assert().False(errors.NotFound("a").Is(errors.InvalidArgument("a")))
}

func (s *ErrorsTestSuite) TestHelpers() {
	wrapped := errors.Wrap(errors.Aborted("roll in progress"), "start roll")

	s.Assert().True(errors.IsAborted(wrapped))
	s.Assert().False(errors.IsNotFound(wrapped))
	s.Assert().True(errors.IsInternal(fmt.Errorf("plain")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal("start roll", errors.GetMessage(wrapped))
	s.Assert().Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, http.StatusOK},
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeInvalidArgument, http.StatusBadRequest},
		{errors.CodeAborted, http.StatusConflict},
		{errors.CodeUnavailable, http.StatusServiceUnavailable},
		{errors.CodeResourceExhausted, http.StatusTooManyRequests},
		{errors.CodeInternal, http.StatusInternalServerError},
		{errors.Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}
