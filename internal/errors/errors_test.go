package errors_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-loot/internal/errors"
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
			message:  "loot item not found",
			expected: "NOT_FOUND: loot item not found",
		},
		{
			name:     "malformed response error",
			code:     errors.CodeMalformedResponse,
			message:  "response is not json",
			expected: "MALFORMED_RESPONSE: response is not json",
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

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("loot item not found").
		WithMeta("item_id", "loot_123").
		WithMetaMap(map[string]interface{}{"tier": "Gold"})

	s.Assert().Equal("loot_123", err.Meta["item_id"])
	s.Assert().Equal("Gold", err.Meta["tier"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to save item")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to save item", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.SchemaViolation("stats.damage is required")
	wrapped := errors.Wrap(baseErr, "failed to reconcile")

	s.Assert().Equal(errors.CodeSchemaViolation, wrapped.Code)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
	s.Assert().Nil(errors.GenerationFailed(nil, "should be nil"))
	s.Assert().Nil(errors.FromContext(nil))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
		{"Unavailable", func() *errors.Error { return errors.Unavailable("test") }, errors.CodeUnavailable},
		{"Canceled", func() *errors.Error { return errors.Canceled("test") }, errors.CodeCanceled},
		{"DeadlineExceeded", func() *errors.Error { return errors.DeadlineExceeded("test") }, errors.CodeDeadlineExceeded},
		{"MalformedResponse", func() *errors.Error { return errors.MalformedResponse("test") }, errors.CodeMalformedResponse},
		{"SchemaViolation", func() *errors.Error { return errors.SchemaViolation("test") }, errors.CodeSchemaViolation},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestFormattedConstructors() {
	err := errors.NotFoundf("loot item %s not found", "loot_1")
	s.Assert().Equal(errors.CodeNotFound, err.Code)
	s.Assert().Equal("loot item loot_1 not found", err.Message)

	err2 := errors.InvalidArgumentf("count must be at least %d", 1)
	s.Assert().Equal(errors.CodeInvalidArgument, err2.Code)
	s.Assert().Equal("count must be at least 1", err2.Message)
}

func (s *ErrorsTestSuite) TestGenerationFailed() {
	cause := errors.MalformedResponse("unexpected end of JSON input")
	err := errors.GenerationFailed(cause, "attempt 3 failed")

	s.Assert().True(errors.IsGenerationFailed(err))
	s.Assert().Equal("MALFORMED_RESPONSE", err.Meta["cause_code"])
	s.Assert().True(errors.IsMalformedResponse(err.Unwrap()))
}

func (s *ErrorsTestSuite) TestFromContext() {
	s.Assert().True(errors.IsDeadlineExceeded(errors.FromContext(context.DeadlineExceeded)))
	s.Assert().True(errors.IsCanceled(errors.FromContext(context.Canceled)))
	s.Assert().True(errors.IsInternal(errors.FromContext(fmt.Errorf("other"))))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("test")
	err2 := errors.NotFound("test")
	err3 := errors.InvalidArgument("test")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	notFoundErr := errors.NotFound("test")
	invalidErr := errors.InvalidArgument("test")
	wrappedErr := errors.Wrap(notFoundErr, "wrapped")

	s.Assert().True(errors.IsNotFound(notFoundErr))
	s.Assert().True(errors.IsNotFound(wrappedErr))
	s.Assert().False(errors.IsNotFound(invalidErr))

	s.Assert().True(errors.IsInvalidArgument(invalidErr))
	s.Assert().True(errors.IsSchemaViolation(errors.SchemaViolationf("bad %s", "shape")))
	s.Assert().True(errors.IsUnavailable(errors.Unavailablef("store %s", "down")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("user friendly message")
	wrapped := errors.Wrap(err, "wrapped message")
	stdErr := fmt.Errorf("standard error")

	s.Assert().Equal("user friendly message", errors.GetMessage(err))
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(stdErr))
}

func (s *ErrorsTestSuite) TestExitCode() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 0},
		{errors.CodeInvalidArgument, 2},
		{errors.CodeUnavailable, 3},
		{errors.CodeDeadlineExceeded, 3},
		{errors.CodeNotFound, 4},
		{errors.CodeInternal, 1},
		{errors.CodeGenerationFailed, 1},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			s.Assert().Equal(tc.expected, tc.code.ExitCode())
		})
	}
}
