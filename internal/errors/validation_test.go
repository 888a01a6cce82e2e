package errors_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dice-companion/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationErrorIsSorted() {
	ve := errors.NewValidationError()
	ve.AddFieldError("Scheduler", "is required")
	ve.AddFieldError("Roller", "is required")

	s.Assert().Equal("validation failed: Roller: is required; Scheduler: is required", ve.Error())

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestBuilder() {
	err := errors.NewValidationBuilder().
		RequiredField("Roller").
		InvalidField("RevealDelay", "must exceed SettleDelay").
		Build()

	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Contains(err.Error(), "RevealDelay: is invalid: must exceed SettleDelay")
}

func (s *ValidationTestSuite) TestBuilderNoErrors() {
	s.Assert().NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("count", 4, 0, 10, vb)
	s.Assert().NoError(vb.Build())

	vb = errors.NewValidationBuilder()
	errors.ValidateRange("count", 11, 0, 10, vb)
	s.Assert().Error(vb.Build())
}

func (s *ValidationTestSuite) TestValidatePositiveDuration() {
	vb := errors.NewValidationBuilder()
	errors.ValidatePositiveDuration("SettleDelay", time.Second, vb)
	s.Assert().NoError(vb.Build())

	vb = errors.NewValidationBuilder()
	errors.ValidatePositiveDuration("SettleDelay", 0, vb)
	s.Assert().Error(vb.Build())
}

func (s *ValidationTestSuite) TestValidateEnum() {
	allowed := []string{"start_game", "mid_game", "end_game"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("phase", "mid_game", allowed, vb)
	s.Assert().NoError(vb.Build())

	vb = errors.NewValidationBuilder()
	errors.ValidateEnum("phase", "late_game", allowed, vb)
	err := vb.Build()
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), "must be one of: start_game, mid_game, end_game")
}
