package models_test

import (
	"strings"

	"github.com/envelope-zero/ledger/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestGoalAfterSave() {
	tests := []struct {
		amount decimal.Decimal
		err    error
	}{
		{decimal.NewFromFloat(-10), models.ErrGoalAmountNotPositive},
		{decimal.Zero, models.ErrGoalAmountNotPositive},
		{decimal.NewFromFloat(750), nil},
	}

	for _, tt := range tests {
		g := models.SavingsGoal{
			TargetAmount: tt.amount,
		}

		err := g.AfterSave(&gorm.DB{})
		assert.Equal(suite.T(), tt.err, err)
	}
}

func (suite *TestSuiteStandard) TestGoalTrimWhitespace() {
	envelope := suite.createTestEnvelope(models.Envelope{})

	note := " Whitespace    "
	name := "  There is whitespace here  \t"

	goal := suite.createTestGoal(models.SavingsGoal{
		Scope:        envelope.Scope,
		EnvelopeID:   envelope.ID,
		TargetAmount: decimal.NewFromFloat(100),
		Name:         name,
		Note:         note,
	})

	assert.Equal(suite.T(), strings.TrimSpace(name), goal.Name)
	assert.Equal(suite.T(), strings.TrimSpace(note), goal.Note)
}

func (suite *TestSuiteStandard) TestGoalEnvelopeMustExist() {
	err := models.DB.Create(&models.SavingsGoal{
		Scope:        models.UserScope("alice"),
		EnvelopeID:   uuid.New(),
		TargetAmount: decimal.NewFromFloat(100),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Contains(suite.T(), err.Error(), "there is no envelope matching your query")
}

func (suite *TestSuiteStandard) TestGoalEnvelopeOfOtherScope() {
	envelope := suite.createTestEnvelope(models.Envelope{Scope: models.HouseholdScope("home")})

	err := models.DB.Create(&models.SavingsGoal{
		Scope:        models.UserScope("alice"),
		EnvelopeID:   envelope.ID,
		TargetAmount: decimal.NewFromFloat(100),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestGoalUniquePerEnvelope() {
	envelope := suite.createTestEnvelope(models.Envelope{})
	_ = suite.createTestGoal(models.SavingsGoal{Scope: envelope.Scope, EnvelopeID: envelope.ID, TargetAmount: decimal.NewFromInt(10)})

	err := models.DB.Create(&models.SavingsGoal{Scope: envelope.Scope, EnvelopeID: envelope.ID, TargetAmount: decimal.NewFromInt(20)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGoalExists)
}
