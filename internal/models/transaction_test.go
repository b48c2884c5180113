package models_test

import (
	"time"

	"github.com/envelope-zero/ledger/internal/models"
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTransactionMonthFromDate() {
	envelope := suite.createTestEnvelope(models.Envelope{})

	loc := time.FixedZone("UTC-8", -8*60*60)
	transaction := suite.createTestTransaction(models.Transaction{
		Scope:       envelope.Scope,
		EnvelopeID:  envelope.ID,
		Date:        time.Date(2024, 4, 30, 20, 0, 0, 0, loc),
		Amount:      decimal.NewFromFloat(12.5),
		Description: "  Pizza ",
	})

	assert.Equal(suite.T(), types.NewMonth(2024, 5), transaction.Month, "Month must be derived from the UTC date")
	assert.Equal(suite.T(), "Pizza", transaction.Description)
}

func (suite *TestSuiteStandard) TestTransactionValidation() {
	envelope := suite.createTestEnvelope(models.Envelope{})

	tests := []struct {
		name        string
		transaction models.Transaction
		err         error
	}{
		{"Zero amount", models.Transaction{Scope: envelope.Scope, EnvelopeID: envelope.ID}, models.ErrAmountNotPositive},
		{"Negative amount", models.Transaction{Scope: envelope.Scope, EnvelopeID: envelope.ID, Amount: decimal.NewFromInt(-3)}, models.ErrAmountNotPositive},
		{"No envelope", models.Transaction{Scope: envelope.Scope, Amount: decimal.NewFromInt(3)}, models.ErrTransactionEnvelopeMissing},
		{"No scope", models.Transaction{EnvelopeID: envelope.ID, Amount: decimal.NewFromInt(3)}, models.ErrScopeMissing},
	}

	for _, tt := range tests {
		err := models.DB.Create(&tt.transaction).Error
		assert.ErrorIs(suite.T(), err, tt.err, tt.name)
	}
}

func (suite *TestSuiteStandard) TestTransactionSplitAmount() {
	err := models.DB.Create(&models.TransactionSplit{
		TransactionID: uuid.New(),
		EnvelopeID:    uuid.New(),
		Amount:        decimal.Zero,
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)
}

func (suite *TestSuiteStandard) TestIncomeValidation() {
	err := models.DB.Create(&models.Income{
		Scope:  models.UserScope("alice"),
		Month:  types.NewMonth(2024, 1),
		Amount: decimal.NewFromInt(-50),
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)

	income := models.Income{
		Scope:       models.UserScope("alice"),
		Month:       types.NewMonth(2024, 1),
		Amount:      decimal.NewFromInt(50),
		Description: " Gift  ",
	}
	assert.Nil(suite.T(), models.DB.Create(&income).Error)
	assert.Equal(suite.T(), "Gift", income.Description)
}
