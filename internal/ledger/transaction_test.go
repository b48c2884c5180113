package ledger_test

import (
	"time"

	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/internal/models"
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestAddTransactionUsesMonthOfDate() {
	caller := alice(march)
	envelope := suite.createTestEnvelope(caller, ledger.EnvelopeInput{})

	transaction, err := suite.service.AddTransaction(suite.ctx, caller, ledger.TransactionInput{
		EnvelopeID:  envelope.ID,
		Amount:      decimal.NewFromFloat(14.99),
		Date:        time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC),
		Description: "  Weekly shopping ",
		Merchant:    "Corner Market",
	})
	suite.Require().Nil(err)
	suite.Assert().True(transaction.Month.Equal(april))
	suite.Assert().Equal("Weekly shopping", transaction.Description)

	allocation, exists := suite.allocation(envelope.ID, april)
	suite.Require().True(exists, "Spending creates the allocation of the month")
	suite.assertDecimal(14.99, allocation.Spent)
	suite.assertDecimal(0, allocation.Allocated)

	entry := suite.latestActivity(caller)
	suite.Assert().Equal(models.ActionExpenseAdded, entry.Action)
	suite.Assert().Contains(entry.Description, "14.99")
	suite.Assert().Contains(entry.Description, "Corner Market")
}

func (suite *TestSuiteStandard) TestAddTransactionDefaultsToNow() {
	caller := alice(march)
	envelope := suite.createTestEnvelope(caller, ledger.EnvelopeInput{})

	transaction, err := suite.service.AddTransaction(suite.ctx, caller, ledger.TransactionInput{EnvelopeID: envelope.ID, Amount: decimal.NewFromFloat(3)})
	suite.Require().Nil(err)
	suite.Assert().True(now.Equal(transaction.Date))
	suite.Assert().True(transaction.Month.Equal(march))
}

func (suite *TestSuiteStandard) TestAddTransactionErrors() {
	caller := alice(march)
	envelope := suite.createTestEnvelope(caller, ledger.EnvelopeInput{})

	_, err := suite.service.AddTransaction(suite.ctx, caller, ledger.TransactionInput{EnvelopeID: envelope.ID, Amount: decimal.NewFromFloat(-3)})
	suite.Assert().ErrorIs(err, models.ErrAmountNotPositive)

	_, err = suite.service.AddTransaction(suite.ctx, caller, ledger.TransactionInput{EnvelopeID: uuid.New(), Amount: decimal.NewFromFloat(3)})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "there is no envelope matching your query")
}

func (suite *TestSuiteStandard) TestUpdateTransaction() {
	caller := alice(march)
	groceries := suite.createTestEnvelope(caller, ledger.EnvelopeInput{Name: "Groceries"})
	restaurants := suite.createTestEnvelope(caller, ledger.EnvelopeInput{Name: "Restaurants"})
	transaction := suite.spendTest(caller, groceries.ID, 40)

	// Same envelope and month, the difference is applied
	amount := decimal.NewFromFloat(25)
	_, err := suite.service.UpdateTransaction(suite.ctx, caller, transaction.ID, ledger.TransactionUpdate{Amount: &amount})
	suite.Require().Nil(err)
	allocation, _ := suite.allocation(groceries.ID, march)
	suite.assertDecimal(25, allocation.Spent)

	// Other envelope
	_, err = suite.service.UpdateTransaction(suite.ctx, caller, transaction.ID, ledger.TransactionUpdate{EnvelopeID: &restaurants.ID})
	suite.Require().Nil(err)
	allocation, _ = suite.allocation(groceries.ID, march)
	suite.assertDecimal(0, allocation.Spent)
	allocation, _ = suite.allocation(restaurants.ID, march)
	suite.assertDecimal(25, allocation.Spent)

	// Other month
	date := time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)
	updated, err := suite.service.UpdateTransaction(suite.ctx, caller, transaction.ID, ledger.TransactionUpdate{Date: &date})
	suite.Require().Nil(err)
	suite.Assert().True(updated.Month.Equal(april))
	allocation, _ = suite.allocation(restaurants.ID, march)
	suite.assertDecimal(0, allocation.Spent)
	allocation, _ = suite.allocation(restaurants.ID, april)
	suite.assertDecimal(25, allocation.Spent)

	suite.Assert().Equal(models.ActionExpenseUpdated, suite.latestActivity(caller).Action)
	suite.Assert().False(suite.latestActivity(caller).Undoable())
}

func (suite *TestSuiteStandard) TestDeleteTransactionFloorsSpent() {
	caller := alice(march)
	envelope := suite.createTestEnvelope(caller, ledger.EnvelopeInput{})
	transaction := suite.spendTest(caller, envelope.ID, 40)

	// Simulate a counter that drifted below the transaction amount
	err := models.DB.Model(&models.EnvelopeAllocation{}).
		Where("envelope_id = ? AND month = ?", envelope.ID, march).
		Update("spent", decimal.NewFromFloat(10)).Error
	suite.Require().Nil(err)

	suite.Require().Nil(suite.service.DeleteTransaction(suite.ctx, caller, transaction.ID))

	allocation, _ := suite.allocation(envelope.ID, march)
	suite.assertDecimal(0, allocation.Spent)

	_, _, err = suite.service.Transaction(suite.ctx, caller, transaction.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	err = suite.service.DeleteTransaction(suite.ctx, caller, transaction.ID)
	suite.Assert().Contains(err.Error(), "there is no transaction matching your query")
}

func (suite *TestSuiteStandard) TestSplitTransaction() {
	caller := alice(march)
	groceries := suite.createTestEnvelope(caller, ledger.EnvelopeInput{Name: "Groceries"})
	household := suite.createTestEnvelope(caller, ledger.EnvelopeInput{Name: "Household"})
	transaction := suite.spendTest(caller, groceries.ID, 30)

	_, _, err := suite.service.SplitTransaction(suite.ctx, caller, transaction.ID, []ledger.SplitPart{
		{EnvelopeID: groceries.ID, Amount: decimal.NewFromFloat(20)},
		{EnvelopeID: household.ID, Amount: decimal.NewFromFloat(5)},
	})
	suite.Assert().ErrorIs(err, ledger.ErrSplitSumMismatch)

	_, _, err = suite.service.SplitTransaction(suite.ctx, caller, transaction.ID, nil)
	suite.Assert().ErrorIs(err, ledger.ErrSplitEmpty)

	updated, splits, err := suite.service.SplitTransaction(suite.ctx, caller, transaction.ID, []ledger.SplitPart{
		{EnvelopeID: groceries.ID, Amount: decimal.NewFromFloat(22.5), Description: "Food"},
		{EnvelopeID: household.ID, Amount: decimal.NewFromFloat(7.5), Description: "Soap"},
	})
	suite.Require().Nil(err)
	suite.Assert().True(updated.IsSplit)
	suite.Assert().Len(splits, 2)

	allocation, _ := suite.allocation(groceries.ID, march)
	suite.assertDecimal(22.5, allocation.Spent)
	allocation, _ = suite.allocation(household.ID, march)
	suite.assertDecimal(7.5, allocation.Spent)

	_, _, err = suite.service.SplitTransaction(suite.ctx, caller, transaction.ID, []ledger.SplitPart{{EnvelopeID: groceries.ID, Amount: decimal.NewFromFloat(30)}})
	suite.Assert().ErrorIs(err, ledger.ErrTransactionAlreadySplit)

	amount := decimal.NewFromFloat(31)
	_, err = suite.service.UpdateTransaction(suite.ctx, caller, transaction.ID, ledger.TransactionUpdate{Amount: &amount})
	suite.Assert().ErrorIs(err, ledger.ErrTransactionSplit)

	// Deleting a split transaction removes every part
	suite.Require().Nil(suite.service.DeleteTransaction(suite.ctx, caller, transaction.ID))
	allocation, _ = suite.allocation(groceries.ID, march)
	suite.assertDecimal(0, allocation.Spent)
	allocation, _ = suite.allocation(household.ID, march)
	suite.assertDecimal(0, allocation.Spent)

	var count int64
	models.DB.Model(&models.TransactionSplit{}).Count(&count)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestAddSplitTransaction() {
	caller := alice(march)
	groceries := suite.createTestEnvelope(caller, ledger.EnvelopeInput{Name: "Groceries"})
	household := suite.createTestEnvelope(caller, ledger.EnvelopeInput{Name: "Household"})

	transaction, err := suite.service.AddTransaction(suite.ctx, caller, ledger.TransactionInput{
		EnvelopeID: groceries.ID,
		Amount:     decimal.NewFromFloat(12),
		Merchant:   "Corner Market",
		Splits: []ledger.SplitPart{
			{EnvelopeID: groceries.ID, Amount: decimal.NewFromFloat(8)},
			{EnvelopeID: household.ID, Amount: decimal.NewFromFloat(4)},
		},
	})
	suite.Require().Nil(err)
	suite.Assert().True(transaction.IsSplit)

	allocation, _ := suite.allocation(groceries.ID, march)
	suite.assertDecimal(8, allocation.Spent)
	allocation, _ = suite.allocation(household.ID, march)
	suite.assertDecimal(4, allocation.Spent)

	_, splits, err := suite.service.Transaction(suite.ctx, caller, transaction.ID)
	suite.Require().Nil(err)
	suite.Assert().Len(splits, 2)
}

func (suite *TestSuiteStandard) TestTransactionsFilter() {
	caller := alice(march)
	groceries := suite.createTestEnvelope(caller, ledger.EnvelopeInput{Name: "Groceries"})
	restaurants := suite.createTestEnvelope(caller, ledger.EnvelopeInput{Name: "Restaurants"})

	for _, in := range []ledger.TransactionInput{
		{EnvelopeID: groceries.ID, Amount: decimal.NewFromFloat(10), Merchant: "Corner Market", Date: time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)},
		{EnvelopeID: groceries.ID, Amount: decimal.NewFromFloat(11), Merchant: "Supermarket", Date: time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)},
		{EnvelopeID: restaurants.ID, Amount: decimal.NewFromFloat(12), Merchant: "Pizza Place", Date: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)},
		{EnvelopeID: restaurants.ID, Amount: decimal.NewFromFloat(13), Merchant: "Pizza Place", Date: time.Date(2024, time.April, 4, 0, 0, 0, 0, time.UTC)},
	} {
		_, err := suite.service.AddTransaction(suite.ctx, caller, in)
		suite.Require().Nil(err)
	}

	tests := []struct {
		name   string
		filter ledger.TransactionFilter
		len    int
	}{
		{"All", ledger.TransactionFilter{}, 4},
		{"Month", ledger.TransactionFilter{Month: march}, 3},
		{"Envelope", ledger.TransactionFilter{EnvelopeID: restaurants.ID}, 2},
		{"Merchant glob", ledger.TransactionFilter{Merchant: "*market"}, 2},
		{"Merchant is case insensitive", ledger.TransactionFilter{Merchant: "pizza*"}, 2},
		{"Merchant and month", ledger.TransactionFilter{Merchant: "pizza*", Month: types.NewMonth(2024, time.April)}, 1},
		{"Limit", ledger.TransactionFilter{Limit: 3}, 3},
		{"Offset", ledger.TransactionFilter{Offset: 3}, 1},
		{"Offset out of range", ledger.TransactionFilter{Offset: 10}, 0},
	}

	for _, tt := range tests {
		transactions, err := suite.service.Transactions(suite.ctx, caller, tt.filter)
		suite.Require().Nil(err, tt.name)
		suite.Assert().Len(transactions, tt.len, tt.name)
	}

	// Newest first
	transactions, _ := suite.service.Transactions(suite.ctx, caller, ledger.TransactionFilter{})
	suite.assertDecimal(13, transactions[0].Amount)
}
