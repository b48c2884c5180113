package ledger_test

import (
	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestIncome() {
	caller := alice(march)

	income := suite.addTestIncome(caller, 2500)
	suite.assertDecimal(2500, suite.pool(caller))
	suite.Assert().True(income.Month.Equal(march))
	suite.Assert().True(now.Equal(income.Date))

	amount := decimal.NewFromFloat(2600)
	prior := decimal.NewFromFloat(2500)
	updated, err := suite.service.UpdateIncome(suite.ctx, caller, income.ID, ledger.IncomeUpdate{Amount: &amount, PriorAmount: &prior})
	suite.Require().Nil(err)
	suite.assertDecimal(2600, updated.Amount)
	suite.assertDecimal(2600, suite.pool(caller))

	suite.Require().Nil(suite.service.DeleteIncome(suite.ctx, caller, income.ID, &amount))
	suite.assertDecimal(0, suite.pool(caller))

	incomes, err := suite.service.Incomes(suite.ctx, caller)
	suite.Require().Nil(err)
	suite.Assert().Len(incomes, 0)
}

func (suite *TestSuiteStandard) TestIncomeStaleAmount() {
	caller := alice(march)
	income := suite.addTestIncome(caller, 100)

	stale := decimal.NewFromFloat(90)
	amount := decimal.NewFromFloat(120)

	_, err := suite.service.UpdateIncome(suite.ctx, caller, income.ID, ledger.IncomeUpdate{Amount: &amount, PriorAmount: &stale})
	suite.Assert().ErrorIs(err, ledger.ErrStaleAmount)

	err = suite.service.DeleteIncome(suite.ctx, caller, income.ID, &stale)
	suite.Assert().ErrorIs(err, ledger.ErrStaleAmount)

	suite.assertDecimal(100, suite.pool(caller))
	incomes, _ := suite.service.Incomes(suite.ctx, caller)
	suite.Require().Len(incomes, 1)
	suite.assertDecimal(100, incomes[0].Amount)
}

func (suite *TestSuiteStandard) TestIncomeErrors() {
	caller := alice(march)

	_, err := suite.service.AddIncome(suite.ctx, caller, ledger.IncomeInput{Amount: decimal.Zero})
	suite.Assert().ErrorIs(err, models.ErrAmountNotPositive)

	err = suite.service.DeleteIncome(suite.ctx, caller, uuid.New(), nil)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "there is no income matching your query")

	income := suite.addTestIncome(caller, 10)
	negative := decimal.NewFromFloat(-10)
	_, err = suite.service.UpdateIncome(suite.ctx, caller, income.ID, ledger.IncomeUpdate{Amount: &negative})
	suite.Assert().ErrorIs(err, models.ErrAmountNotPositive)
}

func (suite *TestSuiteStandard) TestIncomeScopes() {
	suite.addTestIncome(alice(march), 100)
	suite.addTestIncome(home(march), 40)

	suite.assertDecimal(100, suite.pool(alice(march)))
	suite.assertDecimal(40, suite.pool(home(march)))

	// A member of the household acting for themself sees their own budget
	suite.assertDecimal(0, suite.pool(ledger.Caller{UserID: "bob", Month: march}))
}
