package ledger_test

import (
	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCreateEnvelope() {
	caller := alice(march)

	first := suite.createTestEnvelope(caller, ledger.EnvelopeInput{Name: "Groceries"})
	second := suite.createTestEnvelope(caller, ledger.EnvelopeInput{Name: "Rent"})
	other := suite.createTestEnvelope(home(march), ledger.EnvelopeInput{Name: "Rent"})

	suite.Assert().Equal(0, first.Position)
	suite.Assert().Equal(1, second.Position)
	suite.Assert().Equal(0, other.Position, "Positions are counted per scope")
	suite.Assert().Equal(models.RolloverFull, first.RolloverStrategy)
	suite.Assert().False(first.Rollover)

	allocation, exists := suite.allocation(first.ID, march)
	suite.Require().True(exists, "The envelope is active in the month it was created in")
	suite.assertDecimal(0, allocation.Allocated)

	overview, err := suite.service.Month(suite.ctx, caller)
	suite.Require().Nil(err)
	suite.Require().Len(overview.Envelopes, 2)
	suite.Assert().Equal("Groceries", overview.Envelopes[0].Name)
	suite.Assert().Equal("Rent", overview.Envelopes[1].Name)

	overview, _ = suite.service.Month(suite.ctx, alice(april))
	suite.Assert().Len(overview.Envelopes, 0, "Envelopes without allocation are not part of a month")
}

func (suite *TestSuiteStandard) TestCreateEnvelopePiggyBank() {
	caller := alice(march)

	savings := suite.createTestEnvelope(caller, ledger.EnvelopeInput{Name: "Vacation", Icon: models.IconPiggyBank})
	suite.Assert().True(savings.Rollover)
	suite.Assert().Equal(models.CategorySavings, savings.Category)

	category := "travel"
	rollover := false
	overridden := suite.createTestEnvelope(caller, ledger.EnvelopeInput{Name: "Trip", Icon: models.IconPiggyBank, Category: &category, Rollover: &rollover})
	suite.Assert().False(overridden.Rollover)
	suite.Assert().Equal("travel", overridden.Category)
}

func (suite *TestSuiteStandard) TestUpdateEnvelope() {
	caller := alice(march)
	envelope := suite.createTestEnvelope(caller, ledger.EnvelopeInput{})

	name := "Food"
	rollover := true
	strategy := models.RolloverPercentage
	percentage := decimal.NewFromFloat(50)

	updated, err := suite.service.UpdateEnvelope(suite.ctx, caller, envelope.ID, ledger.EnvelopeUpdate{
		Name:               &name,
		Rollover:           &rollover,
		RolloverStrategy:   &strategy,
		RolloverPercentage: &percentage,
	})
	suite.Require().Nil(err)
	suite.Assert().Equal("Food", updated.Name)
	suite.Assert().Equal(models.RolloverPercentage, updated.RolloverStrategy)

	invalid := decimal.NewFromFloat(150)
	_, err = suite.service.UpdateEnvelope(suite.ctx, caller, envelope.ID, ledger.EnvelopeUpdate{RolloverPercentage: &invalid})
	suite.Assert().ErrorIs(err, models.ErrRolloverPercentage)

	unknown := models.RolloverStrategy("sometimes")
	_, err = suite.service.UpdateEnvelope(suite.ctx, caller, envelope.ID, ledger.EnvelopeUpdate{RolloverStrategy: &unknown})
	suite.Assert().ErrorIs(err, models.ErrRolloverStrategyInvalid)

	stored, err := suite.service.Envelope(suite.ctx, caller, envelope.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(models.RolloverPercentage, stored.RolloverStrategy, "Rejected updates are not stored")
}

func (suite *TestSuiteStandard) TestDeleteEnvelopeRefunds() {
	caller := alice(march)
	envelope := suite.createTestEnvelope(caller, ledger.EnvelopeInput{})
	suite.addTestIncome(caller, 500)
	suite.allocateTest(caller, envelope.ID, 100)
	suite.spendTest(caller, envelope.ID, 40)
	suite.assertDecimal(400, suite.pool(caller))

	suite.Require().Nil(suite.service.DeleteEnvelope(suite.ctx, caller, envelope.ID))
	suite.assertDecimal(460, suite.pool(caller))

	_, err := suite.service.Envelope(suite.ctx, caller, envelope.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, exists := suite.allocation(envelope.ID, march)
	suite.Assert().False(exists, "Allocations are deleted with the envelope")

	transactions, _ := suite.service.Transactions(suite.ctx, caller, ledger.TransactionFilter{})
	suite.Assert().Len(transactions, 0, "Transactions are deleted with the envelope")
}

func (suite *TestSuiteStandard) TestDeleteOverdrawnEnvelope() {
	caller := alice(march)
	envelope := suite.createTestEnvelope(caller, ledger.EnvelopeInput{})
	suite.addTestIncome(caller, 100)
	suite.allocateTest(caller, envelope.ID, 50)
	suite.spendTest(caller, envelope.ID, 70)

	suite.Require().Nil(suite.service.DeleteEnvelope(suite.ctx, caller, envelope.ID))
	suite.assertDecimal(50, suite.pool(caller), "Overdrawn envelopes refund nothing")
}

func (suite *TestSuiteStandard) TestEnvelopesFilter() {
	caller := alice(march)
	suite.createTestEnvelope(caller, ledger.EnvelopeInput{Name: "Groceries"})
	archived := suite.createTestEnvelope(caller, ledger.EnvelopeInput{Name: "Old"})

	yes := true
	_, err := suite.service.UpdateEnvelope(suite.ctx, caller, archived.ID, ledger.EnvelopeUpdate{Archived: &yes})
	suite.Require().Nil(err)

	all, _ := suite.service.Envelopes(suite.ctx, caller, nil)
	suite.Assert().Len(all, 2)

	onlyArchived, _ := suite.service.Envelopes(suite.ctx, caller, &yes)
	suite.Require().Len(onlyArchived, 1)
	suite.Assert().Equal("Old", onlyArchived[0].Name)
}

func (suite *TestSuiteStandard) TestGoal() {
	caller := alice(march)
	envelope := suite.createTestEnvelope(caller, ledger.EnvelopeInput{Name: "Vacation"})

	goal, err := suite.service.SetGoal(suite.ctx, caller, envelope.ID, ledger.GoalInput{Name: "Trip", TargetAmount: decimal.NewFromFloat(750)})
	suite.Require().Nil(err)

	replaced, err := suite.service.SetGoal(suite.ctx, caller, envelope.ID, ledger.GoalInput{Name: "Trip", TargetAmount: decimal.NewFromFloat(900)})
	suite.Require().Nil(err)
	suite.Assert().Equal(goal.ID, replaced.ID, "Setting a goal again replaces it")
	suite.assertDecimal(900, replaced.TargetAmount)

	_, err = suite.service.SetGoal(suite.ctx, caller, envelope.ID, ledger.GoalInput{TargetAmount: decimal.Zero})
	suite.Assert().ErrorIs(err, models.ErrGoalAmountNotPositive)

	goals, _ := suite.service.Goals(suite.ctx, caller)
	suite.Assert().Len(goals, 1)

	suite.Require().Nil(suite.service.DeleteGoal(suite.ctx, caller, envelope.ID))

	_, err = suite.service.Goal(suite.ctx, caller, envelope.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "there is no savings goal matching your query")

	err = suite.service.DeleteGoal(suite.ctx, caller, envelope.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
