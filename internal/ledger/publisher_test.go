package ledger_test

import (
	"errors"

	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func (suite *TestSuiteStandard) TestPublishesCommittedActivities() {
	ctrl := gomock.NewController(suite.T())
	publisher := ledger.NewMockPublisher(ctrl)
	service := ledger.New(models.DB, ledger.WithPublisher(publisher))

	var published []models.ActivityLogEntry
	publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, entry models.ActivityLogEntry) error {
			published = append(published, entry)
			return nil
		}).
		Times(3)

	caller := alice(march)
	envelope, err := service.CreateEnvelope(suite.ctx, caller, ledger.EnvelopeInput{Name: "Groceries"})
	suite.Require().Nil(err)

	// Rejected commands are not published
	_, err = service.Allocate(suite.ctx, caller, envelope.ID, decimal.NewFromFloat(10))
	suite.Require().ErrorIs(err, ledger.ErrInsufficientFunds)

	_, err = service.AddIncome(suite.ctx, caller, ledger.IncomeInput{Amount: decimal.NewFromFloat(10)})
	suite.Require().Nil(err)

	// Undo publishes the entry with its new status
	_, err = service.Undo(suite.ctx, caller, published[1].ID)
	suite.Require().Nil(err)

	suite.Require().Len(published, 3)
	suite.Assert().Equal(models.ActionEnvelopeCreated, published[0].Action)
	suite.Assert().Equal(models.ActionIncomeAdded, published[1].Action)
	suite.Assert().Equal(models.ActivityActive, published[1].Status)
	suite.Assert().Equal(models.ActivityUndone, published[2].Status)
	suite.Assert().Equal("alice", published[0].ActorID)
}

func (suite *TestSuiteStandard) TestPublishFailureDoesNotFailCommand() {
	ctrl := gomock.NewController(suite.T())
	publisher := ledger.NewMockPublisher(ctrl)
	service := ledger.New(models.DB, ledger.WithPublisher(publisher))

	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	_, err := service.AddIncome(suite.ctx, alice(march), ledger.IncomeInput{Amount: decimal.NewFromFloat(10)})
	suite.Require().Nil(err)
	suite.assertDecimal(10, suite.pool(alice(march)))
}
