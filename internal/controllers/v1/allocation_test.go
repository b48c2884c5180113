package v1_test

import (
	"net/http"

	v1 "github.com/envelope-zero/ledger/internal/controllers/v1"
	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/internal/models"
	"github.com/envelope-zero/ledger/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestAllocate() {
	envelope := createTestEnvelope(suite.T(), ledger.EnvelopeInput{})
	createTestIncome(suite.T(), "100")

	allocation := allocate(suite.T(), envelope.Data.ID, "40")
	suite.Assert().True(decimal.NewFromInt(40).Equal(allocation.Data.Allocated), allocation.Data.Allocated)

	tests := []struct {
		name   string
		id     uuid.UUID
		amount string
		status int
	}{
		{"More than the pool", envelope.Data.ID, "60.01", http.StatusBadRequest},
		{"Zero", envelope.Data.ID, "0", http.StatusBadRequest},
		{"Negative", envelope.Data.ID, "-5", http.StatusBadRequest},
		{"Unknown envelope", uuid.New(), "5", http.StatusNotFound},
		{"Rest of the pool", envelope.Data.ID, "60", http.StatusCreated},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			allocate(suite.T(), tt.id, tt.amount, tt.status)
		})
	}

	month := getMonth(suite.T())
	suite.Assert().True(month.ToBeBudgeted.IsZero(), month.ToBeBudgeted)
}

func (suite *TestSuiteStandard) TestAllocateDBClosed() {
	envelope := createTestEnvelope(suite.T(), ledger.EnvelopeInput{})
	suite.CloseDB()

	allocation := allocate(suite.T(), envelope.Data.ID, "10", http.StatusInternalServerError)
	suite.Assert().Equal(models.ErrGeneral.Error(), *allocation.Error)
}

func (suite *TestSuiteStandard) TestAllocateMissingEnvelope() {
	r := test.Request(suite.T(), http.MethodPost, endpoint("/allocations"), map[string]string{"amount": "5"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var allocation v1.AllocationResponse
	test.DecodeResponse(suite.T(), &r, &allocation)
	suite.Assert().Equal("envelopeID is required", *allocation.Error)
}

func (suite *TestSuiteStandard) TestWithdraw() {
	envelope := createTestEnvelope(suite.T(), ledger.EnvelopeInput{})
	createTestIncome(suite.T(), "100")
	allocate(suite.T(), envelope.Data.ID, "50")

	r := test.Request(suite.T(), http.MethodPost, endpoint("/allocations/withdraw"), v1.AllocationEditable{
		EnvelopeID: envelope.Data.ID,
		Amount:     decimal.NewFromInt(80),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Contains(r.Body.String(), "insufficient funds")

	r = test.Request(suite.T(), http.MethodPost, endpoint("/allocations/withdraw"), v1.AllocationEditable{
		EnvelopeID: envelope.Data.ID,
		Amount:     decimal.NewFromInt(20),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var allocation v1.AllocationResponse
	test.DecodeResponse(suite.T(), &r, &allocation)
	suite.Assert().True(decimal.NewFromInt(30).Equal(allocation.Data.Allocated), allocation.Data.Allocated)

	month := getMonth(suite.T())
	suite.Assert().True(decimal.NewFromInt(70).Equal(month.ToBeBudgeted), month.ToBeBudgeted)
}

func (suite *TestSuiteStandard) TestTransfer() {
	from := createTestEnvelope(suite.T(), ledger.EnvelopeInput{Name: "Fun"})
	to := createTestEnvelope(suite.T(), ledger.EnvelopeInput{Name: "Groceries"})
	createTestIncome(suite.T(), "100")
	allocate(suite.T(), from.Data.ID, "50")

	tests := []struct {
		name   string
		body   v1.TransferEditable
		status int
	}{
		{"Same envelope", v1.TransferEditable{From: from.Data.ID, To: from.Data.ID, Amount: decimal.NewFromInt(5)}, http.StatusBadRequest},
		{"Too much", v1.TransferEditable{From: from.Data.ID, To: to.Data.ID, Amount: decimal.NewFromInt(51)}, http.StatusBadRequest},
		{"Success", v1.TransferEditable{From: from.Data.ID, To: to.Data.ID, Amount: decimal.NewFromInt(30)}, http.StatusCreated},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := test.Request(suite.T(), http.MethodPost, endpoint("/transfers"), tt.body)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}

	month := getMonth(suite.T())
	suite.Assert().True(decimal.NewFromInt(50).Equal(month.ToBeBudgeted), "Transfers do not touch the pool")
	suite.Assert().True(decimal.NewFromInt(50).Equal(month.Allocated), month.Allocated)
}
