package v1_test

import (
	"net/http"
	"testing"
	"time"

	v1 "github.com/envelope-zero/ledger/internal/controllers/v1"
	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var march12 = time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)

func createTestTransaction(t *testing.T, in ledger.TransactionInput, expectedStatus ...int) v1.TransactionResponse {
	if in.Date.IsZero() {
		in.Date = march12
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, endpoint("/transactions"), in)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var transaction v1.TransactionResponse
	test.DecodeResponse(t, &r, &transaction)

	return transaction
}

func (suite *TestSuiteStandard) TestTransactionCreate() {
	envelope := createTestEnvelope(suite.T(), ledger.EnvelopeInput{})
	createTestIncome(suite.T(), "100")
	allocate(suite.T(), envelope.Data.ID, "50")

	transaction := createTestTransaction(suite.T(), ledger.TransactionInput{
		EnvelopeID:  envelope.Data.ID,
		Amount:      decimal.RequireFromString("14.99"),
		Description: "Weekly shopping",
		Merchant:    "Corner Market",
	})
	suite.Assert().Equal("2024-03", transaction.Data.Month.String())
	suite.Assert().NotNil(transaction.Data.Splits, "Splits are always a list")

	month := getMonth(suite.T())
	suite.Require().Len(month.Envelopes, 1)
	suite.Assert().True(decimal.RequireFromString("35.01").Equal(month.Envelopes[0].Balance), month.Envelopes[0].Balance)

	createTestTransaction(suite.T(), ledger.TransactionInput{EnvelopeID: envelope.Data.ID, Amount: decimal.Zero}, http.StatusBadRequest)
	createTestTransaction(suite.T(), ledger.TransactionInput{EnvelopeID: uuid.New(), Amount: decimal.NewFromInt(1)}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionList() {
	groceries := createTestEnvelope(suite.T(), ledger.EnvelopeInput{Name: "Groceries"})
	fun := createTestEnvelope(suite.T(), ledger.EnvelopeInput{Name: "Fun"})

	createTestTransaction(suite.T(), ledger.TransactionInput{EnvelopeID: groceries.Data.ID, Amount: decimal.NewFromInt(10), Merchant: "Corner Market"})
	createTestTransaction(suite.T(), ledger.TransactionInput{EnvelopeID: groceries.Data.ID, Amount: decimal.NewFromInt(20), Merchant: "Supermarket"})
	createTestTransaction(suite.T(), ledger.TransactionInput{EnvelopeID: fun.Data.ID, Amount: decimal.NewFromInt(30), Merchant: "Cinema"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"All", "", 3},
		{"Envelope", "envelope=" + groceries.Data.ID.String(), 2},
		{"Merchant wildcard", "merchant=*Market", 2},
		{"Merchant", "merchant=Cinema", 1},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
		{"Other month", "month=2024-04", 0},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := test.Request(suite.T(), http.MethodGet, endpoint("/transactions", tt.query), "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

			var list v1.TransactionListResponse
			test.DecodeResponse(suite.T(), &r, &list)
			suite.Assert().Len(list.Data, tt.count)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, endpoint("/transactions", "limit=-1"), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionUpdate() {
	groceries := createTestEnvelope(suite.T(), ledger.EnvelopeInput{Name: "Groceries"})
	fun := createTestEnvelope(suite.T(), ledger.EnvelopeInput{Name: "Fun"})
	transaction := createTestTransaction(suite.T(), ledger.TransactionInput{EnvelopeID: groceries.Data.ID, Amount: decimal.NewFromInt(10)})

	r := test.Request(suite.T(), http.MethodPatch, endpoint("/transactions/"+transaction.Data.ID.String()), map[string]any{
		"envelopeId": fun.Data.ID,
		"amount":     "12.50",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal(fun.Data.ID, updated.Data.EnvelopeID)

	month := getMonth(suite.T())
	for _, e := range month.Envelopes {
		switch e.ID {
		case groceries.Data.ID:
			suite.Assert().True(e.Spent.IsZero(), "Spent of the previous envelope is %s", e.Spent)
		case fun.Data.ID:
			suite.Assert().True(decimal.RequireFromString("12.5").Equal(e.Spent), e.Spent)
		}
	}
}

func (suite *TestSuiteStandard) TestTransactionDelete() {
	envelope := createTestEnvelope(suite.T(), ledger.EnvelopeInput{})
	transaction := createTestTransaction(suite.T(), ledger.TransactionInput{EnvelopeID: envelope.Data.ID, Amount: decimal.NewFromInt(10)})
	path := endpoint("/transactions/" + transaction.Data.ID.String())

	r := test.Request(suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionSplit() {
	groceries := createTestEnvelope(suite.T(), ledger.EnvelopeInput{Name: "Groceries"})
	household := createTestEnvelope(suite.T(), ledger.EnvelopeInput{Name: "Household"})
	transaction := createTestTransaction(suite.T(), ledger.TransactionInput{EnvelopeID: groceries.Data.ID, Amount: decimal.NewFromInt(30)})
	path := endpoint("/transactions/" + transaction.Data.ID.String() + "/split")

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"No parts", v1.TransactionSplitEditable{}, http.StatusBadRequest},
		{"Sum mismatch", v1.TransactionSplitEditable{Splits: []ledger.SplitPart{
			{EnvelopeID: groceries.Data.ID, Amount: decimal.NewFromInt(20)},
			{EnvelopeID: household.Data.ID, Amount: decimal.NewFromInt(5)},
		}}, http.StatusBadRequest},
		{"Success", v1.TransactionSplitEditable{Splits: []ledger.SplitPart{
			{EnvelopeID: groceries.Data.ID, Amount: decimal.NewFromInt(25), Description: "Food"},
			{EnvelopeID: household.Data.ID, Amount: decimal.NewFromInt(5), Description: "Soap"},
		}}, http.StatusCreated},
		{"Already split", v1.TransactionSplitEditable{Splits: []ledger.SplitPart{
			{EnvelopeID: groceries.Data.ID, Amount: decimal.NewFromInt(30)},
		}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := test.Request(suite.T(), http.MethodPost, path, tt.body)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, endpoint("/transactions/"+transaction.Data.ID.String()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var split v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &split)
	suite.Assert().True(split.Data.IsSplit)
	suite.Assert().Len(split.Data.Splits, 2)
}
