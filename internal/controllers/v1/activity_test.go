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

func getActivities(suite *TestSuiteStandard, query ...string) []models.ActivityLogEntry {
	r := test.Request(suite.T(), http.MethodGet, endpoint("/activities", query...), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.ActivityListResponse
	test.DecodeResponse(suite.T(), &r, &list)

	return list.Data
}

func undo(suite *TestSuiteStandard, id uuid.UUID, expectedStatus int) v1.ActivityResponse {
	r := test.Request(suite.T(), http.MethodPost, endpoint("/activities/"+id.String()+"/undo"), "")
	test.AssertHTTPStatus(suite.T(), &r, expectedStatus)

	var entry v1.ActivityResponse
	test.DecodeResponse(suite.T(), &r, &entry)

	return entry
}

func (suite *TestSuiteStandard) TestActivities() {
	envelope := createTestEnvelope(suite.T(), ledger.EnvelopeInput{Name: "Groceries"})
	createTestIncome(suite.T(), "100")
	allocate(suite.T(), envelope.Data.ID, "40")

	entries := getActivities(suite)
	suite.Require().Len(entries, 3)
	suite.Assert().Equal(models.ActionAllocationMade, entries[0].Action, "Newest entry comes first")
	suite.Assert().Equal("alice", entries[0].ActorID)
	suite.Assert().Equal(models.ActivityActive, entries[0].Status)

	suite.Assert().Len(getActivities(suite, "action=income_added"), 1)
	suite.Assert().Len(getActivities(suite, "limit=1"), 1)
	suite.Assert().Len(getActivities(suite, "status=undone"), 0)

	r := test.Request(suite.T(), http.MethodGet, endpoint("/activities", "status=deleted"), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Contains(r.Body.String(), "status must be one of active undone")
}

func (suite *TestSuiteStandard) TestActivitiesHousehold() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/incomes?user=alice&household=home&month=2024-03", map[string]string{"amount": "10"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	// Another member of the household sees the activity
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/activities?user=bob&household=home", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.ActivityListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal("alice", list.Data[0].ActorID)

	// The user's own ledger is separate
	suite.Assert().Len(getActivities(suite), 0)
}

func (suite *TestSuiteStandard) TestUndoAllocation() {
	envelope := createTestEnvelope(suite.T(), ledger.EnvelopeInput{})
	createTestIncome(suite.T(), "100")
	allocate(suite.T(), envelope.Data.ID, "40")

	entries := getActivities(suite, "action=allocation_made")
	suite.Require().Len(entries, 1)

	entry := undo(suite, entries[0].ID, http.StatusOK)
	suite.Assert().Equal(models.ActivityUndone, entry.Data.Status)
	suite.Assert().NotNil(entry.Data.UndoneAt)

	month := getMonth(suite.T())
	suite.Assert().True(decimal.NewFromInt(100).Equal(month.ToBeBudgeted), month.ToBeBudgeted)

	// Each activity can be undone only once
	conflict := undo(suite, entries[0].ID, http.StatusConflict)
	suite.Assert().Equal(ledger.ErrAlreadyUndone.Error(), *conflict.Error)
}

func (suite *TestSuiteStandard) TestUndoErrors() {
	envelope := createTestEnvelope(suite.T(), ledger.EnvelopeInput{})
	createTestTransaction(suite.T(), ledger.TransactionInput{EnvelopeID: envelope.Data.ID, Amount: decimal.NewFromInt(5)})

	r := test.Request(suite.T(), http.MethodPost, endpoint("/months/start"), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	created := getActivities(suite, "action=envelope_created")
	suite.Require().Len(created, 1)
	undo(suite, created[0].ID, http.StatusBadRequest)

	started := getActivities(suite, "action=month_started", "month=2024-04")
	suite.Require().Len(started, 1)
	undo(suite, started[0].ID, http.StatusBadRequest)

	undo(suite, uuid.New(), http.StatusNotFound)
}
