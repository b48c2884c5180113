package v1_test

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	v1 "github.com/envelope-zero/ledger/internal/controllers/v1"
	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// endpoint returns the URL of a v1 resource for the user alice in March 2024.
// Query parameters in the form key=value are added or override the defaults.
func endpoint(path string, query ...string) string {
	q := url.Values{
		"user":  []string{"alice"},
		"month": []string{"2024-03"},
	}

	for _, s := range query {
		if key, value, ok := strings.Cut(s, "="); ok {
			q.Set(key, value)
		}
	}

	return fmt.Sprintf("http://example.com/v1%s?%s", path, q.Encode())
}

func createTestEnvelope(t *testing.T, e ledger.EnvelopeInput, expectedStatus ...int) v1.EnvelopeResponse {
	if e.Name == "" {
		e.Name = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, endpoint("/envelopes"), e)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var envelope v1.EnvelopeResponse
	test.DecodeResponse(t, &r, &envelope)

	return envelope
}

func createTestIncome(t *testing.T, amount string, expectedStatus ...int) v1.IncomeResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, endpoint("/incomes"), ledger.IncomeInput{
		Amount:      decimal.RequireFromString(amount),
		Description: "Salary",
	})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var income v1.IncomeResponse
	test.DecodeResponse(t, &r, &income)

	return income
}

func allocate(t *testing.T, envelopeID uuid.UUID, amount string, expectedStatus ...int) v1.AllocationResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, endpoint("/allocations"), v1.AllocationEditable{
		EnvelopeID: envelopeID,
		Amount:     decimal.RequireFromString(amount),
	})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var allocation v1.AllocationResponse
	test.DecodeResponse(t, &r, &allocation)

	return allocation
}

func getMonth(t *testing.T) ledger.MonthOverview {
	r := test.Request(t, http.MethodGet, endpoint("/months"), "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var month v1.MonthResponse
	test.DecodeResponse(t, &r, &month)

	return *month.Data
}
