package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/internal/httputil"
	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/internal/models"
	ez_uuid "github.com/envelope-zero/ledger/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Transaction is a transaction together with its split parts.
type Transaction struct {
	models.Transaction
	Splits []models.TransactionSplit `json:"splits"` // The parts of a split transaction. Empty for transactions that are not split.
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                        // Data for the transaction
	Error *string      `json:"error" example:"there is no transaction matching your query"` // The error, if any occurred
}

type TransactionListResponse struct {
	Data  []models.Transaction `json:"data"`                                 // List of transactions
	Error *string              `json:"error" example:"the user must be set"` // The error, if any occurred
}

type TransactionSplitEditable struct {
	Splits []ledger.SplitPart `json:"splits" binding:"required"` // The parts the transaction is split into. The amounts must add up to the transaction amount.
}

type QueryTransactions struct {
	QueryScope
	QueryPage
	Envelope ez_uuid.UUID `form:"envelope"` // Filter by envelope ID
	Merchant string       `form:"merchant"` // Filter by merchant, supports * as wildcard
}

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsTransactions)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", co.OptionsTransactionDetail)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}

	{
		r.OPTIONS("/:id/split", co.OptionsTransactionSplit)
		r.POST("/:id/split", co.SplitTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func (co Controller) OptionsTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get transactions
// @Description	Returns a list of transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200			{object}	TransactionListResponse
// @Failure		400			{object}	TransactionListResponse
// @Failure		500			{object}	TransactionListResponse
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Param			month		query		string	false	"Only transactions in this month, in YYYY-MM format"
// @Param			envelope	query		string	false	"Filter by envelope ID"
// @Param			merchant	query		string	false	"Filter by merchant, supports * as wildcard"
// @Param			offset		query		uint	false	"The offset of the first Transaction returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of Transactions to return. Defaults to all."
// @Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	var query QueryTransactions
	if err := httputil.BindQuery(c, &query); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	transactions, err := co.Ledger.Transactions(c.Request.Context(), query.caller(), ledger.TransactionFilter{
		Month:      query.Month,
		EnvelopeID: query.Envelope.UUID,
		Merchant:   query.Merchant,
		Offset:     query.Offset,
		Limit:      query.Limit,
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}

// @Summary		Create transaction
// @Description	Records money spent from an envelope in the month of the transaction date. If splits are given, the amount is distributed over their envelopes instead.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			user		query		string					true	"ID of the user"
// @Param			household	query		string					false	"ID of the household"
// @Param			transaction	body		ledger.TransactionInput	true	"Transaction"
// @Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var input ledger.TransactionInput
	if err := httputil.BindData(c, &input); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	ctx := c.Request.Context()
	transaction, err := co.Ledger.AddTransaction(ctx, scope.caller(), input)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	co.transactionDetail(c, scope, transaction.ID, http.StatusCreated)
}

// @Summary		Get transaction
// @Description	Returns a specific transaction with its splits
// @Tags			Transactions
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	var uri URIID
	if err := httputil.BindURI(c, &uri); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	co.transactionDetail(c, scope, uri.ID.UUID, http.StatusOK)
}

// @Summary		Update transaction
// @Description	Updates a transaction. Only values to be updated need to be specified. Changing the date moves the amount to the month of the new date.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user		query		string						true	"ID of the user"
// @Param			household	query		string						false	"ID of the household"
// @Param			transaction	body		ledger.TransactionUpdate	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	var uri URIID
	if err := httputil.BindURI(c, &uri); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var update ledger.TransactionUpdate
	if err := httputil.BindData(c, &update); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	_, err := co.Ledger.UpdateTransaction(c.Request.Context(), scope.caller(), uri.ID.UUID, update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	co.transactionDetail(c, scope, uri.ID.UUID, http.StatusOK)
}

// @Summary		Delete transaction
// @Description	Deletes a transaction and returns its amount to the envelopes it was spent from
// @Tags			Transactions
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	var uri URIID
	if err := httputil.BindURI(c, &uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err := co.Ledger.DeleteTransaction(c.Request.Context(), scope.caller(), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id}/split [options]
func (co Controller) OptionsTransactionSplit(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Split transaction
// @Description	Distributes the amount of a transaction over several envelopes
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user		query		string						true	"ID of the user"
// @Param			household	query		string						false	"ID of the household"
// @Param			splits		body		TransactionSplitEditable	true	"Split parts"
// @Router			/v1/transactions/{id}/split [post]
func (co Controller) SplitTransaction(c *gin.Context) {
	var uri URIID
	if err := httputil.BindURI(c, &uri); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var editable TransactionSplitEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction, splits, err := co.Ledger.SplitTransaction(c.Request.Context(), scope.caller(), uri.ID.UUID, editable.Splits)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &Transaction{Transaction: transaction, Splits: splits}})
}

// transactionDetail writes the transaction with its splits.
func (co Controller) transactionDetail(c *gin.Context, scope QueryScope, id uuid.UUID, code int) {
	transaction, splits, err := co.Ledger.Transaction(c.Request.Context(), scope.caller(), id)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	if splits == nil {
		splits = []models.TransactionSplit{}
	}

	c.JSON(code, TransactionResponse{Data: &Transaction{Transaction: transaction, Splits: splits}})
}
