package v1

import (
	"context"
	"net/http"

	"github.com/envelope-zero/ledger/internal/httputil"
	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AllocationEditable struct {
	EnvelopeID uuid.UUID       `json:"envelopeId" binding:"required" example:"4e743e94-6a4b-44d6-aba5-d77c82103fa7"` // ID of the envelope
	Amount     decimal.Decimal `json:"amount" example:"50"`                                                          // The amount to move. Must be larger than zero.
}

type TransferEditable struct {
	From   uuid.UUID       `json:"from" binding:"required" example:"4e743e94-6a4b-44d6-aba5-d77c82103fa7"` // ID of the source envelope
	To     uuid.UUID       `json:"to" binding:"required" example:"b7a3b2d0-0c55-4b7e-9a3f-6f0e52b1a0c2"`   // ID of the destination envelope
	Amount decimal.Decimal `json:"amount" example:"25"`                                                    // The amount to move. Must be larger than zero.
}

type AllocationResponse struct {
	Data  *models.EnvelopeAllocation `json:"data"`                                                                 // The allocation after the change
	Error *string                    `json:"error" example:"insufficient funds: 50.00 requested, 20.00 available"` // The error, if any occurred
}

type TransferResponse struct {
	Data  *ledger.TransferResult `json:"data"`                                                                            // Both allocations after the transfer
	Error *string                `json:"error" example:"source and destination envelope of a transfer must be different"` // The error, if any occurred
}

// RegisterAllocationRoutes registers the routes for allocations with
// the RouterGroup that is passed.
func (co Controller) RegisterAllocationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsAllocations)
	r.POST("", co.Allocate)

	r.OPTIONS("/withdraw", co.OptionsWithdraw)
	r.POST("/withdraw", co.Withdraw)
}

// RegisterTransferRoutes registers the routes for transfers with
// the RouterGroup that is passed.
func (co Controller) RegisterTransferRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsTransfers)
	r.POST("", co.Transfer)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Router			/v1/allocations [options]
func (co Controller) OptionsAllocations(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allocate money
// @Description	Moves money from the unallocated pool of the month into an envelope
// @Tags			Allocations
// @Accept			json
// @Produce		json
// @Success		201			{object}	AllocationResponse
// @Failure		400			{object}	AllocationResponse
// @Failure		404			{object}	AllocationResponse
// @Failure		500			{object}	AllocationResponse
// @Param			user		query		string				true	"ID of the user"
// @Param			household	query		string				false	"ID of the household"
// @Param			month		query		string				true	"The month in YYYY-MM format"
// @Param			allocation	body		AllocationEditable	true	"Allocation"
// @Router			/v1/allocations [post]
func (co Controller) Allocate(c *gin.Context) {
	co.moveAllocation(c, co.Ledger.Allocate)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Router			/v1/allocations/withdraw [options]
func (co Controller) OptionsWithdraw(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Withdraw money
// @Description	Moves money that is available in an envelope back to the unallocated pool of the month
// @Tags			Allocations
// @Accept			json
// @Produce		json
// @Success		201			{object}	AllocationResponse
// @Failure		400			{object}	AllocationResponse
// @Failure		404			{object}	AllocationResponse
// @Failure		500			{object}	AllocationResponse
// @Param			user		query		string				true	"ID of the user"
// @Param			household	query		string				false	"ID of the household"
// @Param			month		query		string				true	"The month in YYYY-MM format"
// @Param			allocation	body		AllocationEditable	true	"Allocation"
// @Router			/v1/allocations/withdraw [post]
func (co Controller) Withdraw(c *gin.Context) {
	co.moveAllocation(c, co.Ledger.Deallocate)
}

type allocationFunc func(ctx context.Context, caller ledger.Caller, envelopeID uuid.UUID, amount decimal.Decimal) (models.EnvelopeAllocation, error)

func (co Controller) moveAllocation(c *gin.Context, fn allocationFunc) {
	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationResponse{Error: &e})
		return
	}

	var editable AllocationEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationResponse{Error: &e})
		return
	}

	allocation, err := fn(c.Request.Context(), scope.caller(), editable.EnvelopeID, editable.Amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllocationResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, AllocationResponse{Data: &allocation})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Router			/v1/transfers [options]
func (co Controller) OptionsTransfers(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Transfer money
// @Description	Moves money that is available in one envelope to another envelope
// @Tags			Allocations
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransferResponse
// @Failure		400			{object}	TransferResponse
// @Failure		404			{object}	TransferResponse
// @Failure		500			{object}	TransferResponse
// @Param			user		query		string				true	"ID of the user"
// @Param			household	query		string				false	"ID of the household"
// @Param			month		query		string				true	"The month in YYYY-MM format"
// @Param			transfer	body		TransferEditable	true	"Transfer"
// @Router			/v1/transfers [post]
func (co Controller) Transfer(c *gin.Context) {
	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), TransferResponse{Error: &e})
		return
	}

	var editable TransferEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), TransferResponse{Error: &e})
		return
	}

	result, err := co.Ledger.Transfer(c.Request.Context(), scope.caller(), editable.From, editable.To, editable.Amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransferResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, TransferResponse{Data: &result})
}
