package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/internal/httputil"
	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/internal/models"
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/gin-gonic/gin"
)

type MonthResponse struct {
	Data  *ledger.MonthOverview `json:"data"`                                  // Data for the month
	Error *string               `json:"error" example:"the month must be set"` // The error, if any occurred
}

type RolloverResponse struct {
	Data  *ledger.RolloverResult `json:"data"`                                                      // Envelopes carried into the target month and overdrafts of the source month
	Error *string                `json:"error" example:"source and target month must be different"` // The error, if any occurred
}

type RolloverHistoryResponse struct {
	Data  []models.RolloverHistoryEntry `json:"data"`                                 // List of rollovers
	Error *string                       `json:"error" example:"the user must be set"` // The error, if any occurred
}

type MonthCopy struct {
	Source types.Month `json:"source" swaggertype:"string" example:"2024-03"` // Month the envelopes are copied from
	Target types.Month `json:"target" swaggertype:"string" example:"2024-04"` // Month the envelopes are copied to
}

type QueryRollovers struct {
	QueryScope
	Source types.Month `form:"source" example:"2024-03"` // Only rollovers out of this month
}

// RegisterMonthRoutes registers the routes for months with
// the RouterGroup that is passed.
func (co Controller) RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsMonth)
	r.GET("", co.GetMonth)

	r.OPTIONS("/start", co.OptionsMonthStart)
	r.POST("/start", co.StartMonth)

	r.OPTIONS("/copy", co.OptionsMonthCopy)
	r.POST("/copy", co.CopyMonth)

	r.OPTIONS("/rollovers", co.OptionsRollovers)
	r.GET("/rollovers", co.GetRollovers)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months [options]
func (co Controller) OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get month
// @Description	Returns the unallocated pool and all envelopes with an allocation in the month
// @Tags			Months
// @Produce		json
// @Success		200			{object}	MonthResponse
// @Failure		400			{object}	MonthResponse
// @Failure		500			{object}	MonthResponse
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Param			month		query		string	true	"The month in YYYY-MM format"
// @Router			/v1/months [get]
func (co Controller) GetMonth(c *gin.Context) {
	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{Error: &e})
		return
	}

	overview, err := co.Ledger.Month(c.Request.Context(), scope.caller())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, MonthResponse{Data: &overview})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months/start [options]
func (co Controller) OptionsMonthStart(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Start new month
// @Description	Carries the balances of all envelopes with rollover enabled into the month after the one specified
// @Tags			Months
// @Produce		json
// @Success		201			{object}	RolloverResponse
// @Failure		400			{object}	RolloverResponse
// @Failure		500			{object}	RolloverResponse
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Param			month		query		string	true	"The month that ends, in YYYY-MM format"
// @Router			/v1/months/start [post]
func (co Controller) StartMonth(c *gin.Context) {
	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), RolloverResponse{Error: &e})
		return
	}

	result, err := co.Ledger.StartNewMonth(c.Request.Context(), scope.caller())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RolloverResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, RolloverResponse{Data: &result})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months/copy [options]
func (co Controller) OptionsMonthCopy(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Copy envelopes to month
// @Description	Carries all envelopes of the source month into the target month
// @Tags			Months
// @Accept			json
// @Produce		json
// @Success		201			{object}	RolloverResponse
// @Failure		400			{object}	RolloverResponse
// @Failure		500			{object}	RolloverResponse
// @Param			user		query		string		true	"ID of the user"
// @Param			household	query		string		false	"ID of the household"
// @Param			months		body		MonthCopy	true	"Source and target month"
// @Router			/v1/months/copy [post]
func (co Controller) CopyMonth(c *gin.Context) {
	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), RolloverResponse{Error: &e})
		return
	}

	var months MonthCopy
	if err := httputil.BindData(c, &months); err != nil {
		e := err.Error()
		c.JSON(status(err), RolloverResponse{Error: &e})
		return
	}

	result, err := co.Ledger.CopyEnvelopesToMonth(c.Request.Context(), scope.caller(), months.Source, months.Target)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RolloverResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, RolloverResponse{Data: &result})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months/rollovers [options]
func (co Controller) OptionsRollovers(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get rollovers
// @Description	Returns the rollover history, newest first
// @Tags			Months
// @Produce		json
// @Success		200			{object}	RolloverHistoryResponse
// @Failure		400			{object}	RolloverHistoryResponse
// @Failure		500			{object}	RolloverHistoryResponse
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Param			source		query		string	false	"Only rollovers out of this month, in YYYY-MM format"
// @Router			/v1/months/rollovers [get]
func (co Controller) GetRollovers(c *gin.Context) {
	var query QueryRollovers
	if err := httputil.BindQuery(c, &query); err != nil {
		e := err.Error()
		c.JSON(status(err), RolloverHistoryResponse{Error: &e})
		return
	}

	entries, err := co.Ledger.RolloverHistory(c.Request.Context(), query.caller(), query.Source)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RolloverHistoryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, RolloverHistoryResponse{Data: entries})
}
