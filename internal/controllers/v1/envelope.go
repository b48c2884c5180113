package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/internal/httputil"
	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/internal/models"
	"github.com/gin-gonic/gin"
)

type EnvelopeResponse struct {
	Data  *models.Envelope `json:"data"`                                                     // Data for the envelope
	Error *string          `json:"error" example:"there is no envelope matching your query"` // The error, if any occurred
}

type EnvelopeListResponse struct {
	Data  []models.Envelope `json:"data"`                                 // List of envelopes
	Error *string           `json:"error" example:"the user must be set"` // The error, if any occurred
}

type QueryEnvelopes struct {
	QueryScope
	Archived *bool `form:"archived"` // Only archived or only active envelopes
}

// RegisterEnvelopeRoutes registers the routes for envelopes with
// the RouterGroup that is passed.
func (co Controller) RegisterEnvelopeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsEnvelopes)
		r.GET("", co.GetEnvelopes)
		r.POST("", co.CreateEnvelope)
	}

	// Envelope with ID
	{
		r.OPTIONS("/:id", co.OptionsEnvelopeDetail)
		r.GET("/:id", co.GetEnvelope)
		r.PATCH("/:id", co.UpdateEnvelope)
		r.DELETE("/:id", co.DeleteEnvelope)
	}

	// Savings goal of the envelope
	{
		r.OPTIONS("/:id/goal", co.OptionsGoal)
		r.GET("/:id/goal", co.GetGoal)
		r.PUT("/:id/goal", co.SetGoal)
		r.DELETE("/:id/goal", co.DeleteGoal)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Router			/v1/envelopes [options]
func (co Controller) OptionsEnvelopes(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/envelopes/{id} [options]
func (co Controller) OptionsEnvelopeDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get envelopes
// @Description	Returns all envelopes of the scope, ordered by position
// @Tags			Envelopes
// @Produce		json
// @Success		200			{object}	EnvelopeListResponse
// @Failure		400			{object}	EnvelopeListResponse
// @Failure		500			{object}	EnvelopeListResponse
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Param			archived	query		bool	false	"Is the envelope archived?"
// @Router			/v1/envelopes [get]
func (co Controller) GetEnvelopes(c *gin.Context) {
	var query QueryEnvelopes
	if err := httputil.BindQuery(c, &query); err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeListResponse{Error: &e})
		return
	}

	envelopes, err := co.Ledger.Envelopes(c.Request.Context(), query.caller(), query.Archived)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, EnvelopeListResponse{Data: envelopes})
}

// @Summary		Create envelope
// @Description	Creates an envelope with an empty allocation in the month
// @Tags			Envelopes
// @Accept			json
// @Produce		json
// @Success		201			{object}	EnvelopeResponse
// @Failure		400			{object}	EnvelopeResponse
// @Failure		500			{object}	EnvelopeResponse
// @Param			user		query		string					true	"ID of the user"
// @Param			household	query		string					false	"ID of the household"
// @Param			month		query		string					true	"The month in YYYY-MM format"
// @Param			envelope	body		ledger.EnvelopeInput	true	"Envelope"
// @Router			/v1/envelopes [post]
func (co Controller) CreateEnvelope(c *gin.Context) {
	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	var input ledger.EnvelopeInput
	if err := httputil.BindData(c, &input); err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	envelope, err := co.Ledger.CreateEnvelope(c.Request.Context(), scope.caller(), input)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, EnvelopeResponse{Data: &envelope})
}

// @Summary		Get envelope
// @Description	Returns a specific envelope
// @Tags			Envelopes
// @Produce		json
// @Success		200			{object}	EnvelopeResponse
// @Failure		400			{object}	EnvelopeResponse
// @Failure		404			{object}	EnvelopeResponse
// @Failure		500			{object}	EnvelopeResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Router			/v1/envelopes/{id} [get]
func (co Controller) GetEnvelope(c *gin.Context) {
	var uri URIID
	if err := httputil.BindURI(c, &uri); err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	envelope, err := co.Ledger.Envelope(c.Request.Context(), scope.caller(), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, EnvelopeResponse{Data: &envelope})
}

// @Summary		Update envelope
// @Description	Updates an envelope. Only values to be updated need to be specified.
// @Tags			Envelopes
// @Accept			json
// @Produce		json
// @Success		200			{object}	EnvelopeResponse
// @Failure		400			{object}	EnvelopeResponse
// @Failure		404			{object}	EnvelopeResponse
// @Failure		500			{object}	EnvelopeResponse
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user		query		string					true	"ID of the user"
// @Param			household	query		string					false	"ID of the household"
// @Param			envelope	body		ledger.EnvelopeUpdate	true	"Envelope"
// @Router			/v1/envelopes/{id} [patch]
func (co Controller) UpdateEnvelope(c *gin.Context) {
	var uri URIID
	if err := httputil.BindURI(c, &uri); err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	var update ledger.EnvelopeUpdate
	if err := httputil.BindData(c, &update); err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	envelope, err := co.Ledger.UpdateEnvelope(c.Request.Context(), scope.caller(), uri.ID.UUID, update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, EnvelopeResponse{Data: &envelope})
}

// @Summary		Delete envelope
// @Description	Deletes an envelope and refunds its available balance in the month to the unallocated pool
// @Tags			Envelopes
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Param			month		query		string	true	"The month in YYYY-MM format"
// @Router			/v1/envelopes/{id} [delete]
func (co Controller) DeleteEnvelope(c *gin.Context) {
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

	err := co.Ledger.DeleteEnvelope(c.Request.Context(), scope.caller(), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
