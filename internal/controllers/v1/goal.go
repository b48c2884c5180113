package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/internal/httputil"
	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/internal/models"
	"github.com/gin-gonic/gin"
)

type GoalResponse struct {
	Data  *models.SavingsGoal `json:"data"`                                                         // Data for the savings goal
	Error *string             `json:"error" example:"there is no savings goal matching your query"` // The error, if any occurred
}

type GoalListResponse struct {
	Data  []models.SavingsGoal `json:"data"`                             // List of savings goals
	Error *string              `json:"error" example:"user is required"` // The error, if any occurred
}

// RegisterGoalRoutes registers the routes for the savings goal list with
// the RouterGroup that is passed.
func (co Controller) RegisterGoalRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsGoals)
	r.GET("", co.GetGoals)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Goals
// @Success		204
// @Router			/v1/goals [options]
func (co Controller) OptionsGoals(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get savings goals
// @Description	Returns all savings goals of the user or household
// @Tags			Goals
// @Produce		json
// @Success		200			{object}	GoalListResponse
// @Failure		400			{object}	GoalListResponse
// @Failure		500			{object}	GoalListResponse
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Router			/v1/goals [get]
func (co Controller) GetGoals(c *gin.Context) {
	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), GoalListResponse{Error: &e})
		return
	}

	goals, err := co.Ledger.Goals(c.Request.Context(), scope.caller())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, GoalListResponse{Data: goals})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Goals
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/envelopes/{id}/goal [options]
func (co Controller) OptionsGoal(c *gin.Context) {
	httputil.OptionsGetPutDelete(c)
}

// @Summary		Get savings goal
// @Description	Returns the savings goal of an envelope
// @Tags			Goals
// @Produce		json
// @Success		200			{object}	GoalResponse
// @Failure		400			{object}	GoalResponse
// @Failure		404			{object}	GoalResponse
// @Failure		500			{object}	GoalResponse
// @Param			id			path		URIID	true	"ID of the envelope"
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Router			/v1/envelopes/{id}/goal [get]
func (co Controller) GetGoal(c *gin.Context) {
	var uri URIID
	if err := httputil.BindURI(c, &uri); err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	goal, err := co.Ledger.Goal(c.Request.Context(), scope.caller(), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: &goal})
}

// @Summary		Set savings goal
// @Description	Creates or replaces the savings goal of an envelope. The goal caps the amount the envelope carries into the next month.
// @Tags			Goals
// @Accept			json
// @Produce		json
// @Success		200			{object}	GoalResponse
// @Failure		400			{object}	GoalResponse
// @Failure		404			{object}	GoalResponse
// @Failure		500			{object}	GoalResponse
// @Param			id			path		URIID				true	"ID of the envelope"
// @Param			user		query		string				true	"ID of the user"
// @Param			household	query		string				false	"ID of the household"
// @Param			goal		body		ledger.GoalInput	true	"Savings goal"
// @Router			/v1/envelopes/{id}/goal [put]
func (co Controller) SetGoal(c *gin.Context) {
	var uri URIID
	if err := httputil.BindURI(c, &uri); err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	var input ledger.GoalInput
	if err := httputil.BindData(c, &input); err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	goal, err := co.Ledger.SetGoal(c.Request.Context(), scope.caller(), uri.ID.UUID, input)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: &goal})
}

// @Summary		Delete savings goal
// @Description	Deletes the savings goal of an envelope
// @Tags			Goals
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			id			path		URIID	true	"ID of the envelope"
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Router			/v1/envelopes/{id}/goal [delete]
func (co Controller) DeleteGoal(c *gin.Context) {
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

	err := co.Ledger.DeleteGoal(c.Request.Context(), scope.caller(), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
