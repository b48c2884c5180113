package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/internal/httputil"
	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/internal/models"
	"github.com/gin-gonic/gin"
)

type ActivityResponse struct {
	Data  *models.ActivityLogEntry `json:"data"`                                                  // Data for the activity
	Error *string                  `json:"error" example:"this activity has already been undone"` // The error, if any occurred
}

type ActivityListResponse struct {
	Data  []models.ActivityLogEntry `json:"data"`                                 // List of activities
	Error *string                   `json:"error" example:"the user must be set"` // The error, if any occurred
}

type QueryActivities struct {
	QueryScope
	QueryPage
	Action models.ActivityAction `form:"action"`                                         // Filter by action
	Status models.ActivityStatus `form:"status" binding:"omitempty,oneof=active undone"` // Filter by status
}

// RegisterActivityRoutes registers the routes for the activity log with
// the RouterGroup that is passed.
func (co Controller) RegisterActivityRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsActivities)
	r.GET("", co.GetActivities)

	r.OPTIONS("/:id/undo", co.OptionsUndo)
	r.POST("/:id/undo", co.Undo)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Activities
// @Success		204
// @Router			/v1/activities [options]
func (co Controller) OptionsActivities(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get activities
// @Description	Returns the activity log, newest first
// @Tags			Activities
// @Produce		json
// @Success		200			{object}	ActivityListResponse
// @Failure		400			{object}	ActivityListResponse
// @Failure		500			{object}	ActivityListResponse
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Param			month		query		string	false	"Only activities of this month, in YYYY-MM format"
// @Param			action		query		string	false	"Filter by action"
// @Param			status		query		string	false	"Filter by status"	Enums(active, undone)
// @Param			offset		query		uint	false	"The offset of the first activity returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of activities to return. Defaults to all."
// @Router			/v1/activities [get]
func (co Controller) GetActivities(c *gin.Context) {
	var query QueryActivities
	if err := httputil.BindQuery(c, &query); err != nil {
		e := err.Error()
		c.JSON(status(err), ActivityListResponse{Error: &e})
		return
	}

	entries, err := co.Ledger.Activities(c.Request.Context(), query.caller(), ledger.ActivityFilter{
		Month:  query.Month,
		Action: query.Action,
		Status: query.Status,
		Offset: query.Offset,
		Limit:  query.Limit,
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ActivityListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ActivityListResponse{Data: entries})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Activities
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/activities/{id}/undo [options]
func (co Controller) OptionsUndo(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Undo activity
// @Description	Reverses the effect of an activity. Each activity can only be undone once.
// @Tags			Activities
// @Produce		json
// @Success		200			{object}	ActivityResponse
// @Failure		400			{object}	ActivityResponse
// @Failure		404			{object}	ActivityResponse
// @Failure		409			{object}	ActivityResponse
// @Failure		500			{object}	ActivityResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Router			/v1/activities/{id}/undo [post]
func (co Controller) Undo(c *gin.Context) {
	var uri URIID
	if err := httputil.BindURI(c, &uri); err != nil {
		e := err.Error()
		c.JSON(status(err), ActivityResponse{Error: &e})
		return
	}

	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), ActivityResponse{Error: &e})
		return
	}

	entry, err := co.Ledger.Undo(c.Request.Context(), scope.caller(), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ActivityResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ActivityResponse{Data: &entry})
}
