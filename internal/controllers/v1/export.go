package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/internal/httputil"
	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/gin-gonic/gin"
)

type ExportResponse struct {
	Data  *ledger.Export `json:"data"`                                  // Snapshot of the month
	Error *string        `json:"error" example:"the month must be set"` // The error, if any occurred
}

// RegisterExportRoutes registers the routes for exports with
// the RouterGroup that is passed.
func (co Controller) RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsExport)
	r.GET("", co.GetExport)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/v1/export [options]
func (co Controller) OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Export month
// @Description	Returns a read-only snapshot of the month with its envelopes, transactions and incomes, e.g. to render reports
// @Tags			Export
// @Produce		json
// @Success		200			{object}	ExportResponse
// @Failure		400			{object}	ExportResponse
// @Failure		500			{object}	ExportResponse
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Param			month		query		string	true	"The month in YYYY-MM format"
// @Router			/v1/export [get]
func (co Controller) GetExport(c *gin.Context) {
	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), ExportResponse{Error: &e})
		return
	}

	export, err := co.Ledger.Export(c.Request.Context(), scope.caller())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExportResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ExportResponse{Data: &export})
}
