package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/internal/httputil"
	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type IncomeResponse struct {
	Data  *models.Income `json:"data"`                                                   // Data for the income
	Error *string        `json:"error" example:"there is no income matching your query"` // The error, if any occurred
}

type IncomeListResponse struct {
	Data  []models.Income `json:"data"`                                  // List of incomes
	Error *string         `json:"error" example:"the month must be set"` // The error, if any occurred
}

type QueryIncomeDelete struct {
	QueryScope
	PriorAmount *decimal.Decimal `form:"priorAmount"` // If set, the income is only deleted if its amount still matches
}

// RegisterIncomeRoutes registers the routes for incomes with
// the RouterGroup that is passed.
func (co Controller) RegisterIncomeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsIncomes)
		r.GET("", co.GetIncomes)
		r.POST("", co.CreateIncome)
	}

	// Income with ID
	{
		r.OPTIONS("/:id", co.OptionsIncomeDetail)
		r.PATCH("/:id", co.UpdateIncome)
		r.DELETE("/:id", co.DeleteIncome)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Router			/v1/incomes [options]
func (co Controller) OptionsIncomes(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [options]
func (co Controller) OptionsIncomeDetail(c *gin.Context) {
	httputil.OptionsPatchDelete(c)
}

// @Summary		Get incomes
// @Description	Returns the incomes of the month
// @Tags			Incomes
// @Produce		json
// @Success		200			{object}	IncomeListResponse
// @Failure		400			{object}	IncomeListResponse
// @Failure		500			{object}	IncomeListResponse
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Param			month		query		string	true	"The month in YYYY-MM format"
// @Router			/v1/incomes [get]
func (co Controller) GetIncomes(c *gin.Context) {
	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeListResponse{Error: &e})
		return
	}

	incomes, err := co.Ledger.Incomes(c.Request.Context(), scope.caller())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, IncomeListResponse{Data: incomes})
}

// @Summary		Create income
// @Description	Adds money to the unallocated pool of the month
// @Tags			Incomes
// @Accept			json
// @Produce		json
// @Success		201			{object}	IncomeResponse
// @Failure		400			{object}	IncomeResponse
// @Failure		500			{object}	IncomeResponse
// @Param			user		query		string				true	"ID of the user"
// @Param			household	query		string				false	"ID of the household"
// @Param			month		query		string				true	"The month in YYYY-MM format"
// @Param			income		body		ledger.IncomeInput	true	"Income"
// @Router			/v1/incomes [post]
func (co Controller) CreateIncome(c *gin.Context) {
	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	var input ledger.IncomeInput
	if err := httputil.BindData(c, &input); err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	income, err := co.Ledger.AddIncome(c.Request.Context(), scope.caller(), input)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, IncomeResponse{Data: &income})
}

// @Summary		Update income
// @Description	Updates an income. Only values to be updated need to be specified. If priorAmount is set and does not match the stored amount, the update is rejected.
// @Tags			Incomes
// @Accept			json
// @Produce		json
// @Success		200			{object}	IncomeResponse
// @Failure		400			{object}	IncomeResponse
// @Failure		404			{object}	IncomeResponse
// @Failure		409			{object}	IncomeResponse
// @Failure		500			{object}	IncomeResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user		query		string				true	"ID of the user"
// @Param			household	query		string				false	"ID of the household"
// @Param			income		body		ledger.IncomeUpdate	true	"Income"
// @Router			/v1/incomes/{id} [patch]
func (co Controller) UpdateIncome(c *gin.Context) {
	var uri URIID
	if err := httputil.BindURI(c, &uri); err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	var scope QueryScope
	if err := httputil.BindQuery(c, &scope); err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	var update ledger.IncomeUpdate
	if err := httputil.BindData(c, &update); err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	income, err := co.Ledger.UpdateIncome(c.Request.Context(), scope.caller(), uri.ID.UUID, update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, IncomeResponse{Data: &income})
}

// @Summary		Delete income
// @Description	Deletes an income and removes its amount from the unallocated pool
// @Tags			Incomes
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		409			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user		query		string	true	"ID of the user"
// @Param			household	query		string	false	"ID of the household"
// @Param			priorAmount	query		string	false	"The amount the client last saw"
// @Router			/v1/incomes/{id} [delete]
func (co Controller) DeleteIncome(c *gin.Context) {
	var uri URIID
	if err := httputil.BindURI(c, &uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var query QueryIncomeDelete
	if err := httputil.BindQuery(c, &query); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err := co.Ledger.DeleteIncome(c.Request.Context(), query.caller(), uri.ID.UUID, query.PriorAmount)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
