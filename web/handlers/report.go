package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"attendlog.com/attendlog/model"
	"attendlog.com/attendlog/store"
	"attendlog.com/attendlog/web/common"
)

type ReportEndpoint struct {
	store *store.Store
}

func RegisterReports(r *gin.RouterGroup, s *store.Store) {
	endpoint := &ReportEndpoint{store: s}
	r.POST("/attendance/search", endpoint.Search)
	r.GET("/attendance/export", endpoint.Export)
}

// RegisterMaintenance mounts the destructive admin-only routes.
func RegisterMaintenance(r *gin.RouterGroup, s *store.Store) {
	endpoint := &ReportEndpoint{store: s}
	r.POST("/attendance/purge-duplicates", endpoint.PurgeDuplicates)
}

type ReportSearchParams struct {
	StartDate  *common.DateOnly `json:"startDate"`
	EndDate    *common.DateOnly `json:"endDate"`
	EmployeeID int              `json:"employeeId"`
	Name       string           `json:"name"`
	Group      string           `json:"group"`
	Kind       string           `json:"kind"`
}

func (ep *ReportEndpoint) Search(c *gin.Context) {
	var searchParams ReportSearchParams
	if err := c.ShouldBindJSON(&searchParams); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	limit := 1000
	offset := 0
	if val, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = val
	}
	if val, err := strconv.Atoi(c.Query("offset")); err == nil {
		offset = val
	}

	params := store.SearchParams{
		EmployeeID: searchParams.EmployeeID,
		Name:       searchParams.Name,
		Group:      searchParams.Group,
		Kind:       model.ActionKind(searchParams.Kind),
		Limit:      limit,
		Offset:     offset,
	}
	if searchParams.StartDate != nil && !searchParams.StartDate.IsZero() {
		params.DateFrom = searchParams.StartDate.Format("2006-01-02")
	}
	if searchParams.EndDate != nil && !searchParams.EndDate.IsZero() {
		params.DateTo = searchParams.EndDate.Format("2006-01-02")
	}

	events, total, err := ep.store.SearchEvents(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(events, total))
}

func (ep *ReportEndpoint) PurgeDuplicates(c *gin.Context) {
	removed, err := ep.store.PurgeDuplicates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"removed": removed}))
}
