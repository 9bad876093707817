package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"attendlog.com/attendlog/model"
	"attendlog.com/attendlog/store"
	"attendlog.com/attendlog/utils"
	"attendlog.com/attendlog/web/common"
)

type EmployeeEndpoint struct {
	store *store.Store
}

func RegisterEmployees(r *gin.RouterGroup, s *store.Store) {
	endpoint := &EmployeeEndpoint{store: s}
	r.GET("/employees", endpoint.List)
	r.POST("/employees", endpoint.Create)
	r.PUT("/employees/:id", endpoint.Update)
	r.DELETE("/employees/:id", endpoint.Delete)
	r.POST("/employees/import", endpoint.Import)
}

func (ep *EmployeeEndpoint) List(c *gin.Context) {
	employees, err := ep.store.ListEmployees(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(employees))
}

type EmployeeParams struct {
	Name  string `json:"name" binding:"required"`
	Group string `json:"group" binding:"required"`
}

func (ep *EmployeeEndpoint) Create(c *gin.Context) {
	var params EmployeeParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	emp := model.Employee{Name: params.Name, Group: strings.ToLower(params.Group)}
	if err := ep.store.CreateEmployee(c.Request.Context(), &emp); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(emp))
}

func (ep *EmployeeEndpoint) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	var params EmployeeParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	emp := model.Employee{EmployeeID: id, Name: params.Name, Group: strings.ToLower(params.Group)}
	if err := ep.store.UpdateEmployee(c.Request.Context(), &emp); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(emp))
}

func (ep *EmployeeEndpoint) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	if err := ep.store.DeleteEmployee(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

// Import reads a name,group CSV and adds each row to the roster. A header row
// starting with "name" is skipped.
func (ep *EmployeeEndpoint) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("missing csv file"))
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
		return
	}
	defer f.Close()

	records, err := utils.ParseCSV(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
		return
	}

	rows := utils.Filter(records, func(row []string) bool {
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" || strings.TrimSpace(row[1]) == "" {
			return false
		}
		return !strings.EqualFold(strings.TrimSpace(row[0]), "name")
	})

	imported := 0
	for _, row := range rows {
		emp := model.Employee{
			Name:  strings.TrimSpace(row[0]),
			Group: strings.ToLower(strings.TrimSpace(row[1])),
		}
		if err := ep.store.CreateEmployee(c.Request.Context(), &emp); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		imported++
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"imported": imported}))
}
