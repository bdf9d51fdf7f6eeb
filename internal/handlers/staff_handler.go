// nti-admin/internal/handlers/staff_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hamagold/nti-admin/internal/currency"
	"github.com/hamagold/nti-admin/internal/ledger"
	"github.com/hamagold/nti-admin/models"
)

// ListStaff returns a paginated staff list with optional search and
// role filter.
func (a *API) ListStaff(c *gin.Context) {
	var staff []models.Staff
	var totalRows int64

	query := a.DB.WithContext(c.Request.Context()).Model(&models.Staff{}).Preload("Department")

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(full_name) LIKE ?", pattern)
	}
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	if err := query.Count(&totalRows).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := query.Scopes(Paginate(c)).Order("full_name").Find(&staff).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, staff, totalRows))
}

// GetStaff returns one staff member with this year's salary history.
func (a *API) GetStaff(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff id"})
		return
	}

	var staff models.Staff
	if err := a.DB.WithContext(c.Request.Context()).
		Preload("Department").
		Preload("SalaryPayments").
		First(&staff, id).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, staff)
}

type staffRequest struct {
	FullName      string `json:"fullName" binding:"required"`
	Role          string `json:"role" binding:"required"`
	Phone         string `json:"phone"`
	DepartmentID  uint   `json:"departmentId"`
	MonthlySalary string `json:"monthlySalary" binding:"required"`
}

// CreateStaff registers a teacher or employee.
func (a *API) CreateStaff(c *gin.Context) {
	var req staffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	salary, err := currency.Parse(req.MonthlySalary)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid monthly salary"})
		return
	}

	var depID *uint
	if req.DepartmentID != 0 {
		depID = &req.DepartmentID
	}
	staff, err := a.Engine.AddStaff(c.Request.Context(), actorFrom(c), ledger.StaffInput{
		FullName:      req.FullName,
		Role:          req.Role,
		Phone:         req.Phone,
		DepartmentID:  depID,
		MonthlySalary: salary,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, staff)
}

// DeleteStaff removes a staff member. Paid salary rows remain in the
// expense history.
func (a *API) DeleteStaff(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff id"})
		return
	}
	if err := a.Engine.DeleteStaff(c.Request.Context(), actorFrom(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "staff member deleted"})
}

type salaryRequest struct {
	Month  int    `json:"month" binding:"required"`
	Year   int    `json:"year" binding:"required"`
	Amount string `json:"amount"`
}

// CreateSalaryPayment pays one month's salary. Amount is optional and
// defaults to the staff member's configured monthly salary.
func (a *API) CreateSalaryPayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff id"})
		return
	}
	var req salaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := ledger.SalaryInput{
		StaffID: uint(id),
		Month:   req.Month,
		Year:    req.Year,
	}
	if req.Amount != "" {
		amount, err := currency.Parse(req.Amount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
			return
		}
		in.Amount = amount
	}

	payment, err := a.Engine.AddSalaryPayment(c.Request.Context(), actorFrom(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment":         payment,
		"amountFormatted": currency.Format(payment.Amount),
		"amountInWords":   currency.InWords(payment.Amount),
	})
}
