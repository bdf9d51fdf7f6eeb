// nti-admin/internal/handlers/student_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hamagold/nti-admin/internal/currency"
	"github.com/hamagold/nti-admin/internal/ledger"
	"github.com/hamagold/nti-admin/models"
)

type studentListRow struct {
	ID         uint            `json:"ID"`
	Code       string          `json:"code"`
	LastName   string          `json:"lastName"`
	FirstName  string          `json:"firstName"`
	Department string          `json:"department"`
	Year       int             `json:"year"`
	TotalFee   decimal.Decimal `json:"totalFee"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
	Debt       decimal.Decimal `json:"debt"`
}

// ListStudents returns a paginated student list with optional search
// over name and code, and optional department and year filters.
func (a *API) ListStudents(c *gin.Context) {
	var students []models.Student
	var totalRows int64

	query := a.DB.WithContext(c.Request.Context()).Model(&models.Student{}).Preload("Department")

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(currency.NormalizeDigits(search)) + "%"
		query = query.Where(
			"LOWER(last_name) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(code) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if dep := c.Query("departmentId"); dep != "" {
		if id, err := strconv.Atoi(dep); err == nil {
			query = query.Where("department_id = ?", id)
		}
	}
	if year := c.Query("year"); year != "" {
		if y, err := strconv.Atoi(year); err == nil {
			query = query.Where("year = ?", y)
		}
	}

	if err := query.Count(&totalRows).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := query.Scopes(Paginate(c)).Order("last_name, first_name").Find(&students).Error; err != nil {
		respondError(c, err)
		return
	}

	rows := make([]studentListRow, 0, len(students))
	for _, s := range students {
		row := studentListRow{
			ID:         s.ID,
			Code:       s.Code,
			LastName:   s.LastName,
			FirstName:  s.FirstName,
			Year:       s.Year,
			TotalFee:   s.TotalFee,
			PaidAmount: s.PaidAmount,
			Debt:       s.Debt(),
		}
		if s.Department != nil {
			row.Department = s.Department.Name
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, rows, totalRows))
}

// GetStudent returns the full profile with the payment history and
// per-year ledger rows.
func (a *API) GetStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}

	var student models.Student
	err = a.DB.WithContext(c.Request.Context()).
		Preload("Department").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("paid_at DESC") }).
		Preload("YearPayments", func(db *gorm.DB) *gorm.DB { return db.Order("year") }).
		First(&student, id).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"student": student,
		"debt":    student.Debt(),
	})
}

type enrollRequest struct {
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Room         string `json:"room"`
	DepartmentID uint   `json:"departmentId" binding:"required"`
	Year         int    `json:"year"`
	TotalFee     string `json:"totalFee"`
}

// CreateStudent enrolls a new student. TotalFee is optional; when
// empty the department's default yearly fee applies.
func (a *API) CreateStudent(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := ledger.EnrollInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		Room:         req.Room,
		DepartmentID: req.DepartmentID,
		Year:         req.Year,
	}
	if req.TotalFee != "" {
		fee, err := currency.Parse(req.TotalFee)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid total fee"})
			return
		}
		in.TotalFee = &fee
	}

	student, err := a.Engine.EnrollStudent(c.Request.Context(), actorFrom(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

type updateStudentRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Room      string `json:"room"`
}

// UpdateStudent edits contact details only. Balances, year and code
// change exclusively through ledger operations.
func (a *API) UpdateStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}
	var req updateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var student models.Student
	if err := a.DB.WithContext(c.Request.Context()).First(&student, id).Error; err != nil {
		respondError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Room != "" {
		updates["room"] = req.Room
	}
	if len(updates) > 0 {
		if err := a.DB.WithContext(c.Request.Context()).Model(&student).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent removes the student and the attached payment history.
func (a *API) DeleteStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}
	if err := a.Engine.DeleteStudent(c.Request.Context(), actorFrom(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "student deleted"})
}

type paymentRequest struct {
	Amount string `json:"amount" binding:"required"`
	Note   string `json:"note"`
}

// CreatePayment registers a tuition payment against the student's
// current year and returns the receipt together with the amount
// spelled out for printing.
func (a *API) CreatePayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := currency.Parse(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	payment, err := a.Engine.AddPayment(c.Request.Context(), actorFrom(c), ledger.PaymentInput{
		StudentID: uint(id),
		Amount:    amount,
		Note:      req.Note,
	})
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

// ListStudentPayments returns the student's payment history, newest
// first.
func (a *API) ListStudentPayments(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}

	var payments []models.Payment
	if err := a.DB.WithContext(c.Request.Context()).
		Where("student_id = ?", id).
		Order("paid_at DESC").
		Find(&payments).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

type progressRequest struct {
	NewTotalFee string `json:"newTotalFee"`
}

// ProgressStudent promotes the student to the next academic year.
func (a *API) ProgressStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var newFee *decimal.Decimal
	if req.NewTotalFee != "" {
		fee, err := currency.Parse(req.NewTotalFee)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid total fee"})
			return
		}
		newFee = &fee
	}

	student, err := a.Engine.ProgressToNextYear(c.Request.Context(), actorFrom(c), uint(id), newFee)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// InstallmentPreview renders the department's suggested payment plan
// against the student's current balance.
func (a *API) InstallmentPreview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}

	plan, err := a.Engine.InstallmentPreview(c.Request.Context(), actorFrom(c), uint(id), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}
