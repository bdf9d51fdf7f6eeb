// nti-admin/internal/handlers/expense_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hamagold/nti-admin/internal/currency"
	"github.com/hamagold/nti-admin/internal/ledger"
	"github.com/hamagold/nti-admin/models"
)

// ListExpenses returns a paginated expense list with optional category
// and month filters.
func (a *API) ListExpenses(c *gin.Context) {
	var expenses []models.Expense
	var totalRows int64

	query := a.DB.WithContext(c.Request.Context()).Model(&models.Expense{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if month := c.Query("month"); month != "" {
		if t, err := time.Parse("2006-01", month); err == nil {
			query = query.Where("spent_at >= ? AND spent_at < ?", t, t.AddDate(0, 1, 0))
		}
	}

	if err := query.Count(&totalRows).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := query.Scopes(Paginate(c)).Order("spent_at DESC").Find(&expenses).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, expenses, totalRows))
}

type expenseRequest struct {
	Category string `json:"category" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
	Note     string `json:"note"`
	SpentAt  string `json:"spentAt"`
}

// CreateExpense records an operating expense.
func (a *API) CreateExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := currency.Parse(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	in := ledger.ExpenseInput{
		Category: req.Category,
		Amount:   amount,
		Note:     req.Note,
	}
	if req.SpentAt != "" {
		t, err := time.Parse("2006-01-02", req.SpentAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spentAt date, expected YYYY-MM-DD"})
			return
		}
		in.SpentAt = t
	}

	expense, err := a.Engine.AddExpense(c.Request.Context(), actorFrom(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// DeleteExpense removes an expense entry.
func (a *API) DeleteExpense(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}
	if err := a.Engine.DeleteExpense(c.Request.Context(), actorFrom(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}
