// nti-admin/internal/handlers/dashboard_handler.go
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/hamagold/nti-admin/internal/currency"
	"github.com/hamagold/nti-admin/models"
)

// Dashboard returns the institute-wide financial summary. The salary
// year defaults to the current calendar year.
func (a *API) Dashboard(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year == 0 {
		year = time.Now().Year()
	}

	summary, err := a.Engine.Summarize(c.Request.Context(), actorFrom(c), year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DepartmentReport returns the per-department fee aggregates.
func (a *API) DepartmentReport(c *gin.Context) {
	report, err := a.Engine.SummarizeDepartments(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// OverdueList returns students behind on payment, most overdue first.
func (a *API) OverdueList(c *gin.Context) {
	overdue, err := a.Deriver.OverdueStudents(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"thresholdDays": a.Deriver.ThresholdDays(c.Request.Context()),
		"students":      overdue,
	})
}

// ExportBalances writes the full student balance sheet as an xlsx
// download.
func (a *API) ExportBalances(c *gin.Context) {
	var students []models.Student
	if err := a.DB.WithContext(c.Request.Context()).
		Preload("Department").
		Order("code").
		Find(&students).Error; err != nil {
		respondError(c, err)
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close excel file", "error", err)
		}
	}()

	sheet := "Balances"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Code", "Last name", "First name", "Department", "Year", "Total fee", "Paid", "Debt"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, s := range students {
		department := ""
		if s.Department != nil {
			department = s.Department.Name
		}
		values := []interface{}{
			s.Code,
			s.LastName,
			s.FirstName,
			department,
			s.Year,
			currency.Format(s.TotalFee),
			currency.Format(s.PaidAmount),
			currency.Format(s.Debt()),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("balances-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		slog.Error("failed to write excel export", "error", err)
	}
}
