// nti-admin/internal/handlers/department_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/Knetic/govaluate"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hamagold/nti-admin/internal/currency"
	"github.com/hamagold/nti-admin/models"
)

// ListDepartments returns all departments with their installment
// plans. Reference data is small enough to skip pagination.
func (a *API) ListDepartments(c *gin.Context) {
	var departments []models.Department
	if err := a.DB.WithContext(c.Request.Context()).
		Preload("Installments").
		Order("name").
		Find(&departments).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, departments)
}

type installmentRequest struct {
	Month   int    `json:"month" binding:"required,min=1,max=12"`
	Day     int    `json:"day" binding:"required,min=1,max=31"`
	Formula string `json:"formula" binding:"required"`
}

type departmentRequest struct {
	Name             string               `json:"name" binding:"required"`
	Icon             string               `json:"icon"`
	Color            string               `json:"color"`
	DefaultYearlyFee string               `json:"defaultYearlyFee" binding:"required"`
	Installments     []installmentRequest `json:"installments"`
}

func (r *departmentRequest) toModel() (models.Department, error) {
	fee, err := currency.Parse(r.DefaultYearlyFee)
	if err != nil {
		return models.Department{}, err
	}

	dep := models.Department{
		Name:             r.Name,
		Icon:             r.Icon,
		Color:            r.Color,
		DefaultYearlyFee: fee,
	}
	for _, ins := range r.Installments {
		// Reject unparseable formulas at write time, not when a
		// student's plan is previewed.
		if _, err := govaluate.NewEvaluableExpression(ins.Formula); err != nil {
			return models.Department{}, err
		}
		dep.Installments = append(dep.Installments, models.PlanInstallment{
			Month:   ins.Month,
			Day:     ins.Day,
			Formula: ins.Formula,
		})
	}
	return dep, nil
}

// CreateDepartment adds a department with its default fee and
// optional installment plan.
func (a *API) CreateDepartment(c *gin.Context) {
	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dep, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.DB.WithContext(c.Request.Context()).Create(&dep).Error; err != nil {
		respondError(c, err)
		return
	}

	actor := actorFrom(c)
	if err := a.Recorder.Record(c.Request.Context(), models.ActivitySetting,
		"created department "+dep.Name, actor.Name, nil); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dep)
}

// UpdateDepartment replaces a department's fields and installment
// plan. Existing students keep their already-assigned fees.
func (a *API) UpdateDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid department id"})
		return
	}
	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dep models.Department
	if err := a.DB.WithContext(c.Request.Context()).First(&dep, id).Error; err != nil {
		respondError(c, err)
		return
	}

	err = a.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&dep).Updates(map[string]interface{}{
			"name":               updated.Name,
			"icon":               updated.Icon,
			"color":              updated.Color,
			"default_yearly_fee": updated.DefaultYearlyFee,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("department_id = ?", dep.ID).Delete(&models.PlanInstallment{}).Error; err != nil {
			return err
		}
		for i := range updated.Installments {
			updated.Installments[i].DepartmentID = dep.ID
		}
		if len(updated.Installments) > 0 {
			if err := tx.Create(&updated.Installments).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dep)
}

// DeleteDepartment removes a department. Students pointing at it keep
// their assigned fees and show as unassigned in reports.
func (a *API) DeleteDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid department id"})
		return
	}

	var dep models.Department
	if err := a.DB.WithContext(c.Request.Context()).First(&dep, id).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := a.DB.WithContext(c.Request.Context()).Delete(&dep).Error; err != nil {
		respondError(c, err)
		return
	}

	actor := actorFrom(c)
	if err := a.Recorder.Record(c.Request.Context(), models.ActivityDelete,
		"deleted department "+dep.Name, actor.Name, nil); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "department deleted"})
}
