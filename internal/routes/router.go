// nti-admin/internal/routes/router.go

// Package routes wires the HTTP surface: the public auth endpoints and
// the permission-gated API groups.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hamagold/nti-admin/internal/handlers"
	"github.com/hamagold/nti-admin/internal/middleware"
	"github.com/hamagold/nti-admin/internal/perm"
)

// SetupRoutes registers every route on the engine.
func SetupRoutes(r *gin.Engine, api *handlers.API) {
	// Public routes, no token required.
	r.POST("/login", api.Login)
	r.GET("/logout", api.Logout)

	// Everything below requires a valid token.
	authRequired := r.Group("/")
	authRequired.Use(middleware.Auth(api.DB, api.RDB, api.JWTKey))
	{
		authRequired.GET("/api/me", api.Me)
		registerAPIRoutes(authRequired, api)
	}
}

// registerAPIRoutes gates each group on the permission its operations
// need. Mutations are checked a second time inside the ledger engine,
// so a route-level gap cannot leak a write.
func registerAPIRoutes(rg *gin.RouterGroup, api *handlers.API) {
	gate := func(permission string) gin.HandlerFunc {
		return middleware.RequirePermission(api.Perms, permission)
	}

	students := rg.Group("/api/students")
	{
		students.GET("", gate(perm.PermViewStudents), api.ListStudents)
		students.GET("/:id", gate(perm.PermViewStudents), api.GetStudent)
		students.POST("", gate(perm.PermAddStudent), api.CreateStudent)
		students.PUT("/:id", gate(perm.PermEditStudent), api.UpdateStudent)
		students.DELETE("/:id", gate(perm.PermDeleteStudent), api.DeleteStudent)

		students.GET("/:id/payments", gate(perm.PermViewPayments), api.ListStudentPayments)
		students.POST("/:id/payments", gate(perm.PermAddPayment), api.CreatePayment)
		students.POST("/:id/progress", gate(perm.PermProgressStudent), api.ProgressStudent)
		students.GET("/:id/installments", gate(perm.PermViewPayments), api.InstallmentPreview)
	}

	staff := rg.Group("/api/staff")
	{
		staff.GET("", gate(perm.PermViewStaff), api.ListStaff)
		staff.GET("/:id", gate(perm.PermViewStaff), api.GetStaff)
		staff.POST("", gate(perm.PermAddStaff), api.CreateStaff)
		staff.DELETE("/:id", gate(perm.PermDeleteStaff), api.DeleteStaff)
		staff.POST("/:id/salaries", gate(perm.PermAddSalary), api.CreateSalaryPayment)
	}

	expenses := rg.Group("/api/expenses")
	{
		expenses.GET("", gate(perm.PermViewExpenses), api.ListExpenses)
		expenses.POST("", gate(perm.PermAddExpense), api.CreateExpense)
		expenses.DELETE("/:id", gate(perm.PermDeleteExpense), api.DeleteExpense)
	}

	departments := rg.Group("/api/departments")
	{
		departments.GET("", gate(perm.PermViewDepartments), api.ListDepartments)
		departments.POST("", gate(perm.PermManageDepartments), api.CreateDepartment)
		departments.PUT("/:id", gate(perm.PermManageDepartments), api.UpdateDepartment)
		departments.DELETE("/:id", gate(perm.PermManageDepartments), api.DeleteDepartment)
	}

	reports := rg.Group("/api/reports")
	{
		reports.GET("/summary", gate(perm.PermViewReports), api.Dashboard)
		reports.GET("/departments", gate(perm.PermViewReports), api.DepartmentReport)
		reports.GET("/export", gate(perm.PermViewReports), api.ExportBalances)
	}

	rg.GET("/api/notifications", gate(perm.PermViewNotifications), api.OverdueList)

	roles := rg.Group("/api/roles")
	{
		roles.GET("", gate(perm.PermManagePermissions), api.ListRoles)
		roles.GET("/permissions", gate(perm.PermManagePermissions), api.ListPermissions)
		roles.PUT("/:name", gate(perm.PermManagePermissions), api.UpdateRolePermissions)
	}

	users := rg.Group("/api/users")
	users.Use(gate(perm.PermManageAdmins))
	{
		users.GET("", api.ListUsers)
		users.POST("", api.CreateUser)
		users.PUT("/:id", api.UpdateUser)
		users.DELETE("/:id", api.DeleteUser)
	}

	settings := rg.Group("/api/settings")
	{
		settings.GET("", gate(perm.PermManageSettings), api.GetSettings)
		settings.PUT("", gate(perm.PermManageSettings), api.UpdateSettings)
	}

	activity := rg.Group("/api/activity")
	{
		activity.GET("", gate(perm.PermViewLogs), api.ListActivity)
		activity.DELETE("", gate(perm.PermClearLogs), api.ClearActivity)
		activity.GET("/ws", gate(perm.PermViewLogs), api.ActivityFeedWS)
	}
}
