// Package perm resolves a role's effective permission set and answers
// capability queries. Resolution is fail-closed: unknown roles and
// unknown permission names are simply absent, never an error.
package perm

import (
	"github.com/hamagold/nti-admin/models"
)

// The four fixed roles. Superadmin's permission set is fixed in code
// and cannot be edited.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
	RoleLocalStaff = "local_staff"
)

// FixedRoles lists every role that can exist.
var FixedRoles = []string{RoleSuperadmin, RoleAdmin, RoleStaff, RoleLocalStaff}

// Permission names. Capability queries build these by convention
// ("add_" + entity); permissions outside the convention (view_logs,
// progress_student, ...) are their own explicit names.
const (
	PermViewStudents    = "view_students"
	PermAddStudent      = "add_student"
	PermEditStudent     = "edit_student"
	PermDeleteStudent   = "delete_student"
	PermViewPayments    = "view_payments"
	PermAddPayment      = "add_payment"
	PermProgressStudent = "progress_student"

	PermViewStaff   = "view_staff"
	PermAddStaff    = "add_staff"
	PermEditStaff   = "edit_staff"
	PermDeleteStaff = "delete_staff"
	PermAddSalary   = "add_salary"

	PermViewExpenses  = "view_expenses"
	PermAddExpense    = "add_expense"
	PermEditExpense   = "edit_expense"
	PermDeleteExpense = "delete_expense"

	PermViewDepartments   = "view_departments"
	PermManageDepartments = "manage_departments"

	PermViewReports       = "view_reports"
	PermViewNotifications = "view_notifications"

	PermManageAdmins      = "manage_admins"
	PermManagePermissions = "manage_permissions"
	PermManageSettings    = "manage_settings"

	PermViewLogs  = "view_logs"
	PermClearLogs = "clear_logs"
)

// Catalog returns every defined permission with its display grouping.
func Catalog() []models.Permission {
	return []models.Permission{
		{Name: PermViewStudents, Category: "students", Description: "View student list and profiles"},
		{Name: PermAddStudent, Category: "students", Description: "Enroll new students"},
		{Name: PermEditStudent, Category: "students", Description: "Edit student details"},
		{Name: PermDeleteStudent, Category: "students", Description: "Delete students"},
		{Name: PermViewPayments, Category: "students", Description: "View tuition payments"},
		{Name: PermAddPayment, Category: "students", Description: "Register tuition payments"},
		{Name: PermProgressStudent, Category: "students", Description: "Promote students to the next year"},

		{Name: PermViewStaff, Category: "staff", Description: "View staff list"},
		{Name: PermAddStaff, Category: "staff", Description: "Add staff members"},
		{Name: PermEditStaff, Category: "staff", Description: "Edit staff details"},
		{Name: PermDeleteStaff, Category: "staff", Description: "Delete staff members"},
		{Name: PermAddSalary, Category: "staff", Description: "Register salary payments"},

		{Name: PermViewExpenses, Category: "expenses", Description: "View expenses"},
		{Name: PermAddExpense, Category: "expenses", Description: "Add expenses"},
		{Name: PermEditExpense, Category: "expenses", Description: "Edit expenses"},
		{Name: PermDeleteExpense, Category: "expenses", Description: "Delete expenses"},

		{Name: PermViewDepartments, Category: "departments", Description: "View departments"},
		{Name: PermManageDepartments, Category: "departments", Description: "Create, edit and delete departments"},

		{Name: PermViewReports, Category: "reports", Description: "View financial reports"},
		{Name: PermViewNotifications, Category: "reports", Description: "View overdue payment notifications"},

		{Name: PermManageAdmins, Category: "administration", Description: "Provision and remove accounts"},
		{Name: PermManagePermissions, Category: "administration", Description: "Edit role permission sets"},
		{Name: PermManageSettings, Category: "administration", Description: "Edit application settings"},

		{Name: PermViewLogs, Category: "logs", Description: "View the activity log"},
		{Name: PermClearLogs, Category: "logs", Description: "Clear the activity log"},
	}
}

// AllNames returns the full permission enumeration; this is also the
// superadmin's fixed set.
func AllNames() []string {
	catalog := Catalog()
	names := make([]string, 0, len(catalog))
	for _, p := range catalog {
		names = append(names, p.Name)
	}
	return names
}

// DefaultSets returns the hard-coded default set per editable role,
// used when no stored override exists. Superadmin is deliberately
// absent: its set is AllNames and is not persisted.
func DefaultSets() map[string][]string {
	return map[string][]string{
		RoleAdmin: {
			PermViewStudents, PermAddStudent, PermEditStudent, PermDeleteStudent,
			PermViewPayments, PermAddPayment, PermProgressStudent,
			PermViewStaff, PermAddStaff, PermEditStaff, PermDeleteStaff, PermAddSalary,
			PermViewExpenses, PermAddExpense, PermEditExpense, PermDeleteExpense,
			PermViewDepartments, PermManageDepartments,
			PermViewReports, PermViewNotifications,
			PermManageSettings,
			PermViewLogs, PermClearLogs,
		},
		RoleStaff: {
			PermViewStudents, PermAddStudent, PermEditStudent,
			PermViewPayments, PermAddPayment,
			PermViewStaff,
			PermViewExpenses, PermAddExpense,
			PermViewDepartments,
			PermViewReports, PermViewNotifications,
		},
		RoleLocalStaff: {
			PermViewStudents, PermViewPayments, PermViewNotifications,
		},
	}
}

func known() map[string]bool {
	set := make(map[string]bool)
	for _, name := range AllNames() {
		set[name] = true
	}
	return set
}
