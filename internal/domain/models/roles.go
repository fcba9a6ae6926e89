// internal/domain/models/roles.go
package models

import "strings"

// Roles as the evaluation API reports them. The set is fixed server-side;
// unknown values still render (see RoleLabel) so a new role added upstream
// does not break this client.
const (
	RoleSalesDirector        = "SALES_DIRECTOR"
	RoleRegionalSalesManager = "REGIONAL_SALES_MANAGER"
	RoleSalesLead            = "SALES_LEAD"
	RoleSalesperson          = "SALESPERSON"
	RoleAdmin                = "ADMIN"
)

// KnownRoles lists the fixed role enumeration in display order.
var KnownRoles = []string{
	RoleSalesDirector,
	RoleRegionalSalesManager,
	RoleSalesLead,
	RoleSalesperson,
	RoleAdmin,
}

// roleLabels maps canonical role values to the labels shown in the UI.
var roleLabels = map[string]string{
	RoleSalesDirector:        "Sales Director",
	RoleRegionalSalesManager: "Regional Sales Manager",
	RoleSalesLead:            "Sales Lead",
	RoleSalesperson:          "Salesperson",
	RoleAdmin:                "Administrator",
}

// NormalizeRole maps free-form role strings to their canonical form:
// trimmed and uppercased. It does not reject unknown roles.
func NormalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

// RoleLabel returns the display label for a role. Unrecognized roles come
// back unchanged so rendering stays total when the server grows new roles.
func RoleLabel(role string) string {
	if label, ok := roleLabels[NormalizeRole(role)]; ok {
		return label
	}
	return role
}

// IsKnownRole reports whether role is one of the fixed enumeration values.
func IsKnownRole(role string) bool {
	_, ok := roleLabels[NormalizeRole(role)]
	return ok
}
