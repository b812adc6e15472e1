package rbac

const (
	RoleEmployee = "employee"
	RoleSecurity = "security"
	RoleAdmin    = "admin"
)

const ResourceRecord = "record"

const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionRemove = "remove"
	ActionDelete = "delete"
)

// Employees register and withdraw their visitors, the security desk checks
// them in and out, and admins may also hard-delete.
var defaultPolicies = [][]string{
	{RoleEmployee, ResourceRecord, ActionCreate},
	{RoleEmployee, ResourceRecord, ActionRead},
	{RoleEmployee, ResourceRecord, ActionRemove},
	{RoleSecurity, ResourceRecord, ActionUpdate},
	{RoleAdmin, ResourceRecord, "*"},
}

var defaultInheritance = [][]string{
	{RoleSecurity, RoleEmployee},
	{RoleAdmin, RoleSecurity},
}
