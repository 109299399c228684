package rbac

// RolePermissions is the default policy. Deleting stored files is admin-only.
var RolePermissions = map[string][]string{
	"student": {
		"predict:run",
		"college:view",
		"cutoff:view",
		"cutoff:upload",
		"document:view",
		"document:upload",
		"question:*",
		"test:*",
		"user:change_password",
	},
	"admin": {
		"*", // everything
	},
}
