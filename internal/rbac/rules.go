package rbac

// Default policy: students take tests and see their own results; admins do everything.
var RolePermissions = map[string][]string{
	"student": {
		"category:list",
		"session:create",
		"session:take",
		"result:view-own",
		"user:change_password",
	},
	"admin": {
		"*", // everything, including bank:*, users:list and result:view-all
	},
}
