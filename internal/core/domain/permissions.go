package domain

// PermissionSet is the fixed bundle of interface sections and actions a role
// may use. It is derived from the role, never stored.
type PermissionSet struct {
	Sections []string `json:"interface_sections"`
	Actions  []string `json:"actions"`
}

// HasSection reports whether the set grants access to an interface section.
func (p PermissionSet) HasSection(section string) bool {
	return contains(p.Sections, section)
}

// HasAction reports whether the set grants an action.
func (p PermissionSet) HasAction(action string) bool {
	return contains(p.Actions, action)
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}

// anonymousPermissions is what unauthenticated callers get.
var anonymousPermissions = PermissionSet{
	Sections: []string{"login", "register", "products", "pets"},
	Actions:  []string{"view_products", "view_pets"},
}

var clientPermissions = PermissionSet{
	Sections: []string{"profile", "products", "pets", "orders", "appointments", "chat"},
	Actions: []string{
		"view_products",
		"view_pets",
		"create_order",
		"view_own_orders",
		"book_appointment",
		"view_own_appointments",
		"send_message",
	},
}

var sellerPermissions = PermissionSet{
	Sections: []string{"profile", "products", "pets", "sales", "chat"},
	Actions: []string{
		"view_products",
		"create_product",
		"update_own_product",
		"delete_own_product",
		"view_pets",
		"create_pet",
		"update_own_pet",
		"delete_own_pet",
		"view_own_sales",
		"send_message",
	},
}

var veterinarianPermissions = PermissionSet{
	Sections: []string{"profile", "appointments", "pets", "chat"},
	Actions: []string{
		"view_appointments",
		"update_appointment",
		"view_pets",
		"send_message",
	},
}

var adminPermissions = PermissionSet{
	Sections: []string{"profile", "users", "products", "pets", "orders", "appointments", "categories", "chat"},
	Actions: []string{
		"view_all_users",
		"update_user",
		"ban_user",
		"delete_user",
		"view_all_products",
		"update_any_product",
		"delete_any_product",
		"view_all_pets",
		"update_any_pet",
		"delete_any_pet",
		"view_all_orders",
		"update_any_order",
		"delete_any_order",
		"view_all_appointments",
		"update_any_appointment",
		"manage_categories",
		"send_message",
	},
}

// ownerPermissions is the admin set plus owner-only management grants.
// Built by explicit union so the containment property holds by construction.
var ownerPermissions = unionPermissions(adminPermissions, PermissionSet{
	Sections: []string{"system", "stats"},
	Actions: []string{
		"manage_admins",
		"manage_roles",
		"view_system_stats",
		"configure_system",
	},
})

var rolePermissions = map[Role]PermissionSet{
	RoleClient:       clientPermissions,
	RoleSeller:       sellerPermissions,
	RoleVeterinarian: veterinarianPermissions,
	RoleAdmin:        adminPermissions,
	RoleOwner:        ownerPermissions,
}

// PermissionsFor returns the permission set for a role. It is total: an
// unknown role falls back to the client set.
func PermissionsFor(role Role) PermissionSet {
	if p, ok := rolePermissions[role]; ok {
		return p
	}
	return clientPermissions
}

// AnonymousPermissions returns the minimal set served to unauthenticated callers.
func AnonymousPermissions() PermissionSet {
	return anonymousPermissions
}

func unionPermissions(base, extra PermissionSet) PermissionSet {
	out := PermissionSet{
		Sections: make([]string, 0, len(base.Sections)+len(extra.Sections)),
		Actions:  make([]string, 0, len(base.Actions)+len(extra.Actions)),
	}
	out.Sections = append(out.Sections, base.Sections...)
	for _, s := range extra.Sections {
		if !contains(out.Sections, s) {
			out.Sections = append(out.Sections, s)
		}
	}
	out.Actions = append(out.Actions, base.Actions...)
	for _, a := range extra.Actions {
		if !contains(out.Actions, a) {
			out.Actions = append(out.Actions, a)
		}
	}
	return out
}
