package domain

// CallerContext identifies the authenticated caller for the duration of one
// request. It is built once by the auth middleware and passed explicitly to
// every core operation; handlers treat it as read-only.
type CallerContext struct {
	UserID      string
	Role        Role
	Permissions PermissionSet
}

// IsStaff reports whether the caller is an admin or the owner.
func (c CallerContext) IsStaff() bool {
	return c.Role.IsStaff()
}

// CanManageListing reports whether the caller may update or delete a
// product or pet listed by sellerID. Staff may manage anything; a seller
// only their own listings.
func CanManageListing(sellerID string, caller CallerContext) bool {
	if caller.IsStaff() {
		return true
	}
	return caller.Role == RoleSeller && caller.UserID == sellerID
}

// CanAccessOrder reports whether the caller may read the order: staff, the
// client who placed it, or a seller with a line item in it.
func CanAccessOrder(o *Order, caller CallerContext) bool {
	if caller.IsStaff() {
		return true
	}
	switch caller.Role {
	case RoleClient:
		return o.ClientID == caller.UserID
	case RoleSeller:
		return o.HasSeller(caller.UserID)
	}
	return false
}

// CanTransitionOrder reports whether the caller may move the order to next,
// independent of whether the state machine allows the move. Staff may drive
// any transition; a seller with a line item only forward ones; the client
// who placed the order may only cancel it.
func CanTransitionOrder(o *Order, next OrderStatus, caller CallerContext) bool {
	if caller.IsStaff() {
		return true
	}
	switch caller.Role {
	case RoleSeller:
		return o.HasSeller(caller.UserID) && next != StatusCancelled
	case RoleClient:
		return o.ClientID == caller.UserID && next == StatusCancelled
	}
	return false
}

// CanChangeRole reports whether the caller may set the target user's role
// to newRole. Any change that touches the admin or owner level, whether on
// the current role or the new one, requires the owner.
func CanChangeRole(target *User, newRole Role, caller CallerContext) bool {
	if caller.Role == RoleOwner {
		return true
	}
	if caller.Role != RoleAdmin {
		return false
	}
	return !target.Role.IsStaff() && !newRole.IsStaff()
}

// CanAccessAppointment reports whether the caller may read the appointment.
func CanAccessAppointment(a *Appointment, caller CallerContext) bool {
	if caller.IsStaff() {
		return true
	}
	switch caller.Role {
	case RoleClient:
		return a.ClientID == caller.UserID
	case RoleVeterinarian:
		return a.VetID == caller.UserID
	}
	return false
}

// CanUpdateAppointment reports whether the caller may move the appointment
// to next. The assigned veterinarian and staff may set any status; the
// booking client may only cancel.
func CanUpdateAppointment(a *Appointment, next AppointmentStatus, caller CallerContext) bool {
	if caller.IsStaff() {
		return true
	}
	switch caller.Role {
	case RoleVeterinarian:
		return a.VetID == caller.UserID
	case RoleClient:
		return a.ClientID == caller.UserID && next == AppointmentCancelled
	}
	return false
}
