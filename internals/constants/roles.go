package constants

import "fmt"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

// Account approval states (accounts are provisioned pending and must be
// approved by an admin before login works).
const (
	UserStatusPending  = "pending"
	UserStatusApproved = "approved"
	UserStatusRejected = "rejected"
)

const (
	ErrOnlyStaffCanAccess  = "❌ Only teachers or admins may access %s."
	ErrOnlyAdminsCanAccess = "❌ Only admins may access %s."
)

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}
