package models

import "time"

// Roles assignable at registration. There is deliberately no admin role on
// this surface; privileged accounts are provisioned out of band.
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
)

// User is a credential-store record.
//
// PasswordHash, ResetPasswordToken and ResetPasswordExpire carry `json:"-"`
// so they can never leak through a response payload. ResetPasswordToken holds
// the sha256 digest of the token mailed to the user, never the plaintext; a
// zero ResetPasswordExpire means no recovery window is open.
type User struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Role                string    `json:"role"`
	PasswordHash        string    `json:"-"`
	ResetPasswordToken  string    `json:"-"`
	ResetPasswordExpire time.Time `json:"-"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ValidRole reports whether r is one of the registerable roles.
func ValidRole(r string) bool {
	return r == RoleUser || r == RolePublisher
}
