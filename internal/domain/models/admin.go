// internal/domain/models/admin.go
package models

import "time"

// Admin roles (closed set).
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// IsValidRole reports whether r is one of the two admin roles.
func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// AdminUser is a directory record for a privileged user.
//
// The _id matches the identity provider's subject id for the account, so a
// verified bearer token maps straight to its directory record. The identity
// provider is authoritative for authentication; this record is authoritative
// for authorization (the role).
type AdminUser struct {
	ID          string     `bson:"_id" json:"id"`
	Email       string     `bson:"email" json:"email"`
	DisplayName string     `bson:"display_name" json:"displayName"`
	Role        string     `bson:"role" json:"role"` // admin | super_admin
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	CreatedBy   string     `bson:"created_by,omitempty" json:"createdBy,omitempty"` // email of the creating super_admin
	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"lastLoginAt"`
}
