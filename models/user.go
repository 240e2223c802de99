package models

import "time"

// Role values stored in users.role. The API layer authenticates a user and
// hands the engine an actor carrying one of these.
const (
	RoleContributor  = "CONTRIBUTOR"
	RoleAuthor       = "AUTHOR"
	RoleSeniorWriter = "SENIOR_WRITER"
	RoleEditor       = "EDITOR"
	RoleAdmin        = "ADMIN"
	RoleSuperAdmin   = "SUPER_ADMIN"
)

type User struct {
	UserID      int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	DisplayName string     `gorm:"column:display_name" json:"display_name"`
	Email       string     `gorm:"column:email;unique" json:"email"`
	Password    string     `gorm:"column:password" json:"-"`
	Role        string     `gorm:"column:role" json:"role"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsWriterRole reports whether the role authors content of its own.
func IsWriterRole(role string) bool {
	switch role {
	case RoleContributor, RoleAuthor, RoleSeniorWriter:
		return true
	}
	return false
}

// IsAdminRole reports whether the role bypasses category assignment checks.
func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}
