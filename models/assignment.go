package models

import "time"

// Assignment grants an editor the right to act on one category. CanApprove
// and CanPublish gate the terminal actions within that category. Rows are
// managed by the admin endpoints and read-only from the engine's side.
type Assignment struct {
	AssignmentID int        `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	EditorID     int        `gorm:"column:editor_id" json:"editor_id"`
	Category     string     `gorm:"column:category" json:"category"`
	CanApprove   bool       `gorm:"column:can_approve" json:"can_approve"`
	CanPublish   bool       `gorm:"column:can_publish" json:"can_publish"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Editor *User `gorm:"foreignKey:EditorID" json:"editor,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}
