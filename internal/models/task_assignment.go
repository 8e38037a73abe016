package models

// TaskAssignment links a user to a task. The composite primary key keeps at
// most one row per (task, user) pair.
type TaskAssignment struct {
	TaskID string `gorm:"type:char(36);primarykey" json:"task_id"`
	UserID string `gorm:"type:char(36);primarykey;index" json:"user_id"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (TaskAssignment) TableName() string {
	return "task_assignees"
}
