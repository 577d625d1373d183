package model

type Task struct {
	TaskID    string `gorm:"column:task_id;type:text;primaryKey"`
	Title     string `gorm:"column:title;type:text;not null"`
	Notes     string `gorm:"column:notes;type:text;not null;default:''"`
	Status    string `gorm:"column:status;type:text;not null;index"`
	CreatedAt string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt string `gorm:"column:updated_at;type:text;not null"`
}

func (Task) TableName() string {
	return "tasks"
}
