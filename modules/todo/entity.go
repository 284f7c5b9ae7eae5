package todo

import "time"

// Todo is a single task record.
//
// Content is guarded by the table itself (NOT NULL plus a non-empty CHECK),
// which is the authoritative validation for new records.
type Todo struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Content    string    `gorm:"column:content;type:text;not null;check:content <> ''" json:"content"`
	CreateTime time.Time `gorm:"column:createTime;autoCreateTime;default:CURRENT_TIMESTAMP" json:"createTime"`
}

// TableName returns the table name for the Todo model.
func (Todo) TableName() string {
	return "todos"
}
