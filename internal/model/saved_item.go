package model

// 收藏目标类型
const (
	SavedKindNote     = "note"
	SavedKindQuestion = "question"
	SavedKindTest     = "test"
)

type SavedItem struct {
	UUIDBase
	UserID   uint   `gorm:"uniqueIndex:idx_saved_user_target;type:bigint unsigned;not null" json:"userId"`
	Kind     string `gorm:"uniqueIndex:idx_saved_user_target;size:20;not null" json:"kind"`
	TargetID string `gorm:"uniqueIndex:idx_saved_user_target;type:varchar(36);not null" json:"targetId"`
}

func (SavedItem) TableName() string {
	return "saved_items"
}
