package model

// 通知类型
const (
	NotifyAnswerPosted  = "answer_posted"
	NotifyAutoSubmitted = "test_auto_submitted"
	NotifyContestResult = "contest_result"
	NotifySystem        = "system"
)

// swagger:model Notification
type Notification struct {
	UUIDBase
	UserID  uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Type    string `gorm:"size:40;not null" json:"type"`
	Title   string `gorm:"size:200" json:"title"`
	Content string `gorm:"type:text" json:"content"`
	RefID   string `gorm:"size:36" json:"refId,omitempty"`
	IsRead  bool   `gorm:"default:false;index" json:"isRead"`
}

func (Notification) TableName() string {
	return "notifications"
}
