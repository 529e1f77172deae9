package model

// 投票目标类型
const (
	VoteTargetQuestion = "question"
	VoteTargetAnswer   = "answer"
)

// Vote 每个用户对同一目标只能有一票，换边时覆盖
type Vote struct {
	UUIDBase
	UserID     uint   `gorm:"uniqueIndex:idx_vote_user_target;type:bigint unsigned;not null" json:"userId"`
	TargetType string `gorm:"uniqueIndex:idx_vote_user_target;size:20;not null" json:"targetType"`
	TargetID   string `gorm:"uniqueIndex:idx_vote_user_target;type:varchar(36);not null" json:"targetId"`
	Value      int    `gorm:"not null" json:"value"` // +1 或 -1
}

func (Vote) TableName() string {
	return "votes"
}
