package model

import "time"

// swagger:model Contest
type Contest struct {
	UUIDBase
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	TestID      string    `gorm:"index;type:varchar(36)" json:"testId"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
}

func (Contest) TableName() string {
	return "contests"
}

type ContestParticipant struct {
	UUIDBase
	ContestID string `gorm:"uniqueIndex:idx_contest_user;type:varchar(36);not null" json:"contestId"`
	UserID    uint   `gorm:"uniqueIndex:idx_contest_user;type:bigint unsigned;not null" json:"userId"`
	Score     int    `gorm:"default:0" json:"score"`
}

func (ContestParticipant) TableName() string {
	return "contest_participants"
}
