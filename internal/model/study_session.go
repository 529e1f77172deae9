package model

import "time"

// StudySession 一次计时学习，Stop 时计算时长
type StudySession struct {
	UUIDBase
	UserID          uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Subject         string     `gorm:"size:50" json:"subject"`
	StartedAt       time.Time  `json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt"`
	DurationSeconds int        `gorm:"default:0" json:"durationSeconds"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}
